// Package pdf extracts page texts from PDF files using pdftotext.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driven"
	"github.com/custodia-labs/askpdf/internal/extractors"
)

// toolName is the poppler-utils binary used for extraction.
const toolName = "pdftotext"

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = fmt.Errorf("%w: %s not found in PATH", domain.ErrExtractorUnavailable, toolName)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// CommandRunner runs an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return out, nil
}

// Extractor runs pdftotext once per file and splits its output into pages.
type Extractor struct {
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// New creates a PDF extractor backed by the pdftotext binary.
func New() *Extractor {
	return &Extractor{
		runner:   execRunner{},
		lookPath: exec.LookPath,
	}
}

// NewWithRunner creates a PDF extractor with a custom command runner.
// The PATH check is skipped because the runner stands in for the binary.
func NewWithRunner(runner CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Supports reports whether path has a .pdf extension.
func (e *Extractor) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Extract returns the page texts of the PDF at path in page order.
func (e *Extractor) Extract(ctx context.Context, path string) ([]string, error) {
	if e.lookPath != nil {
		if _, err := e.lookPath(toolName); err != nil {
			return nil, ErrPDFToolNotFound
		}
	}

	out, err := e.runner.Run(ctx, toolName, "-enc", "UTF-8", "-layout", path, "-")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrExtraction, path, ctxErr)
		}
		return nil, fmt.Errorf("%w: %s failed on %s: %v", domain.ErrExtraction, toolName, path, err)
	}
	return extractors.SplitPages(string(out)), nil
}

// CheckAvailable returns ErrPDFToolNotFound if pdftotext is not on PATH.
func CheckAvailable() error {
	if _, err := exec.LookPath(toolName); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific instructions for pdftotext.
func InstallInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install pdftotext with Homebrew: brew install poppler"
	case "windows":
		return "Install pdftotext from the Xpdf command line tools (https://www.xpdfreader.com/download.html) and add it to PATH"
	default:
		return "Install pdftotext with your package manager, e.g. apt install poppler-utils or dnf install poppler-utils"
	}
}

// IsToolMissing reports whether err was caused by a missing pdftotext binary.
func IsToolMissing(err error) bool {
	return errors.Is(err, ErrPDFToolNotFound)
}
