package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/askpdf/internal/core/domain"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q (want text, json or yaml)", domain.ErrInvalidInput, format)
	}
}

// printer renders command results as text, JSON or YAML.
// Text is styled with lipgloss only when writing to a terminal.
type printer struct {
	w      io.Writer
	format string
	styles *styles.Styles
}

func newPrinter(w io.Writer, format string) *printer {
	p := &printer{w: w, format: format}
	if isTerminal(w) {
		p.styles = styles.DefaultStyles()
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (p *printer) render(style func(*styles.Styles) lipgloss.Style, text string) string {
	if p.styles == nil {
		return text
	}
	return style(p.styles).Render(text)
}

// structured writes v as JSON or YAML. It reports false for text output.
func (p *printer) structured(v any) (bool, error) {
	switch p.format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		_, err = fmt.Fprintln(p.w, string(data))
		return true, err
	case formatYAML:
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to marshal output: %w", err)
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

// answer is the structured form of an ask result.
type answer struct {
	Question  string           `json:"question" yaml:"question"`
	Directory string           `json:"directory" yaml:"directory"`
	Pages     []domain.PageHit `json:"pages" yaml:"pages"`
}

func (p *printer) hits(question, directory string, hits []domain.PageHit) error {
	if done, err := p.structured(answer{Question: question, Directory: directory, Pages: hits}); done {
		return err
	}

	if len(hits) == 0 {
		_, err := fmt.Fprintln(p.w, p.render(mutedStyle, "No pages indexed in "+directory))
		return err
	}

	for i := range hits {
		h := &hits[i]
		if i > 0 {
			fmt.Fprintln(p.w)
		}
		header := fmt.Sprintf("--- page %d (score %.4f) ---", h.Index, h.Score)
		fmt.Fprintln(p.w, p.render(subtitleStyle, header))
		fmt.Fprintln(p.w, strings.TrimRight(h.Text, "\n"))
	}
	return nil
}

func (p *printer) report(directory string, r *domain.RefreshReport) error {
	if done, err := p.structured(r); done {
		return err
	}

	for _, path := range r.Added {
		fmt.Fprintln(p.w, p.render(successStyle, "added   ")+path)
	}
	for _, s := range r.Skipped {
		fmt.Fprintln(p.w, p.render(warningStyle, "skipped ")+s.Path+": "+s.Reason)
	}
	summary := fmt.Sprintf("%s: %d files added (%d pages), %d skipped",
		directory, len(r.Added), r.PagesAdded, len(r.Skipped))
	_, err := fmt.Fprintln(p.w, p.render(mutedStyle, summary))
	return err
}

func (p *printer) status(st *domain.IndexStatus) error {
	if done, err := p.structured(st); done {
		return err
	}

	rows := [][2]string{
		{"Directory", st.Directory},
		{"Index", st.IndexPath},
		{"Backend", st.Backend},
		{"Files", fmt.Sprint(st.Files)},
		{"Pages", fmt.Sprint(st.Pages)},
	}
	for _, row := range rows {
		fmt.Fprintf(p.w, "%s %s\n", p.render(titleStyle, fmt.Sprintf("%-10s", row[0]+":")), row[1])
	}
	return nil
}

func titleStyle(s *styles.Styles) lipgloss.Style    { return s.Title }
func subtitleStyle(s *styles.Styles) lipgloss.Style { return s.Subtitle }
func mutedStyle(s *styles.Styles) lipgloss.Style    { return s.Muted }
func successStyle(s *styles.Styles) lipgloss.Style  { return s.Success }
func warningStyle(s *styles.Styles) lipgloss.Style  { return s.Warning }
