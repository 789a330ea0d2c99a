// Package cli implements the askpdf command line using cobra.
// Commands are registered on a package-level root command in init functions;
// core services are injected through SetDependencies or built lazily by the
// bootstrap function installed with SetBootstrap.
package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
	"github.com/custodia-labs/askpdf/internal/logger"
)

// EnvVerbose enables verbose logging when set to a true value.
const EnvVerbose = "ASKPDF_VERBOSE"

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	sourceDir string
)

// Dependencies holds the core services commands run against.
type Dependencies struct {
	// Controllers builds a controller for a source directory.
	Controllers driving.ControllerFactory

	// Settings reads and writes configuration.
	Settings driving.SettingsService

	// Watch drives the watch command. Nil disables it.
	Watch driving.WatchFunc
}

// BootstrapFunc builds Dependencies for a configuration directory.
// An empty configDir selects the default location.
type BootstrapFunc func(configDir string) (*Dependencies, error)

var (
	deps      *Dependencies
	bootstrap BootstrapFunc
)

var errNotConfigured = errors.New("askpdf is not configured")

var rootCmd = &cobra.Command{
	Use:   "askpdf",
	Short: "Ask questions of a directory of PDFs",
	Long: `askpdf finds the pages of your PDFs that best match a question.

Text is extracted once per file with pdftotext and kept in an index file
inside the source directory. New files are picked up automatically the
next time you ask.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose || envBool(EnvVerbose) {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and timing details")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.askpdf)")
	rootCmd.PersistentFlags().StringVarP(&sourceDir, "source-dir", "d", "",
		"directory of PDFs when no directory argument is given (default current directory)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function used to build dependencies on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetDependencies injects ready-made dependencies, bypassing bootstrap.
func SetDependencies(d *Dependencies) {
	deps = d
}

// dependencies returns the injected dependencies, bootstrapping them once.
func dependencies() (*Dependencies, error) {
	if deps != nil {
		return deps, nil
	}
	if bootstrap == nil {
		return nil, errNotConfigured
	}
	d, err := bootstrap(configDir)
	if err != nil {
		return nil, err
	}
	deps = d
	return deps, nil
}

// resolveDirectory returns the absolute source directory from the
// positional argument at pos, the --source-dir flag, or the working directory.
func resolveDirectory(args []string, pos int) (string, error) {
	dir := "."
	switch {
	case len(args) > pos && args[pos] != "":
		dir = args[pos]
	case sourceDir != "":
		dir = sourceDir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return abs, nil
}

// controllerFor builds a controller for the directory named by args.
func controllerFor(cmd *cobra.Command, args []string, pos int) (driving.IndexController, string, error) {
	d, err := dependencies()
	if err != nil {
		return nil, "", err
	}
	if d.Controllers == nil {
		return nil, "", errNotConfigured
	}
	dir, err := resolveDirectory(args, pos)
	if err != nil {
		return nil, "", err
	}
	ctrl, err := d.Controllers(cmd.Context(), dir)
	if err != nil {
		return nil, "", err
	}
	return ctrl, dir, nil
}

// logReport prints a refresh summary in verbose mode. Skipped files are
// already warned about as they happen.
func logReport(report *domain.RefreshReport) {
	if report == nil {
		return
	}
	logger.Info("refresh: %d files added, %d pages added, %d skipped",
		len(report.Added), report.PagesAdded, len(report.Skipped))
}

func envBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
