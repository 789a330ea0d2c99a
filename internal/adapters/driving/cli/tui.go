package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askpdf/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [directory]",
	Short: "Launch the interactive terminal UI",
	Long: `Refreshes the index of the directory, then opens an interactive
question loop.

Controls:
  Enter    - Ask / Read page
  ↑/k, ↓/j - Navigate pages
  +/-      - More or fewer pages
  n        - New question
  Ctrl+R   - Refresh the index
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctrl, dir, err := controllerFor(cmd, args, 0)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	report, err := ctrl.Open(cmd.Context())
	if err != nil {
		return err
	}
	logReport(report)

	app, err := tui.NewApp(tui.NewPorts(ctrl, dir))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
