package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Keep the index up to date as files are added",
	Long: `Refreshes the index once, then watches the directory and extracts new
files as they appear. Bursts of file events are coalesced; the minimum
time between refreshes is set by watch.interval_seconds.

Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	d, err := dependencies()
	if err != nil {
		return err
	}
	if d.Watch == nil {
		return errors.New("watching is not available")
	}

	ctrl, dir, err := controllerFor(cmd, args, 0)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := ctrl.Open(ctx)
	if err != nil {
		return err
	}
	p := newPrinter(cmd.OutOrStdout(), formatText)
	if err := p.report(dir, report); err != nil {
		return err
	}

	logger.Info("watching %s", dir)
	err = d.Watch(ctx, ctrl, dir, func(r *domain.RefreshReport) {
		logReport(r)
		_ = p.report(dir, r)
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
