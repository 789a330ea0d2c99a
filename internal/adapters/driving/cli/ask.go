package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/logger"
)

var (
	askPages  int
	askOutput string
)

var askCmd = &cobra.Command{
	Use:   "ask <question> [directory]",
	Short: "Find the pages that best answer a question",
	Long: `Refreshes the index of the directory (extracting only files that are new
since the last run) and prints the pages most similar to the question,
best match first.

The directory defaults to --source-dir, then the current directory.`,
	Example: `  askpdf ask "what is the refund policy" ~/contracts
  askpdf ask -n 3 -o json "termination clause" -d ~/contracts`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askPages, "pages", "n", domain.DefaultPageCount, "number of pages to return")
	askCmd.Flags().IntVar(&askPages, "n-matches", domain.DefaultPageCount, "alias for --pages")
	_ = askCmd.Flags().MarkHidden("n-matches")
	askCmd.Flags().StringVarP(&askOutput, "output", "o", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := validateFormat(askOutput); err != nil {
		return err
	}

	ctrl, dir, err := controllerFor(cmd, args, 1)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	question := args[0]
	if strings.TrimSpace(question) == "" {
		logger.Warn("empty question: every page scores zero")
	}

	report, err := ctrl.Open(cmd.Context())
	if err != nil {
		return err
	}
	logReport(report)

	hits, err := ctrl.Ask(cmd.Context(), question, domain.QueryOptions{Limit: askPages})
	if err != nil {
		return err
	}
	return newPrinter(cmd.OutOrStdout(), askOutput).hits(question, dir, hits)
}
