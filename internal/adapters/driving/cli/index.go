package cli

import (
	"github.com/spf13/cobra"
)

var indexOutput string

var indexCmd = &cobra.Command{
	Use:   "index [directory]",
	Short: "Extract new files into the index without asking",
	Long: `Loads the index of the directory and extracts every supported file not
yet recorded. Files that fail to extract are reported and retried next time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if err := validateFormat(indexOutput); err != nil {
		return err
	}

	ctrl, dir, err := controllerFor(cmd, args, 0)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	report, err := ctrl.Update(cmd.Context())
	if err != nil {
		return err
	}
	logReport(report)
	return newPrinter(cmd.OutOrStdout(), indexOutput).report(dir, report)
}
