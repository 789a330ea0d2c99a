package cli

import (
	"github.com/spf13/cobra"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status [directory]",
	Short: "Show what the index of a directory holds",
	Long:  `Prints the index location and its file and page counts. Nothing is extracted.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := validateFormat(statusOutput); err != nil {
		return err
	}

	ctrl, _, err := controllerFor(cmd, args, 0)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	st, err := ctrl.Status(cmd.Context())
	if err != nil {
		return err
	}
	return newPrinter(cmd.OutOrStdout(), statusOutput).status(st)
}
