package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askpdf/internal/core/domain"
	"github.com/custodia-labs/askpdf/internal/core/ports/driving"
	"github.com/custodia-labs/askpdf/internal/core/services"
)

var configOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change askpdf configuration.

Keys:
  index.backend                 file, sqlite or memory
  index.file_name               index file name inside the source directory
  index.incremental             reuse the stored index (false re-extracts everything)
  vector.features               number of hashed feature buckets
  vector.stop_words             extra stop words, comma separated
  vector.no_default_stop_words  drop the built-in English stop words
  extract.timeout_seconds       per-file extraction timeout, 0 for none
  source.extensions             file extensions to index, comma separated
  watch.interval_seconds        minimum time between refreshes in watch mode
  watch.settle_milliseconds     quiet period after a change before refreshing`,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every key with its effective value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a value for a key",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored value so the default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

func init() {
	configListCmd.Flags().StringVarP(&configOutput, "output", "o", formatText, "output format: text, json or yaml")
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsService() (driving.SettingsService, error) {
	d, err := dependencies()
	if err != nil {
		return nil, err
	}
	if d.Settings == nil {
		return nil, errNotConfigured
	}
	return d.Settings, nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := validateFormat(configOutput); err != nil {
		return err
	}
	svc, err := settingsService()
	if err != nil {
		return err
	}
	entries, err := svc.List()
	if err != nil {
		return err
	}

	p := newPrinter(cmd.OutOrStdout(), configOutput)
	if done, err := p.structured(entries); done {
		return err
	}
	for _, e := range entries {
		line := fmt.Sprintf("%-30s %s", e.Key, e.Value)
		if e.Default {
			line += p.render(mutedStyle, "  (default)")
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	entries, err := svc.List()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Key == args[0] {
			fmt.Fprintln(cmd.OutOrStdout(), e.Value)
			return nil
		}
	}
	return unknownKey(args[0])
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	svc, err := settingsService()
	if err != nil {
		return err
	}
	if err := svc.Unset(args[0]); err != nil {
		return err
	}
	cmd.Printf("%s reset to default\n", args[0])
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown key %q (known keys: %s)",
		domain.ErrInvalidInput, key, strings.Join(services.SettingKeys(), ", "))
}
