package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/split-engine/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change configuration",
	Long: `View and change configuration stored in config.toml.

Environment variables named SPLITENGINE_<KEY> (dots become underscores,
e.g. SPLITENGINE_SERVER_ADDR) take precedence over the file.`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show configuration values",
	Long:  `Show the effective value of one key, or of every known key when none is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a configuration value",
	Long: `Store a configuration value in config.toml.

Known keys:
  server.addr, server.rate_limit, server.rate_burst, server.shutdown_timeout
  split.default_lines, split.default_bytes, split.multiplier
  watch.mode, registry.backend, registry.data_dir
  extractors.disabled (comma-separated extensions), logging.verbose`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured
	}

	keys := args
	if len(keys) == 0 {
		keys = services.KnownKeys()
	}
	for _, key := range keys {
		cmd.Printf("%s = %s\n", key, describeKey(key))
	}
	return nil
}

func describeKey(key string) string {
	if configSource != nil {
		if text := configSource.Describe(key); text != "" {
			return text
		}
	}
	if text, ok := settingsService.Lookup(key); ok {
		return text
	}
	return "(default)"
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	if _, err := settingsService.Get(); err != nil {
		cmd.PrintErrf("warning: configuration is now invalid: %v\n", err)
	}

	cmd.Printf("%s = %s\n", key, describeKey(key))
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured
	}
	cmd.Println(settingsService.Path())
	return nil
}
