package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fedora-migrate/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change the settings stored in config.toml.

Keys use dot notation, e.g. target.url or migration.limit.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	// Values such as -1 are arguments, not shorthand flags.
	configSetCmd.Flags().SetInterspersed(false)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	cmd.Printf("Configuration (%s):\n\n", cfg.Path())
	for _, key := range domain.ConfigKeys {
		val, ok := cfg.Get(key)
		if !ok {
			cmd.Printf("  %-28s (not set)\n", key)
			continue
		}
		display := fmt.Sprint(val)
		if domain.IsSecretConfigKey(key) {
			display = maskSecret(display)
		}
		cmd.Printf("  %-28s %s\n", key, display)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := requireConfig()
	if err != nil {
		return err
	}

	key, raw := args[0], args[1]
	if err := cfg.Set(key, parseConfigValue(raw)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	if domain.IsSecretConfigKey(key) {
		raw = maskSecret(raw)
	}
	cmd.Printf("Set %s = %s\n", key, raw)
	return nil
}

// parseConfigValue keeps booleans and numbers typed in the TOML file.
func parseConfigValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
