package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hostbridge-io/hbapi/internal/constants"
)

// configKeys are the keys the config command accepts.
var configKeys = map[string]bool{
	"endpoint":    true,
	"key":         true,
	"api_version": true,
	"output":      true,
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get and set hbctl configuration values",
	}

	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !configKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			value := viper.GetString(key)
			if key == "key" && value != "" {
				value = "***"
			}

			fmt.Fprintln(os.Stdout, value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if !configKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			viper.Set(key, args[1])

			return saveConfig()
		},
	}
}

// saveConfig writes the current viper state to the config file, creating
// ~/.hbctl/config.yml when no config file is in use yet.
func saveConfig() error {
	if viper.ConfigFileUsed() != "" {
		if err := viper.WriteConfig(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	configDir := filepath.Join(home, ".hbctl")
	if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.yml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return os.Chmod(path, constants.ConfigFilePerm)
}
