// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stubworks/cmdstub/internal/config"
	"github.com/stubworks/cmdstub/internal/ui"
)

var (
	// Global flags
	configPath string

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cmdstub",
	Short: "cmdstub - compile command documentation into typed Python stubs",
	Long: `cmdstub reads offline command reference documentation and compiles it
into typed, callable Python stub files with docstrings, so editors and
type checkers can see the full command surface without a live runtime.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent, cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	return cfg
}
