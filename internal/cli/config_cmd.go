package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stubworks/cmdstub/internal/config"
	"github.com/stubworks/cmdstub/internal/ui"
)

func configData(cfg *config.Config, path string, exists bool) map[string]interface{} {
	return map[string]interface{}{
		"config_path":     path,
		"exists":          exists,
		"source_dir":      cfg.SourceDir,
		"target_dir":      cfg.TargetDir,
		"long_names":      cfg.LongNames,
		"short_names":     cfg.ShortNames,
		"force_overwrite": cfg.ForceOverwrite,
		"vocab_file":      cfg.VocabFile,
		"jobs":            cfg.Jobs,
		"ui": map[string]interface{}{
			"accent":     cfg.UI.Accent,
			"code_theme": cfg.UI.CodeTheme,
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	if cfg == nil {
		cfg = config.Default()
	}
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if isJSONOutput() {
		outputSuccess(configData(cfg, path, exists), nil)
		return nil
	}

	if !exists {
		fmt.Printf("Config file does not exist: %s\n", ui.FilePath(path))
		fmt.Println(ui.Hint("Run 'cmdstub config init' to create it."))
	} else {
		fmt.Printf("config: %s\n", ui.FilePath(path))
	}

	fmt.Printf("source_dir: %s\n", cfg.SourceDir)
	fmt.Printf("target_dir: %s\n", cfg.TargetDir)
	fmt.Printf("long_names: %t\n", cfg.LongNames)
	fmt.Printf("short_names: %t\n", cfg.ShortNames)
	fmt.Printf("force_overwrite: %t\n", cfg.ForceOverwrite)
	if cfg.VocabFile != "" {
		fmt.Printf("vocab_file: %s\n", cfg.VocabFile)
	}
	if cfg.Jobs != 0 {
		fmt.Printf("jobs: %d\n", cfg.Jobs)
	}
	if cfg.UI.Accent != "" {
		fmt.Printf("ui.accent: %s\n", cfg.UI.Accent)
	}
	if cfg.UI.CodeTheme != "" {
		fmt.Printf("ui.code_theme: %s\n", cfg.UI.CodeTheme)
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after layering the config file and
CMDSTUB_* environment variables over the built-in defaults.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.DefaultPath()
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil

		createdPath, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", ui.FilePath(createdPath))
		} else {
			fmt.Println(ui.Successf("created config %s", ui.FilePath(createdPath)))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if isJSONOutput() {
				outputSuccess(map[string]interface{}{"config_path": path}, nil)
				return nil
			}
			fmt.Println(path)
			return nil
		},
	})
	rootCmd.AddCommand(configCmd)
}
