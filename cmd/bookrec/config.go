package main

import (
	"errors"
	"fmt"

	"github.com/bookrecord/bookrec/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  bookrec config                                # Show resolved config (secrets masked)
  bookrec config notion-database-id             # Get specific value
  bookrec config notion-database-id 8c46b8f8... # Set value in the config file
  bookrec config input-timeout 5m               # Set input timeout

Keys:
  aladin-ttb-key      Aladin Open API key
  aladin-url          Aladin ItemSearch endpoint
  notion-token        Notion integration token
  notion-database-id  Notion database that receives the pages
  notion-url          Notion pages endpoint
  notion-version      Notion-Version header
  input-timeout       Idle time before the session exits (e.g. 10m)
  progress-status     Optional 진행도 value set on every page
  log-level           debug, info, warn or error

Values set here are written to the config file. Environment variables and
.env entries take precedence over the file.`,
	Args: cobra.MaximumNArgs(2),
	Run:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) {
	// No args: show all config
	if len(args) == 0 {
		cfg := loadResolved()
		showConfig(cfg.Redacted())
		return
	}

	key := args[0]

	// One arg: get specific value
	if len(args) == 1 {
		cfg := loadResolved()
		value, err := cfg.Redacted().Get(key)
		if err != nil {
			exitWithError(ExitError, "%v (known keys: %v)", err, config.Keys())
		}
		if humanOutput {
			fmt.Println(value)
		} else {
			outputJSON(map[string]string{config.NormalizeKey(key): value})
		}
		return
	}

	// Two args: set value in the file only, so env and defaults are not persisted
	value := args[1]
	fileCfg, err := config.LoadFile()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := fileCfg.Set(key, value); err != nil {
		if errors.Is(err, config.ErrUnknownKey) {
			exitWithError(ExitError, "%v (known keys: %v)", err, config.Keys())
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := config.SaveFile(fileCfg); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	normalized := config.NormalizeKey(key)
	shown, _ := fileCfg.Redacted().Get(normalized)
	if humanOutput {
		fmt.Printf("Set %s = %s\n", normalized, shown)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalized,
			Value:  shown,
			Path:   config.Path(),
		})
	}
}

func loadResolved() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

func showConfig(cfg *config.Config) {
	if !humanOutput {
		values := make(map[string]string, len(config.Keys()))
		for _, k := range config.Keys() {
			values[k], _ = cfg.Get(k)
		}
		outputJSON(values)
		return
	}
	for _, k := range config.Keys() {
		v, _ := cfg.Get(k)
		fmt.Printf("%-19s %s\n", k+":", v)
	}
	fmt.Printf("\n(file: %s)\n", config.Path())
}
