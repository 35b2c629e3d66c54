// Package main provides the bookrec CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/bookrecord/bookrec/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool

	verbose      bool
	inputTimeout time.Duration

	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bookrec",
	Short: "Record books from Aladin into a Notion database",
	Long: `bookrec looks up a book by title on Aladin, lets you pick one of the
results and creates a page for it in your Notion reading database.

Run without arguments to start the interactive session. The session ends
after a period without input (see --timeout) or on Ctrl-D / Ctrl-C.

Environment Variables:
  ALADIN_TTB_KEY      Aladin Open API key (required)
  NOTION_TOKEN        Notion integration token (required)
  NOTION_DATABASE_ID  Target Notion database (required)

Variables may also be placed in a .env file in the current directory or
stored with 'bookrec config'.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env file if present (ignore errors)
		_ = godotenv.Load()

		cfg, err := config.Load()
		if err != nil {
			exitWithError(ExitConfigError, "loading config: %v", err)
		}
		logger, err = newLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: runInteractive,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.Flags().DurationVar(&inputTimeout, "timeout", 0, "Exit after this long without input (default from config, 10m)")
	rootCmd.Version = Version
}

// newLogger builds the stderr logger. Unknown levels fall back to warn.
func newLogger(level string, debug bool) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableStacktrace = true

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.WarnLevel
	}
	if debug {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// mustLoadConfig loads and validates configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n%s\n", err, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return cfg
}
