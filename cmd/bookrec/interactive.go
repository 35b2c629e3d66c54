package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookrecord/bookrec/internal/aladin"
	"github.com/bookrecord/bookrec/internal/config"
	"github.com/bookrecord/bookrec/internal/notion"
	"github.com/bookrecord/bookrec/internal/prompt"
	"github.com/bookrecord/bookrec/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runInteractive(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if cmd.Flags().Changed("timeout") {
		if err := overrideTimeout(cfg, inputTimeout); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := prompt.New(os.Stdin, os.Stdout, cfg.InputTimeout)
	defer in.Close()

	s := newSession(cfg, in, os.Stdout, logger)
	logger.Debug("session started",
		zap.Duration("input_timeout", cfg.InputTimeout),
		zap.String("notion_version", cfg.NotionVersion))

	err := s.Run(ctx)
	code := sessionExitCode(err)
	switch {
	case code == ExitTimeout:
		fmt.Fprintln(os.Stdout, prompt.TimeoutMessage(in.Timeout()))
	case code == ExitError:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	case errors.Is(err, context.Canceled):
		// Keep the shell prompt off the input line.
		fmt.Fprintln(os.Stdout)
	}

	// PersistentPostRun is skipped by os.Exit.
	_ = logger.Sync()
	os.Exit(code)
}

// newSession wires the Aladin searcher and Notion sink from cfg.
func newSession(cfg *config.Config, in session.LineReader, out io.Writer, log *zap.Logger) *session.Session {
	return &session.Session{
		Searcher: newSearcher(cfg),
		Sink:     newSink(cfg),
		Input:    in,
		Out:      out,
		Logger:   log,
		Now:      time.Now,
		Classify: notion.Kind,
	}
}

func newSearcher(cfg *config.Config) *aladin.Client {
	return aladin.NewClient(
		aladin.WithTTBKey(cfg.AladinTTBKey),
		aladin.WithBaseURL(cfg.AladinURL),
	)
}

func newSink(cfg *config.Config) *notion.Sink {
	client := notion.NewClient(
		notion.WithToken(cfg.NotionToken),
		notion.WithVersion(cfg.NotionVersion),
		notion.WithBaseURL(cfg.NotionURL),
	)
	return notion.NewSink(client, cfg.NotionDatabaseID, notion.PageOptions{
		ProgressStatus: cfg.ProgressStatus,
	})
}

// overrideTimeout applies the --timeout flag. Zero disables the timeout.
func overrideTimeout(cfg *config.Config, d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("--timeout must not be negative: %s", d)
	}
	cfg.InputTimeout = d
	return nil
}

// sessionExitCode maps the error that ended a session to an exit code.
func sessionExitCode(err error) int {
	switch {
	case err == nil,
		errors.Is(err, io.EOF),
		errors.Is(err, prompt.ErrClosed),
		errors.Is(err, context.Canceled):
		return ExitSuccess
	case errors.Is(err, prompt.ErrTimeout):
		return ExitTimeout
	default:
		return ExitError
	}
}
