package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bookrecord/bookrec/internal/aladin"
	"github.com/bookrecord/bookrec/internal/book"
	"github.com/bookrecord/bookrec/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var searchTimeout time.Duration

var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Look up a title on Aladin without recording it",
	Long: `Search Aladin for a title and print the normalized candidates that the
interactive session would offer. Nothing is written to Notion.

Examples:
  bookrec search "클린 코드"
  bookrec search "clean code" --human`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().DurationVar(&searchTimeout, "request-timeout", 30*time.Second, "Give up on the Aladin request after this long")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.Join(args, " ")
	if !book.IsValidTitle(query) {
		exitWithError(ExitError, "title must not be empty")
	}
	cfg := mustLoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, searchTimeout)
		defer cancel()
	}

	candidates, err := newSearcher(cfg).Search(ctx, query)
	if err != nil {
		logger.Debug("search failed", zap.String("query", query), zap.Error(err))
		if aladin.IsAuthError(err) {
			exitWithError(ExitConfigError, "Aladin rejected the TTB key: %v", err)
		}
		exitWithError(ExitSearchError, "searching Aladin: %v", err)
	}

	resp := buildSearchResponse(query, candidates, time.Now())
	if humanOutput {
		printSearchHuman(resp, candidates)
		return
	}
	outputJSON(resp)
}

// buildSearchResponse normalizes candidates the same way the session does.
func buildSearchResponse(query string, candidates []book.Candidate, now time.Time) SearchResponse {
	if len(candidates) > session.MaxCandidates {
		candidates = candidates[:session.MaxCandidates]
	}
	results := make([]SearchResult, 0, len(candidates))
	for i, c := range candidates {
		b := book.Normalize(c, now)
		results = append(results, SearchResult{
			Index:      i + 1,
			Title:      b.Title,
			Author:     b.Author,
			Translator: b.Translator,
			Publisher:  b.Publisher,
			PubDate:    c.PubDate,
			Category:   b.Category,
			Cover:      b.Cover,
			InfoURL:    b.InfoURL,
		})
	}
	return SearchResponse{Query: query, Count: len(results), Results: results}
}

func printSearchHuman(resp SearchResponse, candidates []book.Candidate) {
	if resp.Count == 0 {
		fmt.Println(session.NoResultNotice)
		return
	}
	for i, r := range resp.Results {
		fmt.Println(session.FormatCandidate(r.Index, candidates[i]))
		fmt.Printf("   translator: %s\n   category: %s\n\n", r.Translator, r.Category)
	}
}
