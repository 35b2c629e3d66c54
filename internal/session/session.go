// Package session runs the interactive search, select and record loop.
package session

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bookrecord/bookrec/internal/book"
	"go.uber.org/zap"
)

// User-facing prompts and notices.
const (
	TitlePrompt     = "\nplease enter book title: "
	ChoicePrompt    = "Please enter the number of the book you want to add: "
	BackHint        = "\nYou can press 'b' to go back."
	FoundHeader     = "\nBelow books were found according to your input"
	NoResultNotice  = "There's no matching result."
	SearchFailed    = "Search failed. Please try again."
	SubmitSucceeded = "\nSuccessfully done! It might take few seconds.\nPlease check your notion :)"
	SubmitFailed    = "\nSomething got wrong. Please try again."

	// BackToken aborts selection and returns to the title prompt.
	BackToken = "b"

	// MaxCandidates is the most candidates offered for selection.
	MaxCandidates = 10
)

// Searcher finds candidate books for a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]book.Candidate, error)
}

// Sink records a normalized book in the workspace.
type Sink interface {
	Submit(ctx context.Context, b book.Book) error
}

// LineReader prompts for and reads a single line of input.
type LineReader interface {
	ReadLine(ctx context.Context, label string) (string, error)
}

// Session wires the collaborators of one interactive run.
type Session struct {
	Searcher Searcher
	Sink     Sink
	Input    LineReader
	Out      io.Writer
	Logger   *zap.Logger

	// Now returns the capture time; defaults to time.Now.
	Now func() time.Time

	// Classify labels submission errors in the log (auth, validation, ...).
	Classify func(error) string
}

// Outcome describes how one iteration ended.
type Outcome int

const (
	OutcomeInvalidTitle Outcome = iota
	OutcomeSearchFailed
	OutcomeNoResults
	OutcomeBack
	OutcomeSubmitted
	OutcomeSubmitFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalidTitle:
		return "invalid_title"
	case OutcomeSearchFailed:
		return "search_failed"
	case OutcomeNoResults:
		return "no_results"
	case OutcomeBack:
		return "back"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeSubmitFailed:
		return "submit_failed"
	}
	return "unknown"
}

// Run repeats Once until input fails, times out or ctx is cancelled, and
// returns that error.
func (s *Session) Run(ctx context.Context) error {
	for {
		if _, err := s.Once(ctx); err != nil {
			return err
		}
	}
}

// Once runs a single prompt-search-select-submit iteration. The error is
// non-nil only when the session must stop.
func (s *Session) Once(ctx context.Context) (Outcome, error) {
	title, err := s.Input.ReadLine(ctx, TitlePrompt)
	if err != nil {
		return OutcomeInvalidTitle, err
	}
	if !book.IsValidTitle(title) {
		return OutcomeInvalidTitle, nil
	}

	candidates, err := s.Searcher.Search(ctx, title)
	if err != nil {
		if ctx.Err() != nil {
			return OutcomeSearchFailed, ctx.Err()
		}
		s.logger().Warn("search failed", zap.String("query", title), zap.Error(err))
		fmt.Fprintln(s.Out, SearchFailed)
		return OutcomeSearchFailed, nil
	}
	if len(candidates) == 0 {
		fmt.Fprintln(s.Out, NoResultNotice)
		return OutcomeNoResults, nil
	}
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	idx, err := s.choose(ctx, candidates)
	if err != nil {
		return OutcomeBack, err
	}
	if idx < 0 {
		return OutcomeBack, nil
	}

	b := book.Normalize(candidates[idx], s.now())
	s.logger().Debug("submitting book",
		zap.String("title", b.Title),
		zap.String("author", b.Author),
		zap.String("translator", b.Translator),
		zap.String("category", b.Category),
		zap.String("captured", b.CapturedDate()))

	if err := s.Sink.Submit(ctx, b); err != nil {
		if ctx.Err() != nil {
			return OutcomeSubmitFailed, ctx.Err()
		}
		s.logger().Info("submission failed",
			zap.String("title", b.Title),
			zap.String("kind", s.classify(err)),
			zap.Error(err))
		fmt.Fprintln(s.Out, SubmitFailed)
		return OutcomeSubmitFailed, nil
	}
	fmt.Fprintln(s.Out, SubmitSucceeded)
	return OutcomeSubmitted, nil
}

// choose lists the candidates and reads a selection. It returns -1 when the
// user goes back.
func (s *Session) choose(ctx context.Context, candidates []book.Candidate) (int, error) {
	fmt.Fprintf(s.Out, "%s\n\n", FoundHeader)
	for i, c := range candidates {
		fmt.Fprintln(s.Out, FormatCandidate(i+1, c))
	}
	fmt.Fprintln(s.Out, BackHint)

	label := ChoicePrompt
	for {
		input, err := s.Input.ReadLine(ctx, label)
		if err != nil {
			return -1, err
		}
		idx, back, ok := ParseChoice(input, len(candidates))
		if back {
			return -1, nil
		}
		if ok {
			return idx, nil
		}
		label = fmt.Sprintf("Enter proper number(1 ~ %d) only: ", len(candidates))
	}
}

// FormatCandidate renders one numbered entry of the candidate list.
func FormatCandidate(n int, c book.Candidate) string {
	return fmt.Sprintf("%d) title: %s\n   author: %s\n   publisher: %s\n   pubDate: %s",
		n, c.Title, c.Author, c.Publisher, c.PubDate)
}

// ParseChoice validates a selection among n candidates (at most
// MaxCandidates). It returns the zero-based index when ok, or back when the
// input is the back token.
func ParseChoice(input string, n int) (index int, back bool, ok bool) {
	if input == BackToken {
		return -1, true, false
	}
	if n > MaxCandidates {
		n = MaxCandidates
	}
	v, err := strconv.Atoi(input)
	if err != nil || v < 1 || v > n {
		return -1, false, false
	}
	// Reject forms like "+1" or "01" that Atoi accepts.
	if strconv.Itoa(v) != input {
		return -1, false, false
	}
	return v - 1, false, true
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Session) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *Session) classify(err error) string {
	if s.Classify != nil {
		return s.Classify(err)
	}
	return "unknown"
}
