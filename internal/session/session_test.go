package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bookrecord/bookrec/internal/book"
	"github.com/bookrecord/bookrec/internal/prompt"
)

// scriptedInput returns the scripted answers in order, then err.
type scriptedInput struct {
	answers []string
	err     error
	labels  []string
}

func (s *scriptedInput) ReadLine(ctx context.Context, label string) (string, error) {
	s.labels = append(s.labels, label)
	if len(s.answers) == 0 {
		return "", s.err
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

type fakeSearcher struct {
	results []book.Candidate
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]book.Candidate, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeSink struct {
	err       error
	submitted []book.Book
}

func (f *fakeSink) Submit(ctx context.Context, b book.Book) error {
	f.submitted = append(f.submitted, b)
	return f.err
}

var cleanCodeCandidates = []book.Candidate{
	{Title: "클린 코더", Author: "로버트 마틴 (지은이), 정희종 (옮긴이)", Publisher: "에이콘출판", PubDate: "2016-07-26"},
	{
		Title:        "클린 코드 Clean Code",
		Author:       "로버트 마틴 (지은이), 박재호 (옮긴이)",
		Publisher:    "인사이트",
		PubDate:      "2013-12-24",
		CategoryName: "국내도서>컴퓨터/모바일>프로그래밍 개발/방법론",
		Cover:        "https://image.aladin.co.kr/cover.jpg",
		Link:         "http://www.aladin.co.kr/shop/wproduct.aspx?ItemId=34083680",
	},
}

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 23, 59, 0, 0, time.Local)
}

func newTestSession(in LineReader, searcher Searcher, sink Sink) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	return &Session{
		Searcher: searcher,
		Sink:     sink,
		Input:    in,
		Out:      &out,
		Now:      fixedNow,
	}, &out
}

func TestOnce_SelectAndSubmit(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드", "2"}}
	searcher := &fakeSearcher{results: cleanCodeCandidates}
	sink := &fakeSink{}
	s, out := newTestSession(in, searcher, sink)

	outcome, err := s.Once(context.Background())
	if err != nil {
		t.Fatalf("Once() error = %v", err)
	}
	if outcome != OutcomeSubmitted {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeSubmitted)
	}
	if len(sink.submitted) != 1 {
		t.Fatalf("submitted %d books, want 1", len(sink.submitted))
	}
	b := sink.submitted[0]
	if b.Author != "로버트 마틴" || b.Translator != "박재호" {
		t.Errorf("author/translator = %q/%q, want 로버트 마틴/박재호", b.Author, b.Translator)
	}
	if b.CapturedDate() != "2026-10-19" {
		t.Errorf("captured date = %q, want 2026-10-19", b.CapturedDate())
	}
	if b.Category != "Computing" {
		t.Errorf("category = %q, want Computing", b.Category)
	}
	if !strings.Contains(out.String(), "2) title: 클린 코드 Clean Code") {
		t.Errorf("candidate list missing from output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), SubmitSucceeded) {
		t.Errorf("success notice missing from output:\n%s", out.String())
	}
}

func TestOnce_CandidateListLayout(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드", BackToken}}
	s, out := newTestSession(in, &fakeSearcher{results: cleanCodeCandidates}, &fakeSink{})

	if _, err := s.Once(context.Background()); err != nil {
		t.Fatalf("Once() error = %v", err)
	}

	want := "\nBelow books were found according to your input\n\n" +
		"1) title: 클린 코더\n   author: 로버트 마틴 (지은이), 정희종 (옮긴이)\n   publisher: 에이콘출판\n   pubDate: 2016-07-26\n" +
		"2) title: 클린 코드 Clean Code\n   author: 로버트 마틴 (지은이), 박재호 (옮긴이)\n   publisher: 인사이트\n   pubDate: 2013-12-24\n" +
		"\nYou can press 'b' to go back.\n"
	if got := out.String(); got != want {
		t.Errorf("output =\n%q\nwant\n%q", got, want)
	}
}

func TestOnce_EmptyTitleRestartsSilently(t *testing.T) {
	in := &scriptedInput{answers: []string{""}}
	searcher := &fakeSearcher{}
	s, out := newTestSession(in, searcher, &fakeSink{})

	outcome, err := s.Once(context.Background())
	if err != nil || outcome != OutcomeInvalidTitle {
		t.Fatalf("Once() = %v, %v; want %v, nil", outcome, err, OutcomeInvalidTitle)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("searched %v for empty title", searcher.queries)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestOnce_NoResults(t *testing.T) {
	in := &scriptedInput{answers: []string{"없는 책"}}
	sink := &fakeSink{}
	s, out := newTestSession(in, &fakeSearcher{results: []book.Candidate{}}, sink)

	outcome, err := s.Once(context.Background())
	if err != nil || outcome != OutcomeNoResults {
		t.Fatalf("Once() = %v, %v; want %v, nil", outcome, err, OutcomeNoResults)
	}
	if !strings.Contains(out.String(), NoResultNotice) {
		t.Errorf("output = %q, want no-result notice", out.String())
	}
	if len(sink.submitted) != 0 {
		t.Errorf("submitted %d books, want 0", len(sink.submitted))
	}
}

func TestOnce_SearchFailure(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드"}}
	s, out := newTestSession(in, &fakeSearcher{err: errors.New("connection refused")}, &fakeSink{})

	outcome, err := s.Once(context.Background())
	if err != nil || outcome != OutcomeSearchFailed {
		t.Fatalf("Once() = %v, %v; want %v, nil", outcome, err, OutcomeSearchFailed)
	}
	if !strings.Contains(out.String(), SearchFailed) {
		t.Errorf("output = %q, want search failure notice", out.String())
	}
}

func TestOnce_Back(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드", "b"}}
	sink := &fakeSink{}
	s, _ := newTestSession(in, &fakeSearcher{results: cleanCodeCandidates}, sink)

	outcome, err := s.Once(context.Background())
	if err != nil || outcome != OutcomeBack {
		t.Fatalf("Once() = %v, %v; want %v, nil", outcome, err, OutcomeBack)
	}
	if len(sink.submitted) != 0 {
		t.Errorf("submitted %d books after going back", len(sink.submitted))
	}
}

func TestOnce_RepromptsUntilValid(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드", "0", "3", "two", "", "1"}}
	sink := &fakeSink{}
	s, _ := newTestSession(in, &fakeSearcher{results: cleanCodeCandidates}, sink)

	outcome, err := s.Once(context.Background())
	if err != nil || outcome != OutcomeSubmitted {
		t.Fatalf("Once() = %v, %v; want %v, nil", outcome, err, OutcomeSubmitted)
	}
	if sink.submitted[0].Title != "클린 코더" {
		t.Errorf("submitted %q, want 클린 코더", sink.submitted[0].Title)
	}

	wantLabels := []string{
		TitlePrompt,
		ChoicePrompt,
		"Enter proper number(1 ~ 2) only: ",
		"Enter proper number(1 ~ 2) only: ",
		"Enter proper number(1 ~ 2) only: ",
		"Enter proper number(1 ~ 2) only: ",
	}
	if strings.Join(in.labels, "|") != strings.Join(wantLabels, "|") {
		t.Errorf("prompts = %q, want %q", in.labels, wantLabels)
	}
}

func TestOnce_SubmitFailure(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드", "2"}}
	s, out := newTestSession(in, &fakeSearcher{results: cleanCodeCandidates}, &fakeSink{err: errors.New("status 400")})
	var classified error
	s.Classify = func(err error) string {
		classified = err
		return "validation"
	}

	outcome, err := s.Once(context.Background())
	if err != nil || outcome != OutcomeSubmitFailed {
		t.Fatalf("Once() = %v, %v; want %v, nil", outcome, err, OutcomeSubmitFailed)
	}
	if !strings.Contains(out.String(), SubmitFailed) {
		t.Errorf("output = %q, want failure notice", out.String())
	}
	if strings.Contains(out.String(), "status 400") {
		t.Errorf("failure detail leaked to user output: %q", out.String())
	}
	if classified == nil {
		t.Error("Classify was not called for the failed submission")
	}
}

func TestOnce_TimeoutDuringSelection(t *testing.T) {
	in := &scriptedInput{answers: []string{"클린 코드"}, err: prompt.ErrTimeout}
	sink := &fakeSink{}
	s, _ := newTestSession(in, &fakeSearcher{results: cleanCodeCandidates}, sink)

	if _, err := s.Once(context.Background()); !errors.Is(err, prompt.ErrTimeout) {
		t.Fatalf("Once() error = %v, want ErrTimeout", err)
	}
	if len(sink.submitted) != 0 {
		t.Errorf("submitted after timeout")
	}
}

func TestRun_LoopsUntilTimeout(t *testing.T) {
	in := &scriptedInput{
		answers: []string{"", "클린 코드", "2", "토비", "b", "클린 코드", "1"},
		err:     prompt.ErrTimeout,
	}
	searcher := &fakeSearcher{results: cleanCodeCandidates}
	sink := &fakeSink{}
	s, _ := newTestSession(in, searcher, sink)

	err := s.Run(context.Background())
	if !errors.Is(err, prompt.ErrTimeout) {
		t.Fatalf("Run() error = %v, want ErrTimeout", err)
	}
	if len(searcher.queries) != 3 {
		t.Errorf("searched %d times, want 3", len(searcher.queries))
	}
	if len(sink.submitted) != 2 {
		t.Errorf("submitted %d books, want 2", len(sink.submitted))
	}
}

func TestRun_TimeoutBeforeAnyInput(t *testing.T) {
	in := &scriptedInput{err: prompt.ErrTimeout}
	searcher := &fakeSearcher{}
	s, _ := newTestSession(in, searcher, &fakeSink{})

	if err := s.Run(context.Background()); !errors.Is(err, prompt.ErrTimeout) {
		t.Fatalf("Run() error = %v, want ErrTimeout", err)
	}
	if len(searcher.queries) != 0 {
		t.Errorf("searched %v before any input", searcher.queries)
	}
}

func TestRun_EOF(t *testing.T) {
	s, _ := newTestSession(&scriptedInput{err: io.EOF}, &fakeSearcher{}, &fakeSink{})
	if err := s.Run(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("Run() error = %v, want io.EOF", err)
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input     string
		n         int
		wantIndex int
		wantBack  bool
		wantOK    bool
	}{
		{"1", 3, 0, false, true},
		{"3", 3, 2, false, true},
		{"10", 10, 9, false, true},
		{"b", 3, -1, true, false},
		{"B", 3, -1, false, false},
		{"0", 3, -1, false, false},
		{"4", 3, -1, false, false},
		{"11", 12, -1, false, false},
		{"-1", 3, -1, false, false},
		{"+1", 3, -1, false, false},
		{"01", 3, -1, false, false},
		{"1.0", 3, -1, false, false},
		{"", 3, -1, false, false},
		{"one", 3, -1, false, false},
	}
	for _, tt := range tests {
		idx, back, ok := ParseChoice(tt.input, tt.n)
		if idx != tt.wantIndex || back != tt.wantBack || ok != tt.wantOK {
			t.Errorf("ParseChoice(%q, %d) = (%d, %v, %v), want (%d, %v, %v)",
				tt.input, tt.n, idx, back, ok, tt.wantIndex, tt.wantBack, tt.wantOK)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeSubmitted.String() != "submitted" {
		t.Errorf("OutcomeSubmitted.String() = %q", OutcomeSubmitted.String())
	}
	if Outcome(99).String() != "unknown" {
		t.Errorf("Outcome(99).String() = %q", Outcome(99).String())
	}
}
