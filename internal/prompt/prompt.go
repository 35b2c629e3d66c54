// Package prompt reads lines of interactive input with a timeout.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout is how long a prompt waits for input before giving up.
const DefaultTimeout = 10 * time.Minute

var (
	// ErrTimeout is returned when no line arrives before the timeout.
	ErrTimeout = errors.New("input timed out")

	// ErrClosed is returned by ReadLine after Close.
	ErrClosed = errors.New("prompter closed")
)

type lineResult struct {
	line string
	err  error
}

// Prompter prints prompts to out and reads answers from in.
//
// A single reader goroutine feeds lines to ReadLine so that a blocked read
// never holds up the timeout. The goroutine exits when in reaches EOF or
// fails, or when a line is ready after Close.
type Prompter struct {
	in      io.Reader
	out     io.Writer
	timeout time.Duration

	lines     chan lineResult
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once

	mu  sync.Mutex
	err error // sticky read error once the reader has stopped
}

// New creates a Prompter. A timeout <= 0 waits indefinitely.
func New(in io.Reader, out io.Writer, timeout time.Duration) *Prompter {
	return &Prompter{
		in:      in,
		out:     out,
		timeout: timeout,
		lines:   make(chan lineResult),
		done:    make(chan struct{}),
	}
}

// Timeout returns the per-prompt timeout.
func (p *Prompter) Timeout() time.Duration {
	return p.timeout
}

func (p *Prompter) pump() {
	r := bufio.NewReader(p.in)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			select {
			case p.lines <- lineResult{line: line}:
			case <-p.done:
				return
			}
		}
		if err != nil {
			select {
			case p.lines <- lineResult{err: err}:
			case <-p.done:
			}
			return
		}
	}
}

// ReadLine prints label and returns the next input line with surrounding
// whitespace removed. It returns ErrTimeout if the timeout elapses first,
// io.EOF when input is exhausted, and ctx.Err() if ctx is cancelled.
func (p *Prompter) ReadLine(ctx context.Context, label string) (string, error) {
	p.mu.Lock()
	stuck := p.err
	p.mu.Unlock()
	if stuck != nil {
		return "", stuck
	}

	fmt.Fprint(p.out, label)
	p.startOnce.Do(func() { go p.pump() })

	var expired <-chan time.Time
	if p.timeout > 0 {
		timer := time.NewTimer(p.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case r := <-p.lines:
		if r.err != nil {
			err := r.err
			if !errors.Is(err, io.EOF) {
				err = fmt.Errorf("reading input: %w", err)
			}
			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
			return "", err
		}
		return strings.TrimSpace(r.line), nil
	case <-expired:
		// Move the cursor past the unanswered prompt.
		fmt.Fprintln(p.out)
		return "", ErrTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", ErrClosed
	}
}

// Close abandons any pending read. It is safe to call more than once.
func (p *Prompter) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

// TimeoutMessage is printed when the session ends because of a timeout.
func TimeoutMessage(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("no input for %.0f minutes. program exited.", d.Minutes())
	}
	return fmt.Sprintf("no input for %s. program exited.", d)
}
