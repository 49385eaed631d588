// Package session owns a calculator's expression buffer and turns user
// input into buffer mutations and display updates.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/vhscom/calc/internal/calc"
)

// ErrorText is rendered after a failed evaluation.
const ErrorText = "Error"

// DefaultErrorHold is how long ErrorText stays on the display.
const DefaultErrorHold = 900 * time.Millisecond

// Evaluator computes the result of an expression.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Local evaluates expressions in-process.
type Local struct{}

// Evaluate implements Evaluator.
func (Local) Evaluate(_ context.Context, expr string) (string, error) {
	return calc.Evaluate(expr)
}

// RenderFunc receives the display text after every change. It is called
// with the session lock held and must not call back into the Session.
type RenderFunc func(text string)

// Options tune a Session.
type Options struct {
	// ErrorHold is how long ErrorText is shown before the display resets
	// to "0". Zero means DefaultErrorHold.
	ErrorHold time.Duration

	// StrictSyntax reports malformed expressions as errors. When false a
	// malformed expression silently evaluates to an empty result.
	StrictSyntax bool

	Logger *slog.Logger
}

// Session is the controller for one calculator display. It is safe for
// concurrent use.
type Session struct {
	mu        sync.Mutex
	buf       calc.Buffer
	shown     string
	eval      Evaluator
	render    RenderFunc
	errorHold time.Duration
	strict    bool
	log       *slog.Logger

	pending *time.Timer
	gen     uint64
}

// New creates a Session with an empty buffer. The initial display is not
// rendered; call Clear to push it.
func New(eval Evaluator, render RenderFunc, opts Options) *Session {
	if eval == nil {
		eval = Local{}
	}
	if render == nil {
		render = func(string) {}
	}
	if opts.ErrorHold <= 0 {
		opts.ErrorHold = DefaultErrorHold
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		shown:     "0",
		eval:      eval,
		render:    render,
		errorHold: opts.ErrorHold,
		strict:    opts.StrictSyntax,
		log:       opts.Logger,
	}
}

// Display returns the text most recently rendered.
func (s *Session) Display() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shown
}

// Expression returns the raw buffer contents.
func (s *Session) Expression() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Text()
}

// Append adds a token to the expression.
func (s *Session) Append(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.buf.Append(token)
	s.show(s.buf.Display())
}

// Backspace removes the last character of the expression.
func (s *Session) Backspace() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.buf.Backspace()
	s.show(s.buf.Display())
}

// Clear empties the expression.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
	s.buf.Clear()
	s.show(s.buf.Display())
}

// Equals evaluates the expression and replaces it with the result. On
// failure the display shows ErrorText, the expression is emptied and the
// display returns to "0" after the error hold unless other input arrives
// first. The returned error is the evaluation failure, if any.
//
// The lock is not held while the evaluator runs. If other input arrives
// in the meantime the outcome is discarded.
func (s *Session) Equals(ctx context.Context) error {
	s.mu.Lock()
	s.cancelPending()
	expr := s.buf.Text()
	if expr == "" {
		s.show(s.buf.Display())
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	s.mu.Unlock()

	res, err := Evaluate(ctx, s.eval, expr, s.strict)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.log.Debug("discarding stale evaluation", "expression", expr)
		return err
	}
	if err != nil {
		s.log.Debug("evaluation failed", "expression", expr, "kind", calc.KindOf(err), "error", err)
		s.buf.Clear()
		s.show(ErrorText)
		s.scheduleReset()
		return err
	}

	s.buf.Set(res)
	s.show(s.buf.Display())
	return nil
}

// Evaluate runs expr through eval. Unless strict is set a malformed
// expression yields an empty result instead of an error.
func Evaluate(ctx context.Context, eval Evaluator, expr string, strict bool) (string, error) {
	res, err := eval.Evaluate(ctx, expr)
	if errors.Is(err, calc.ErrMalformedExpression) && !strict {
		return "", nil
	}
	return res, err
}

// Press handles a single keystroke and reports whether it was recognised.
// Keys are the characters 0-9 + - * / . ( ) %, "Enter" or "=", "Backspace"
// and "c". Named keys match case-insensitively.
func (s *Session) Press(ctx context.Context, key string) bool {
	switch {
	case len(key) == 1 && strings.Contains("0123456789+-*/().%", key):
		s.Append(key)
	case key == "=" || strings.EqualFold(key, "enter"):
		_ = s.Equals(ctx)
	case strings.EqualFold(key, "backspace"):
		s.Backspace()
	case strings.EqualFold(key, "c"):
		s.Clear()
	default:
		return false
	}
	return true
}

// Stop cancels a pending display reset without rendering anything. Call it
// when the display goes away.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelPending()
}

// show must be called with s.mu held.
func (s *Session) show(text string) {
	s.shown = text
	s.render(text)
}

// scheduleReset must be called with s.mu held.
func (s *Session) scheduleReset() {
	gen := s.gen
	s.pending = time.AfterFunc(s.errorHold, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// Input that arrived after the timer fired but before we got the
		// lock has already bumped gen.
		if s.gen != gen {
			return
		}
		s.pending = nil
		s.show(s.buf.Display())
	})
}

// cancelPending must be called with s.mu held.
func (s *Session) cancelPending() {
	s.gen++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}
