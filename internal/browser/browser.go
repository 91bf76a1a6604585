// Package browser defines the session capability the scraping core runs
// against, plus its playwright-backed implementation. The core only ever
// sees these interfaces, so extraction and action logic stay testable
// without a real browser.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type LoadState string

const (
	LoadStateNetworkIdle      LoadState = "networkidle"
	LoadStateLoad             LoadState = "load"
	LoadStateDOMContentLoaded LoadState = "domcontentloaded"

	// LoadStateCommit returns as soon as navigation is committed; the
	// extractors do their own load-state waiting afterwards.
	LoadStateCommit LoadState = "commit"
)

var (
	// ErrNotFound: no visible element matched the selector within the
	// given timeout. Non-fatal by contract; callers record and continue.
	ErrNotFound = errors.New("element not found")

	// ErrTimeout: an interaction or wait exceeded its bound.
	ErrTimeout = errors.New("operation timed out")
)

// SessionError means the session itself became unusable (crashed page,
// closed target). It is the only error class that fails a whole company.
type SessionError struct {
	Op  string
	Err error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("browser session broken during %s: %v", e.Op, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

func IsSessionError(err error) bool {
	var se *SessionError
	return errors.As(err, &se)
}

// Session is one live browser page. Sessions are single-owner: one
// company task drives one session, never shared.
type Session interface {
	Navigate(ctx context.Context, url string, waitUntil LoadState, timeout time.Duration) error
	URL() string
	Content() (string, error)

	// Find waits up to timeout for a visible element matching selector
	// and returns ErrNotFound when none appears.
	Find(ctx context.Context, selector string, timeout time.Duration) (Element, error)

	// FindAll returns all current matches without waiting.
	FindAll(ctx context.Context, selector string) ([]Element, error)

	WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error
	Frames() ([]Frame, error)
	Close() error
}

type Element interface {
	Click(ctx context.Context) error
	Fill(ctx context.Context, value string) error
	SelectOption(ctx context.Context, value string) error
	Check(ctx context.Context) error
	Uncheck(ctx context.Context) error
	Press(ctx context.Context, key string) error
	Hover(ctx context.Context) error
	Text(ctx context.Context) (string, error)
	Visible(ctx context.Context) (bool, error)
}

// Frame is an embedded frame's read surface. Frame content resolves URLs
// against the frame's own origin, not the parent page's.
type Frame interface {
	URL() string
	Content() (string, error)
	WaitForLoadState(ctx context.Context, state LoadState, timeout time.Duration) error
}
