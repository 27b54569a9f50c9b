// Package fetch renders pages for the site adapters. A Session is acquired
// with Opener.Open at the start of one extraction call and must be closed by
// that call on every exit path.
package fetch

import (
	"context"
	"fmt"
)

// Opener acquires a rendering session.
type Opener interface {
	Open(ctx context.Context) (Session, error)
}

// Session renders URLs and captures diagnostics. Sessions are bound to the
// context they were opened with and are not safe for concurrent use.
type Session interface {
	// Render navigates to url and returns the final markup. When ready is
	// non-empty the session waits a bounded time for that CSS selector before
	// capturing. If the wait runs out, the markup captured at that point is
	// returned together with a *ReadyTimeoutError.
	Render(url, ready string) (string, error)
	// Snapshot writes a diagnostic artifact of the current page to path,
	// overwriting any previous file.
	Snapshot(path string) error
	Close() error
}

// NavigationError reports an unreachable page or a navigation timeout.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigate %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error {
	return e.Err
}

// ReadyTimeoutError reports that the ready selector never appeared. The page
// itself loaded, so Render still returns its markup.
type ReadyTimeoutError struct {
	URL      string
	Selector string
	Err      error
}

func (e *ReadyTimeoutError) Error() string {
	return fmt.Sprintf("wait for %q on %s: %v", e.Selector, e.URL, e.Err)
}

func (e *ReadyTimeoutError) Unwrap() error {
	return e.Err
}
