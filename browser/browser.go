// Package browser provides the page automation capability used by the
// scraper: isolated sessions that navigate, wait for content and answer
// CSS selector queries.
package browser

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrElementNotFound is returned when a selector matches nothing.
	ErrElementNotFound = errors.New("browser: element not found")
	// ErrAttributeMissing is returned when the matched element lacks the attribute.
	ErrAttributeMissing = errors.New("browser: attribute missing")
	// ErrSessionClosed is returned by calls on a closed session.
	ErrSessionClosed = errors.New("browser: session closed")
)

// Scope answers selector queries relative to a page or an element.
type Scope interface {
	// Text returns the text content of the first element matching selector.
	Text(selector string) (string, error)
	// Attr returns attribute name of the first element matching selector.
	Attr(selector, name string) (string, error)
}

// Session is one isolated browser instance holding a single page.
type Session interface {
	Scope

	Navigate(ctx context.Context, url string, timeout time.Duration) error
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	// QueryAll returns one Scope per element matching selector, in document order.
	QueryAll(ctx context.Context, selector string) ([]Scope, error)
	Close() error
}

// Launcher starts sessions.
type Launcher interface {
	Launch(ctx context.Context) (Session, error)
	// Close releases resources shared by all sessions.
	Close() error
}
