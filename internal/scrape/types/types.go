package types

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by Page.WaitVisible when nothing matched in time.
var ErrTimeout = errors.New("timed out waiting for selector")

// Page is the browser surface the scraper drives. internal/browser backs it
// with Playwright and internal/snapshot with saved HTML.
type Page interface {
	Goto(ctx context.Context, url string) error
	Fill(selector, value string) error
	Click(selector string) error

	// WaitVisible blocks until at least one element matches selector and is
	// visible, or returns ErrTimeout.
	WaitVisible(selector string, timeout time.Duration) error
	Visible(selector string) (bool, error)

	// Ready reports whether the document finished loading.
	Ready() (bool, error)
	// URL is the address of the current document.
	URL() string
	Wheel(dx, dy float64) error

	Cards(selector string) ([]Card, error)
	Content() (string, error)
}

// Card is one matched result element. Queries are scoped to it.
type Card interface {
	// Texts returns the inner text of every element matching selector,
	// in document order. No match is an empty slice.
	Texts(selector string) ([]string, error)

	// Attr returns the named attribute of the first element matching
	// selector. ok is false when no element matches or the attribute is
	// absent.
	Attr(selector, name string) (value string, ok bool, err error)
}
