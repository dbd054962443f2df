package interfaces

import (
	"context"

	"profile_scraper/domain/entities"
)

// Element is a handle to one node on the current page.
type Element interface {
	// Click activates the element
	Click(ctx context.Context) error

	// TypeText replaces the element's value with text
	TypeText(ctx context.Context, text string) error

	// Text returns the rendered text content
	Text(ctx context.Context) (string, error)

	// Attribute returns the named attribute, or "" when it is not set
	Attribute(ctx context.Context, name string) (string, error)

	// IsVisible reports whether the element is displayed
	IsVisible(ctx context.Context) (bool, error)

	// IsEnabled reports whether the element accepts interaction
	IsEnabled(ctx context.Context) (bool, error)
}

// Browser is the automation capability driving a single browsing context.
// Implementations are not safe for concurrent use; one caller owns the
// context for the whole run.
type Browser interface {
	// Navigate loads url in the current tab
	Navigate(ctx context.Context, url string) error

	// Reload refreshes the current page
	Reload(ctx context.Context) error

	// FindElement returns the first match, or entities.ErrElementNotFound
	FindElement(ctx context.Context, selector entities.Selector) (Element, error)

	// FindElements returns all matches in document order; empty when none
	FindElements(ctx context.Context, selector entities.Selector) ([]Element, error)

	// CurrentURL returns the address of the loaded page
	CurrentURL(ctx context.Context) (string, error)

	// Close tears the browsing context down
	Close() error
}
