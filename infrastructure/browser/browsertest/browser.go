// Package browsertest provides an in-memory interfaces.Browser for tests.
// Pages are scripted up front; elements keep their state across navigations
// so click handlers can flip visibility or move the browser to another page.
package browsertest

import (
	"context"
	"fmt"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// Page is a scripted document keyed by selector.
type Page struct {
	elements    map[entities.Selector][]*Element
	NavigateErr error
}

// NewPage returns an empty page.
func NewPage() *Page {
	return &Page{elements: make(map[entities.Selector][]*Element)}
}

// Set places elements under selector in document order.
func (p *Page) Set(selector entities.Selector, elements ...*Element) *Page {
	p.elements[selector] = elements
	return p
}

// Browser is a scripted browsing context. It is not safe for concurrent use.
type Browser struct {
	pages   map[string]*Page
	current string
	closed  bool

	// Events records navigations, reloads, clicks and typing in order.
	Events []string
}

// New returns a browser with no pages.
func New() *Browser {
	return &Browser{pages: make(map[string]*Page)}
}

// AddPage registers page under url and binds its elements to b.
func (b *Browser) AddPage(url string, page *Page) {
	for _, els := range page.elements {
		for _, el := range els {
			el.browser = b
		}
	}
	b.pages[url] = page
}

// Show switches the current page without recording a navigation, the way a
// click on an in-page link would.
func (b *Browser) Show(url string) {
	b.current = url
}

// Closed reports whether Close was called.
func (b *Browser) Closed() bool {
	return b.closed
}

func (b *Browser) record(format string, args ...any) {
	b.Events = append(b.Events, fmt.Sprintf(format, args...))
}

func (b *Browser) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.record("navigate %s", url)
	page, ok := b.pages[url]
	if !ok {
		return fmt.Errorf("no page scripted for %s", url)
	}
	if page.NavigateErr != nil {
		return page.NavigateErr
	}
	b.current = url
	return nil
}

func (b *Browser) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.record("reload")
	return nil
}

func (b *Browser) page() *Page {
	if page, ok := b.pages[b.current]; ok {
		return page
	}
	return NewPage()
}

func (b *Browser) FindElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	els := b.page().elements[selector]
	if len(els) == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, selector)
	}
	return els[0], nil
}

func (b *Browser) FindElements(ctx context.Context, selector entities.Selector) ([]interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	els := b.page().elements[selector]
	out := make([]interfaces.Element, 0, len(els))
	for _, el := range els {
		out = append(out, el)
	}
	return out, nil
}

func (b *Browser) CurrentURL(ctx context.Context) (string, error) {
	return b.current, nil
}

func (b *Browser) Close() error {
	b.closed = true
	return nil
}

var _ interfaces.Browser = (*Browser)(nil)
