package harvest

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// Selectors locate the listing entries and the pagination control.
type Selectors struct {
	ProfileLink entities.Selector
	NextButton  entities.Selector
}

// DefaultSelectors match the target site's search results.
func DefaultSelectors() Selectors {
	return Selectors{
		ProfileLink: entities.CSS(`[class="lady-name"] > [class="b"]`),
		NextButton:  entities.XPath(`//a[text()="Next"]`),
	}
}

// Options configures a Harvester.
type Options struct {
	SearchURL string

	// SettleMin and SettleMax bound the random pause after each "Next" click.
	SettleMin time.Duration
	SettleMax time.Duration

	// MaxPages stops the walk after that many pages; zero means no cap.
	MaxPages int

	Selectors Selectors
}

// Page is one listing page worth of links.
type Page struct {
	Number int
	Links  []entities.ProfileLink
}

// Summary describes a finished harvest.
type Summary struct {
	Pages int
	Links int
}

// Harvester walks the paginated search results.
type Harvester struct {
	browser interfaces.Browser
	pacer   interfaces.Pacer
	logger  logrus.FieldLogger
	opts    Options
}

// NewHarvester returns a Harvester driving an authenticated browser.
func NewHarvester(browser interfaces.Browser, pacer interfaces.Pacer, logger logrus.FieldLogger, opts Options) *Harvester {
	return &Harvester{
		browser: browser,
		pacer:   pacer,
		logger:  logger.WithField("component", "harvest"),
		opts:    opts,
	}
}

// Pages yields every listing page in order. Rows are numbered from 1 and keep
// counting across pages. The walk ends when no "Next" control is present.
// The sequence drives the browser and cannot be restarted.
func (h *Harvester) Pages(ctx context.Context) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		if err := h.open(ctx); err != nil {
			yield(Page{}, err)
			return
		}

		row := 1
		var previous []string
		for number := 1; ; number++ {
			if err := ctx.Err(); err != nil {
				yield(Page{}, err)
				return
			}

			hrefs, err := h.hrefs(ctx)
			if err != nil {
				yield(Page{}, fmt.Errorf("page %d: %w", number, err))
				return
			}
			if number > 1 && slices.Equal(hrefs, previous) {
				yield(Page{}, fmt.Errorf("%w: page %d repeats page %d", entities.ErrPaginationStalled, number, number-1))
				return
			}
			previous = hrefs

			page := Page{Number: number, Links: make([]entities.ProfileLink, 0, len(hrefs))}
			for _, href := range hrefs {
				page.Links = append(page.Links, entities.ProfileLink{Row: row, Href: href})
				row++
			}
			if !yield(page, nil) {
				return
			}

			if h.opts.MaxPages > 0 && number >= h.opts.MaxPages {
				h.logger.WithField("max_pages", h.opts.MaxPages).Warn("Page cap reached, stopping")
				return
			}

			more, err := h.next(ctx)
			if err != nil {
				yield(Page{}, fmt.Errorf("page %d: %w", number, err))
				return
			}
			if !more {
				return
			}
		}
	}
}

// Harvest walks every page and appends each one to w as soon as it is read.
func (h *Harvester) Harvest(ctx context.Context, w interfaces.LinkWriter) (Summary, error) {
	var summary Summary
	for page, err := range h.Pages(ctx) {
		if err != nil {
			return summary, err
		}
		if err := w.WriteLinks(page.Links); err != nil {
			return summary, fmt.Errorf("failed to persist page %d: %w", page.Number, err)
		}
		summary.Pages++
		summary.Links += len(page.Links)

		entry := h.logger.WithFields(logrus.Fields{"page": page.Number, "links": len(page.Links)})
		if len(page.Links) > 0 {
			entry.Infof("Harvested profiles %d to %d", page.Links[0].Row, page.Links[len(page.Links)-1].Row)
		} else {
			entry.Warn("Page had no profile links")
		}
	}
	return summary, nil
}

// open loads the search page and refreshes once; the first load after login
// renders a logged-out view on the target site.
func (h *Harvester) open(ctx context.Context) error {
	h.logger.WithField("url", h.opts.SearchURL).Info("Going to profile search page")
	if err := h.pacer.Wait(ctx); err != nil {
		return err
	}
	if err := h.browser.Navigate(ctx, h.opts.SearchURL); err != nil {
		return fmt.Errorf("failed to open search page: %w", err)
	}
	if err := h.pacer.Wait(ctx); err != nil {
		return err
	}
	if err := h.browser.Reload(ctx); err != nil {
		return fmt.Errorf("failed to refresh search page: %w", err)
	}
	return nil
}

func (h *Harvester) hrefs(ctx context.Context) ([]string, error) {
	elements, err := h.browser.FindElements(ctx, h.opts.Selectors.ProfileLink)
	if err != nil {
		return nil, fmt.Errorf("failed to locate profile links: %w", err)
	}

	hrefs := make([]string, 0, len(elements))
	for i, el := range elements {
		href, err := el.Attribute(ctx, "href")
		if err != nil {
			return nil, fmt.Errorf("failed to read href of link %d: %w", i+1, err)
		}
		if href == "" {
			h.logger.WithField("position", i+1).Warn("Profile link without href, skipping")
			continue
		}
		hrefs = append(hrefs, href)
	}
	return hrefs, nil
}

// next clicks "Next" if present and reports whether another page follows.
func (h *Harvester) next(ctx context.Context) (bool, error) {
	buttons, err := h.browser.FindElements(ctx, h.opts.Selectors.NextButton)
	if err != nil {
		return false, fmt.Errorf("failed to locate next button: %w", err)
	}
	if len(buttons) == 0 {
		h.logger.Info("No next button, last page reached")
		return false, nil
	}

	if err := h.pacer.Wait(ctx); err != nil {
		return false, err
	}
	if err := buttons[0].Click(ctx); err != nil {
		return false, fmt.Errorf("failed to click next button: %w", err)
	}
	if err := h.pacer.Pause(ctx, h.opts.SettleMin, h.opts.SettleMax); err != nil {
		return false, err
	}
	return true, nil
}
