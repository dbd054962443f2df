package extract

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"profile_scraper/application/readiness"
	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// Selectors locate the profile content on a profile page.
type Selectors struct {
	// ProfileContent must be interactable before fields are read.
	ProfileContent entities.Selector
	// ProfileFields are the paragraphs following each red label, in order:
	// character, interests, her type of man.
	ProfileFields entities.Selector
}

// DefaultSelectors match the target site's profile page.
func DefaultSelectors() Selectors {
	return Selectors{
		ProfileContent: entities.CSS(`[class="second-part-profile"]`),
		ProfileFields:  entities.CSS(`[class="redText b"] + p`),
	}
}

const fieldCount = 3

// Options configures an Extractor.
type Options struct {
	RenderTimeout time.Duration
	PollInterval  time.Duration

	// DelayMin and DelayMax bound the courtesy pause between profiles.
	DelayMin time.Duration
	DelayMax time.Duration

	Selectors Selectors
}

// Outcome is the result of visiting one link.
type Outcome struct {
	Link   entities.ProfileLink
	Status entities.LinkStatus
	Record *entities.ProfileRecord
	// Err explains a skip; nil for extracted links.
	Err error
}

// Summary describes a finished extraction.
type Summary struct {
	Visited   int
	Persisted int
	Skipped   int
}

// Extractor visits profile links and reads their text fields.
type Extractor struct {
	browser interfaces.Browser
	pacer   interfaces.Pacer
	logger  logrus.FieldLogger
	opts    Options
}

// NewExtractor returns an Extractor driving an authenticated browser.
func NewExtractor(browser interfaces.Browser, pacer interfaces.Pacer, logger logrus.FieldLogger, opts Options) *Extractor {
	return &Extractor{
		browser: browser,
		pacer:   pacer,
		logger:  logger.WithField("component", "extract"),
		opts:    opts,
	}
}

// Outcomes visits links in order and yields one Outcome per link. Render
// timeouts and field shape mismatches come back as skipped outcomes; any other
// failure ends the sequence with an error. links must already be deduplicated.
func (x *Extractor) Outcomes(ctx context.Context, links []entities.ProfileLink) iter.Seq2[Outcome, error] {
	return func(yield func(Outcome, error) bool) {
		for i, link := range links {
			if err := ctx.Err(); err != nil {
				yield(Outcome{Link: link, Status: entities.LinkPending}, err)
				return
			}

			outcome, err := x.visit(ctx, link)
			if err != nil {
				yield(outcome, err)
				return
			}
			if !yield(outcome, nil) {
				return
			}

			if i < len(links)-1 {
				if err := x.pacer.Pause(ctx, x.opts.DelayMin, x.opts.DelayMax); err != nil {
					yield(Outcome{Link: links[i+1], Status: entities.LinkPending}, err)
					return
				}
			}
		}
	}
}

// Records yields only the extracted records, silently passing over skips.
func (x *Extractor) Records(ctx context.Context, links []entities.ProfileLink) iter.Seq2[entities.ProfileRecord, error] {
	return func(yield func(entities.ProfileRecord, error) bool) {
		for outcome, err := range x.Outcomes(ctx, links) {
			if err != nil {
				yield(entities.ProfileRecord{}, err)
				return
			}
			if outcome.Record == nil {
				continue
			}
			if !yield(*outcome.Record, nil) {
				return
			}
		}
	}
}

// Run extracts every link, writing records and skips as they happen.
func (x *Extractor) Run(ctx context.Context, links []entities.ProfileLink, records interfaces.RecordWriter, skips interfaces.SkipWriter) (Summary, error) {
	var summary Summary
	for outcome, err := range x.Outcomes(ctx, links) {
		if err != nil {
			return summary, err
		}
		summary.Visited++

		entry := x.logger.WithFields(logrus.Fields{"row": outcome.Link.Row, "href": outcome.Link.Href})
		if outcome.Record == nil {
			summary.Skipped++
			entry.WithError(outcome.Err).WithField("status", outcome.Status).Warn("Skipped profile")
			skip := entities.SkipRecord{
				Row:    outcome.Link.Row,
				Href:   outcome.Link.Href,
				Reason: skipReason(outcome.Err),
				Detail: outcome.Err.Error(),
				At:     time.Now().UTC(),
			}
			if err := skips.WriteSkip(skip); err != nil {
				return summary, fmt.Errorf("failed to record skipped row %d: %w", outcome.Link.Row, err)
			}
			continue
		}

		if err := records.WriteRecord(*outcome.Record); err != nil {
			return summary, fmt.Errorf("failed to persist row %d: %w", outcome.Link.Row, err)
		}
		summary.Persisted++
		outcome.Status = entities.LinkPersisted
		entry.WithFields(logrus.Fields{
			"lady_id": outcome.Record.LadyID,
			"status":  outcome.Status,
		}).Info("Profile saved")
	}
	return summary, nil
}

func (x *Extractor) visit(ctx context.Context, link entities.ProfileLink) (Outcome, error) {
	outcome := Outcome{Link: link, Status: entities.LinkPending}

	ladyID, err := ParseLadyID(link.Href)
	if err != nil {
		return outcome, &entities.MalformedLinkError{Row: link.Row, Href: link.Href}
	}

	if err := x.pacer.Wait(ctx); err != nil {
		return outcome, err
	}
	if err := x.browser.Navigate(ctx, link.Href); err != nil {
		return outcome, fmt.Errorf("failed to open row %d: %w", link.Row, err)
	}
	outcome.Status = entities.LinkVisited

	err = readiness.Until(ctx, x.opts.RenderTimeout, x.opts.PollInterval, readiness.Interactable(x.browser, x.opts.Selectors.ProfileContent))
	if errors.Is(err, entities.ErrWaitTimeout) {
		outcome.Status = entities.LinkTimedOut
		outcome.Err = &entities.RenderTimeoutError{Row: link.Row, Href: link.Href, Err: err}
		return outcome, nil
	}
	if err != nil {
		return outcome, fmt.Errorf("failed waiting for row %d: %w", link.Row, err)
	}
	outcome.Status = entities.LinkRendered

	fields, err := x.fields(ctx)
	if err != nil {
		return outcome, fmt.Errorf("failed to read row %d: %w", link.Row, err)
	}
	if len(fields) != fieldCount {
		outcome.Status = entities.LinkSkipped
		outcome.Err = &entities.FieldShapeError{Row: link.Row, Href: link.Href, Got: len(fields)}
		return outcome, nil
	}

	outcome.Status = entities.LinkExtracted
	outcome.Record = &entities.ProfileRecord{
		Row:          link.Row,
		LadyID:       ladyID,
		Character:    fields[0],
		Interests:    fields[1],
		HerTypeOfMan: fields[2],
	}
	return outcome, nil
}

func (x *Extractor) fields(ctx context.Context) ([]string, error) {
	elements, err := x.browser.FindElements(ctx, x.opts.Selectors.ProfileFields)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text(ctx)
		if err != nil {
			return nil, err
		}
		texts = append(texts, strings.TrimSpace(text))
	}
	return texts, nil
}

func skipReason(err error) entities.SkipReason {
	if errors.Is(err, entities.ErrUnexpectedFieldShape) {
		return entities.SkipFieldShape
	}
	return entities.SkipRenderTimeout
}
