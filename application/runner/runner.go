package runner

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"profile_scraper/application/extract"
	"profile_scraper/application/harvest"
	"profile_scraper/application/session"
	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// Options groups the settings of every phase.
type Options struct {
	Session session.Options
	Harvest harvest.Options
	Extract extract.Options
}

// Runner sequences login with one of the two scraping phases over a single
// browsing context.
type Runner struct {
	browser interfaces.Browser
	pacer   interfaces.Pacer
	logger  logrus.FieldLogger
	opts    Options
}

// New - creates new runner instance
func New(browser interfaces.Browser, pacer interfaces.Pacer, logger logrus.FieldLogger, opts Options) *Runner {
	return &Runner{
		browser: browser,
		pacer:   pacer,
		logger:  logger,
		opts:    opts,
	}
}

// Login - establishes an authenticated session and stops there
func (r *Runner) Login(ctx context.Context, cred entities.Credential) error {
	_, err := r.login(ctx, cred)
	return err
}

// Harvest - logs in and writes every profile link of the search listing
func (r *Runner) Harvest(ctx context.Context, cred entities.Credential, links interfaces.LinkWriter) (harvest.Summary, error) {
	browser, err := r.login(ctx, cred)
	if err != nil {
		return harvest.Summary{}, err
	}

	summary, err := harvest.NewHarvester(browser, r.pacer, r.logger, r.opts.Harvest).Harvest(ctx, links)
	if err != nil {
		return summary, fmt.Errorf("harvest stopped after %d pages: %w", summary.Pages, err)
	}
	r.logger.WithFields(logrus.Fields{
		"pages": summary.Pages,
		"links": summary.Links,
	}).Info("Harvest finished")
	return summary, nil
}

// Extract - logs in and extracts one record per distinct link
func (r *Runner) Extract(ctx context.Context, cred entities.Credential, source interfaces.LinkReader, records interfaces.RecordWriter, skips interfaces.SkipWriter) (extract.Summary, error) {
	links, err := source.ReadLinks()
	if err != nil {
		return extract.Summary{}, fmt.Errorf("failed to read links: %w", err)
	}
	unique, collisions := extract.Dedupe(links)
	if dropped := len(links) - len(unique); dropped > 0 {
		r.logger.Infof("Dropped %d duplicate links", dropped)
	}
	for _, c := range collisions {
		r.logger.WithFields(logrus.Fields{
			"lady_id": c.LadyID,
			"links":   c.Links,
		}).Warn("Distinct links share a profile ID")
	}

	browser, err := r.login(ctx, cred)
	if err != nil {
		return extract.Summary{}, err
	}

	summary, err := extract.NewExtractor(browser, r.pacer, r.logger, r.opts.Extract).Run(ctx, unique, records, skips)
	if err != nil {
		return summary, fmt.Errorf("extraction stopped after %d links: %w", summary.Visited, err)
	}
	r.logger.WithFields(logrus.Fields{
		"visited":   summary.Visited,
		"persisted": summary.Persisted,
		"skipped":   summary.Skipped,
	}).Info("Extraction finished")
	return summary, nil
}

func (r *Runner) login(ctx context.Context, cred entities.Credential) (interfaces.Browser, error) {
	r.logger.Info("Logging in")
	browser, err := session.NewEstablisher(r.browser, r.pacer, r.logger, r.opts.Session).Establish(ctx, cred)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return browser, nil
}
