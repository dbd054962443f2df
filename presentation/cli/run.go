package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"profile_scraper/application/extract"
	"profile_scraper/application/harvest"
	"profile_scraper/application/readiness"
	"profile_scraper/application/runner"
	"profile_scraper/application/session"
	"profile_scraper/infrastructure/browser"
	"profile_scraper/infrastructure/config"
	"profile_scraper/infrastructure/logging"
	"profile_scraper/infrastructure/pacing"
	"profile_scraper/infrastructure/security"
	"profile_scraper/infrastructure/storage"
)

// formProbe bounds the wait for the login form after each sign-in click.
const formProbe = 2 * time.Second

// run is one invocation of a phase: its config, logger, output directory
// and a started runner. close must be called once the phase returns.
type run struct {
	cfg     *config.Config
	logger  *logrus.Logger
	outDir  string
	runner  *runner.Runner
	closers []io.Closer
}

func start(cmd *cobra.Command, phase string) (*run, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	started := time.Now()

	guard := security.NewSecurityLayer(cfg.Credential.Secret)
	redactor = guard
	logger, logFile, err := logging.New(cfg.LogLevel, cfg.LogDir, phase, started, guard)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	r := &run{cfg: cfg, logger: logger, closers: []io.Closer{logFile}}

	r.outDir = logging.RunDir(cfg.OutputDir, phase, started)
	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		r.close()
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"phase":      phase,
		"user":       cfg.Credential.Identifier,
		"driver":     cfg.Driver,
		"headless":   cfg.Headless,
		"output_dir": r.outDir,
	}).Info("Begin running")

	state, err := storage.NewBrowserState(cfg.StateDir)
	if err != nil {
		logger.Warnf("Browser state disabled: %v", err)
	} else if *freshFlag {
		if err := state.Clear(); err != nil {
			logger.Warnf("Failed to discard saved session: %v", err)
		}
	}

	b, err := browser.New(browser.Options{
		Driver:            cfg.Driver,
		Headless:          cfg.Headless,
		DriverPath:        cfg.DriverPath,
		BrowserBinary:     cfg.BrowserBinary,
		State:             state,
		NavigationTimeout: cfg.RenderTimeout,
	}, logger)
	if err != nil {
		r.close()
		return nil, fmt.Errorf("failed to initialize browser: %w", err)
	}
	// the browser goes first so its state is saved while logging still works
	r.closers = append([]io.Closer{b}, r.closers...)

	pacer := pacing.New(cfg.NavigationsPerMinute)
	r.runner = runner.New(b, pacer, logger, runner.Options{
		Session: session.Options{
			HomeURL:        cfg.HomeURL,
			MaxAttempts:    cfg.MaxLoginAttempts,
			ElementTimeout: cfg.LoginTimeout,
			FormProbe:      formProbe,
			LandingTimeout: cfg.LoginTimeout,
			PollInterval:   readiness.DefaultInterval,
			Selectors:      session.DefaultSelectors(),
		},
		Harvest: harvest.Options{
			SearchURL: cfg.SearchURL,
			SettleMin: cfg.PageSettleMin,
			SettleMax: cfg.PageSettleMax,
			MaxPages:  cfg.MaxPages,
			Selectors: harvest.DefaultSelectors(),
		},
		Extract: extract.Options{
			RenderTimeout: cfg.RenderTimeout,
			PollInterval:  readiness.DefaultInterval,
			DelayMin:      cfg.DelayMin,
			DelayMax:      cfg.DelayMax,
			Selectors:     extract.DefaultSelectors(),
		},
	})
	return r, nil
}

func (r *run) close() {
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			r.logger.Warnf("Cleanup failed: %v", err)
		}
	}
}

// finish logs the outcome of a phase and passes err through.
func (r *run) finish(err error) error {
	switch {
	case err == nil:
		r.logger.Info("Finished running")
	case errors.Is(err, context.Canceled):
		r.logger.Warn("Interrupted, partial output kept")
	default:
		r.logger.WithError(err).Error("Run failed")
	}
	return err
}
