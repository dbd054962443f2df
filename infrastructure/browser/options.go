package browser

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"profile_scraper/domain/interfaces"
	"profile_scraper/infrastructure/storage"
)

const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
)

// Options configures the concrete browser behind interfaces.Browser.
type Options struct {
	Driver        string
	Headless      bool
	DriverPath    string
	BrowserBinary string

	// State, when set, persists cookies between runs (playwright only).
	State *storage.BrowserState

	// NavigationTimeout bounds page loads and single element actions.
	NavigationTimeout time.Duration
}

const (
	viewportWidth  = 1920
	viewportHeight = 1080
	defaultTimeout = 30 * time.Second
)

// New - starts the configured browser
func New(opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = defaultTimeout
	}
	switch opts.Driver {
	case DriverPlaywright, "":
		return NewPlaywrightController(opts, logger)
	case DriverSelenium:
		return NewSeleniumController(opts, logger)
	default:
		return nil, fmt.Errorf("unknown browser driver %q", opts.Driver)
	}
}
