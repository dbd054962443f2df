package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"profile_scraper/domain/entities"
)

const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
)

// Config is everything a run needs. The credential comes from the
// environment only.
type Config struct {
	Credential entities.Credential

	HomeURL   string
	SearchURL string

	Driver        string
	Headless      bool
	DriverPath    string
	BrowserBinary string
	StateDir      string

	MaxLoginAttempts int
	LoginTimeout     time.Duration
	RenderTimeout    time.Duration
	PageSettleMin    time.Duration
	PageSettleMax    time.Duration
	DelayMin         time.Duration
	DelayMax         time.Duration

	NavigationsPerMinute int
	MaxPages             int

	OutputDir string
	LogDir    string
	LogLevel  string
}

// credentialKeys may only come from the process environment.
var credentialKeys = []string{"SCRAPER_EMAIL", "SCRAPER_PASSWORD"}

// Load reads .env when present and then the process environment, which
// takes precedence. A .env file carrying the credential is rejected.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return FromEnv()
}

func loadDotEnv(path string) error {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for _, key := range credentialKeys {
		if _, ok := values[key]; ok {
			return fmt.Errorf("%s must be set in the environment, not in %s", key, path)
		}
	}
	for key, value := range values {
		if current, set := os.LookupEnv(key); !set || current == "" {
			os.Setenv(key, value)
		}
	}
	return nil
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (*Config, error) {
	r := &reader{}
	cfg := &Config{
		Credential: entities.Credential{
			Identifier: os.Getenv("SCRAPER_EMAIL"),
			Secret:     os.Getenv("SCRAPER_PASSWORD"),
		},
		HomeURL:       r.str("SCRAPER_HOME_URL", "https://www.anastasiadate.com/"),
		SearchURL:     r.str("SCRAPER_SEARCH_URL", "https://www.anastasiadate.com/Pages/Search/SearchResults.aspx?sortBy=4"),
		Driver:        strings.ToLower(r.str("SCRAPER_DRIVER", DriverPlaywright)),
		Headless:      r.boolean("SCRAPER_HEADLESS", false),
		DriverPath:    r.str("BROWSER_DRIVER_PATH", ""),
		BrowserBinary: r.str("CHROME_BINARY_PATH", ""),
		StateDir:      r.str("SCRAPER_STATE_DIR", ""),

		MaxLoginAttempts: r.integer("SCRAPER_MAX_LOGIN_ATTEMPTS", 100),
		LoginTimeout:     r.duration("SCRAPER_LOGIN_TIMEOUT", 20*time.Second),
		RenderTimeout:    r.duration("SCRAPER_RENDER_TIMEOUT", 60*time.Second),
		PageSettleMin:    r.duration("SCRAPER_PAGE_SETTLE_MIN", 1*time.Second),
		PageSettleMax:    r.duration("SCRAPER_PAGE_SETTLE_MAX", 5*time.Second),
		DelayMin:         r.duration("SCRAPER_DELAY_MIN", 1*time.Second),
		DelayMax:         r.duration("SCRAPER_DELAY_MAX", 10*time.Second),

		NavigationsPerMinute: r.integer("SCRAPER_NAVIGATIONS_PER_MINUTE", 30),
		MaxPages:             r.integer("SCRAPER_MAX_PAGES", 0),

		OutputDir: r.str("SCRAPER_OUTPUT_DIR", "data/output"),
		LogDir:    r.str("SCRAPER_LOG_DIR", "logs"),
		LogLevel:  r.str("SCRAPER_LOG_LEVEL", "info"),
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late, after a browser
// has already started.
func (c *Config) Validate() error {
	var errs []error
	if c.Credential.IsZero() {
		errs = append(errs, errors.New("SCRAPER_EMAIL and SCRAPER_PASSWORD must be set"))
	}
	if c.Driver != DriverPlaywright && c.Driver != DriverSelenium {
		errs = append(errs, fmt.Errorf("unknown driver %q, want %s or %s", c.Driver, DriverPlaywright, DriverSelenium))
	}
	if c.MaxLoginAttempts < 1 {
		errs = append(errs, errors.New("max login attempts must be at least 1"))
	}
	if c.RenderTimeout <= 0 {
		errs = append(errs, errors.New("render timeout must be positive"))
	}
	if c.PageSettleMin > c.PageSettleMax {
		errs = append(errs, fmt.Errorf("page settle range %s..%s is reversed", c.PageSettleMin, c.PageSettleMax))
	}
	if c.DelayMin > c.DelayMax {
		errs = append(errs, fmt.Errorf("delay range %s..%s is reversed", c.DelayMin, c.DelayMax))
	}
	if c.MaxPages < 0 {
		errs = append(errs, errors.New("max pages cannot be negative"))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// reader collects parse errors so every bad variable is reported at once.
type reader struct {
	errs []error
}

func (r *reader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (r *reader) integer(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (r *reader) boolean(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}

func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}
