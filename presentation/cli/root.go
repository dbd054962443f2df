package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"profile_scraper/domain/interfaces"
	"profile_scraper/infrastructure/config"
	"profile_scraper/infrastructure/security"
)

var rootCmd = &cobra.Command{
	Use:           "profile_scraper",
	Short:         "profile_scraper logs in to the dating site, harvests profile links and extracts profiles.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// redactor scrubs errors printed outside the logger. start replaces it once
// the credential is known.
var redactor interfaces.Redactor = security.NewSecurityLayer()

var (
	driverFlag    *string
	headlessFlag  *bool
	outputDirFlag *string
	logLevelFlag  *string
	maxPagesFlag  *int
	freshFlag     *bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	driverFlag = flags.String("driver", "", "Browser backend: playwright or selenium (overrides SCRAPER_DRIVER).")
	headlessFlag = flags.Bool("headless", false, "Run the browser without a window (overrides SCRAPER_HEADLESS).")
	outputDirFlag = flags.String("output-dir", "", "Root of per-run output directories (overrides SCRAPER_OUTPUT_DIR).")
	logLevelFlag = flags.String("log-level", "", "Log level (overrides SCRAPER_LOG_LEVEL).")
	freshFlag = flags.Bool("fresh-session", false, "Discard the saved browser session before starting.")
	maxPagesFlag = flags.Int("max-pages", 0, "Stop harvesting after this many pages, 0 for no cap (overrides SCRAPER_MAX_PAGES).")
}

// ExecuteContext runs the command line and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", redactor.Redact(err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads the environment and applies any flag the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = *driverFlag
	}
	if flags.Changed("headless") {
		cfg.Headless = *headlessFlag
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = *outputDirFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = *logLevelFlag
	}
	if flags.Changed("max-pages") {
		cfg.MaxPages = *maxPagesFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
