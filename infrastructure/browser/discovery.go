package browser

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

var errNotFound = errors.New("not found")

var (
	chromeDriverPaths = []string{
		"data/input/chromedriver",
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
	}
	chromeBinaryPaths = []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
	}
)

// locate - resolves an executable: a configured path must exist, otherwise
// the first existing candidate or the first name found on PATH wins
func locate(configured string, candidates, names []string) (string, error) {
	if configured != "" {
		if _, err := os.Stat(configured); err != nil {
			return "", fmt.Errorf("%s: %w", configured, errNotFound)
		}
		return configured, nil
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errNotFound
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver(configured string) (string, error) {
	path, err := locate(configured, chromeDriverPaths, []string{"chromedriver"})
	if err != nil {
		return "", fmt.Errorf("chromedriver %w, install it or set BROWSER_DRIVER_PATH", err)
	}
	return path, nil
}

// findChromeBinary - finds the browser binary, "" lets the driver pick its default
func findChromeBinary(configured string) string {
	path, _ := locate(configured, chromeBinaryPaths, []string{"google-chrome", "chromium"})
	return path
}
