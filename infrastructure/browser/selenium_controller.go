package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

const chromeDriverPort = 9515

// seleniumController drives Chrome over WebDriver.
type seleniumController struct {
	wd      selenium.WebDriver
	service *selenium.Service
	logger  logrus.FieldLogger
}

// NewSeleniumController - creates new Selenium browser controller instance
func NewSeleniumController(opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	log := logger.WithField("driver", DriverSelenium)

	driverPath, err := findChromeDriver(opts.DriverPath)
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	log.Infof("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary(opts.BrowserBinary)
	if chromeBinary != "" {
		log.Infof("Using Chrome binary at: %s", chromeBinary)
	}

	service, err := selenium.NewChromeDriverService(driverPath, chromeDriverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	chromeCaps := chrome.Capabilities{
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
			fmt.Sprintf("--window-size=%d,%d", viewportWidth, viewportHeight),
		},
	}
	if opts.Headless {
		chromeCaps.Args = append(chromeCaps.Args, "--headless=new")
	}
	if chromeBinary != "" {
		chromeCaps.Path = chromeBinary
	}

	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", chromeDriverPort))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to create webdriver: Chrome browser not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable. Error: %w", err)
		}
		return nil, fmt.Errorf("failed to create webdriver: %w", err)
	}

	if err := wd.SetPageLoadTimeout(opts.NavigationTimeout); err != nil {
		log.Warnf("Failed to set page load timeout: %v", err)
	}

	return &seleniumController{
		wd:      wd,
		service: service,
		logger:  log,
	}, nil
}

// Navigate - navigates browser to specified URL
func (s *seleniumController) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.Debugf("Navigating to: %s", url)
	return s.wd.Get(url)
}

// Reload - refreshes the current page
func (s *seleniumController) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.wd.Refresh()
}

// FindElement - returns the first element matching selector
func (s *seleniumController) FindElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	by, err := byFor(selector)
	if err != nil {
		return nil, err
	}
	element, err := s.wd.FindElement(by, selector.Value)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, selector)
		}
		return nil, err
	}
	return &seleniumElement{element: element}, nil
}

// FindElements - returns every element matching selector in document order
func (s *seleniumController) FindElements(ctx context.Context, selector entities.Selector) ([]interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	by, err := byFor(selector)
	if err != nil {
		return nil, err
	}
	found, err := s.wd.FindElements(by, selector.Value)
	if err != nil {
		if isNoSuchElement(err) {
			return nil, nil
		}
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(found))
	for _, element := range found {
		elements = append(elements, &seleniumElement{element: element})
	}
	return elements, nil
}

// CurrentURL - returns current page URL
func (s *seleniumController) CurrentURL(ctx context.Context) (string, error) {
	return s.wd.CurrentURL()
}

// Close - closes browser and stops ChromeDriver service
func (s *seleniumController) Close() error {
	var errs []error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			errs = append(errs, err)
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			errs = append(errs, err)
		}
		s.service = nil
	}
	return errors.Join(errs...)
}

func byFor(selector entities.Selector) (string, error) {
	switch selector.Kind {
	case entities.SelectorCSS:
		return selenium.ByCSSSelector, nil
	case entities.SelectorXPath:
		return selenium.ByXPATH, nil
	default:
		return "", fmt.Errorf("unsupported selector kind %q", selector.Kind)
	}
}

func isNoSuchElement(err error) bool {
	var serr *selenium.Error
	if errors.As(err, &serr) {
		return serr.Err == "no such element"
	}
	return strings.Contains(err.Error(), "no such element")
}

type seleniumElement struct {
	element selenium.WebElement
}

func (e *seleniumElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.element.Click()
}

func (e *seleniumElement) TypeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := e.element.Clear(); err != nil {
		return fmt.Errorf("failed to clear element: %w", err)
	}
	return e.element.SendKeys(text)
}

func (e *seleniumElement) Text(ctx context.Context) (string, error) {
	return e.element.Text()
}

func (e *seleniumElement) Attribute(ctx context.Context, name string) (string, error) {
	value, err := e.element.GetAttribute(name)
	if err != nil && strings.Contains(err.Error(), "nil return value") {
		return "", nil
	}
	return value, err
}

func (e *seleniumElement) IsVisible(ctx context.Context) (bool, error) {
	return e.element.IsDisplayed()
}

func (e *seleniumElement) IsEnabled(ctx context.Context) (bool, error) {
	return e.element.IsEnabled()
}

var _ interfaces.Browser = (*seleniumController)(nil)
