package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
	"profile_scraper/infrastructure/storage"
)

type playwrightController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	state   *storage.BrowserState
	timeout float64
	logger  logrus.FieldLogger
}

// NewPlaywrightController - launches Chromium through playwright
func NewPlaywrightController(opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	log := logger.WithField("driver", DriverPlaywright)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
			fmt.Sprintf("--window-size=%d,%d", viewportWidth, viewportHeight),
		},
	}
	if opts.BrowserBinary != "" {
		log.Infof("Using Chrome binary at: %s", opts.BrowserBinary)
		launch.ExecutablePath = playwright.String(opts.BrowserBinary)
	}

	browser, err := pw.Chromium.Launch(launch)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  viewportWidth,
			Height: viewportHeight,
		},
		JavaScriptEnabled: playwright.Bool(true),
	}
	if opts.State != nil {
		data, err := opts.State.Load()
		if err != nil {
			log.WithError(err).Warn("Failed to read saved browser state")
		} else if data != nil {
			var storageState playwright.StorageState
			if err := json.Unmarshal(data, &storageState); err == nil {
				contextOptions.StorageState = storageState.ToOptionalStorageState()
				log.Info("Restored saved browser state")
			}
		}
	}

	bctx, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	timeout := float64(opts.NavigationTimeout.Milliseconds())
	bctx.SetDefaultTimeout(timeout)

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		dialog.Accept()
	})

	return &playwrightController{
		pw:      pw,
		browser: browser,
		context: bctx,
		page:    page,
		state:   opts.State,
		timeout: timeout,
		logger:  log,
	}, nil
}

// Navigate - navigates to the specified URL
func (b *playwrightController) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.logger.Debugf("Navigating to: %s", url)
	_, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(b.timeout),
	})
	return err
}

// Reload - refreshes the current page
func (b *playwrightController) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(b.timeout),
	})
	return err
}

// FindElement - returns the first element matching selector
func (b *playwrightController) FindElement(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locator := b.page.Locator(selector.String())
	count, err := locator.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %s", entities.ErrElementNotFound, selector)
	}
	return &playwrightElement{locator: locator.First(), timeout: b.timeout}, nil
}

// FindElements - returns every element matching selector in document order
func (b *playwrightController) FindElements(ctx context.Context, selector entities.Selector) ([]interfaces.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locators, err := b.page.Locator(selector.String()).All()
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(locators))
	for _, locator := range locators {
		elements = append(elements, &playwrightElement{locator: locator, timeout: b.timeout})
	}
	return elements, nil
}

// CurrentURL - returns the current page URL
func (b *playwrightController) CurrentURL(ctx context.Context) (string, error) {
	return b.page.URL(), nil
}

// saveState - saves browser state to persistent storage
func (b *playwrightController) saveState() error {
	if b.context == nil || b.state == nil {
		return nil
	}
	if _, err := b.context.StorageState(b.state.Path()); err != nil {
		if isClosedErr(err) {
			return nil
		}
		return fmt.Errorf("failed to save browser state: %w", err)
	}
	return nil
}

// Close - saves state and shuts the browser down
func (b *playwrightController) Close() error {
	var errs []error

	if err := b.saveState(); err != nil {
		errs = append(errs, err)
	}

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedErr(err) {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
		b.pw = nil
	}

	return errors.Join(errs...)
}

func isClosedErr(err error) bool {
	return strings.Contains(err.Error(), "closed")
}

type playwrightElement struct {
	locator playwright.Locator
	timeout float64
}

func (e *playwrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(e.timeout),
	})
}

func (e *playwrightElement) TypeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.locator.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(e.timeout),
	})
}

func (e *playwrightElement) Text(ctx context.Context) (string, error) {
	return e.locator.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(e.timeout),
	})
}

func (e *playwrightElement) Attribute(ctx context.Context, name string) (string, error) {
	return e.locator.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(e.timeout),
	})
}

func (e *playwrightElement) IsVisible(ctx context.Context) (bool, error) {
	return e.locator.IsVisible()
}

func (e *playwrightElement) IsEnabled(ctx context.Context) (bool, error) {
	return e.locator.IsEnabled(playwright.LocatorIsEnabledOptions{
		Timeout: playwright.Float(e.timeout),
	})
}
