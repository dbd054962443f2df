package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"profile_scraper/application/readiness"
	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// Selectors locate the login controls on the home page.
type Selectors struct {
	SignInButton  entities.Selector
	LoginForm     entities.Selector
	EmailInput    entities.Selector
	PasswordInput entities.Selector
	SubmitButton  entities.Selector
	LandingMarker entities.Selector
}

// DefaultSelectors match the target site's markup.
func DefaultSelectors() Selectors {
	return Selectors{
		SignInButton:  entities.CSS(`[class="button default"] > [url="/texts/landing/forms/authorization#signin"]`),
		LoginForm:     entities.CSS(`[class="popup login form top with-arrow"]`),
		EmailInput:    entities.CSS(`[id="login"][name="email"][class="input txt"][type="text"]`),
		PasswordInput: entities.CSS(`[name="password"][class="input txt"][type="password"]`),
		SubmitButton:  entities.CSS(`[type="submit"] > [url="/texts/landing/forms/authorization#signin"]`),
		LandingMarker: entities.CSS(`[class="lady-card tile"]`),
	}
}

// Options configures an Establisher.
type Options struct {
	HomeURL     string
	MaxAttempts int

	// ElementTimeout bounds the wait for each login control to be clickable.
	ElementTimeout time.Duration
	// FormProbe is how long each attempt waits for the form after a click.
	FormProbe time.Duration
	// LandingTimeout bounds the wait for the authenticated landing page.
	LandingTimeout time.Duration
	// PollInterval is the readiness polling period.
	PollInterval time.Duration

	Selectors Selectors
}

// Establisher drives a browsing context through the login sequence.
type Establisher struct {
	browser interfaces.Browser
	pacer   interfaces.Pacer
	logger  logrus.FieldLogger
	opts    Options
}

// NewEstablisher returns an Establisher bound to browser.
func NewEstablisher(browser interfaces.Browser, pacer interfaces.Pacer, logger logrus.FieldLogger, opts Options) *Establisher {
	return &Establisher{
		browser: browser,
		pacer:   pacer,
		logger:  logger.WithField("component", "session"),
		opts:    opts,
	}
}

// Establish logs in with cred and returns the now authenticated browsing
// context. The credential form is filled only after it is confirmed visible.
func (e *Establisher) Establish(ctx context.Context, cred entities.Credential) (interfaces.Browser, error) {
	sel := e.opts.Selectors

	e.logger.WithField("url", e.opts.HomeURL).Info("Opening home page")
	if err := e.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	if err := e.browser.Navigate(ctx, e.opts.HomeURL); err != nil {
		return nil, fmt.Errorf("failed to open home page: %w", err)
	}

	restored, err := e.restored(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect home page: %w", err)
	}
	if restored {
		e.logger.WithField("user", cred.Identifier).Info("Session restored")
		return e.browser, nil
	}

	signIn, err := e.clickable(ctx, sel.SignInButton)
	if err != nil {
		return nil, fmt.Errorf("sign-in button unavailable: %w", err)
	}

	formVisible := readiness.WithTimeout(e.opts.FormProbe, e.opts.PollInterval, readiness.Visible(e.browser, sel.LoginForm))
	attempts, err := readiness.Retry(ctx, e.opts.MaxAttempts, signIn.Click, formVisible, func(attempt int) {
		e.logger.Infof("Displaying login webform, attempt %d of %d", attempt, e.opts.MaxAttempts)
	})
	if errors.Is(err, readiness.ErrExhausted) {
		e.logger.Error("The maximum number of clicks have been attempted")
		return nil, &entities.LoginExhaustedError{Attempts: attempts}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open login form: %w", err)
	}
	e.logger.Infof("Login webform displayed after %d attempts", attempts)

	if err := e.fill(ctx, sel.EmailInput, cred.Identifier); err != nil {
		return nil, fmt.Errorf("failed to enter email: %w", err)
	}
	if err := e.fill(ctx, sel.PasswordInput, cred.Secret); err != nil {
		return nil, fmt.Errorf("failed to enter password: %w", err)
	}

	submit, err := e.clickable(ctx, sel.SubmitButton)
	if err != nil {
		return nil, fmt.Errorf("submit button unavailable: %w", err)
	}
	if err := submit.Click(ctx); err != nil {
		return nil, fmt.Errorf("failed to submit login form: %w", err)
	}

	err = readiness.Until(ctx, e.opts.LandingTimeout, e.opts.PollInterval, readiness.Visible(e.browser, sel.LandingMarker))
	switch {
	case errors.Is(err, entities.ErrWaitTimeout):
		e.logger.WithField("timeout", e.opts.LandingTimeout).Warn("Landing page marker not seen, continuing")
	case err != nil:
		return nil, fmt.Errorf("failed waiting for landing page: %w", err)
	default:
		e.logger.Info("Landing page rendered")
	}

	e.logger.WithField("user", cred.Identifier).Info("Logged in")
	return e.browser, nil
}

// restored reports whether the home page already shows the logged-in view,
// which happens when saved cookies were loaded into the browser.
func (e *Establisher) restored(ctx context.Context) (bool, error) {
	landing, err := readiness.Visible(e.browser, e.opts.Selectors.LandingMarker)(ctx)
	if err != nil || !landing {
		return false, err
	}
	signIn, err := readiness.Visible(e.browser, e.opts.Selectors.SignInButton)(ctx)
	return !signIn, err
}

// clickable waits for selector to become interactable and returns it.
func (e *Establisher) clickable(ctx context.Context, selector entities.Selector) (interfaces.Element, error) {
	err := readiness.Until(ctx, e.opts.ElementTimeout, e.opts.PollInterval, readiness.Interactable(e.browser, selector))
	if err != nil {
		return nil, err
	}
	return e.browser.FindElement(ctx, selector)
}

func (e *Establisher) fill(ctx context.Context, selector entities.Selector, value string) error {
	el, err := e.clickable(ctx, selector)
	if err != nil {
		return err
	}
	return el.TypeText(ctx, value)
}
