package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrLoginExhausted is fatal: the login form never became visible.
	ErrLoginExhausted = errors.New("login form did not become visible")
	// ErrMalformedLink is fatal: a harvested href has no trailing LadyID.
	ErrMalformedLink = errors.New("malformed profile link")
	// ErrRenderTimeout is recoverable for a single link.
	ErrRenderTimeout = errors.New("profile did not render in time")
	// ErrUnexpectedFieldShape is recoverable for a single link.
	ErrUnexpectedFieldShape = errors.New("unexpected profile field shape")
	// ErrWaitTimeout is returned by wait primitives when the deadline passes.
	ErrWaitTimeout = errors.New("wait timed out")
	// ErrPaginationStalled is fatal: "Next" kept returning the same page.
	ErrPaginationStalled = errors.New("pagination stalled")
	// ErrElementNotFound is returned by backends when an expected element is absent.
	ErrElementNotFound = errors.New("element not found")
)

// LoginExhaustedError carries the attempt budget that was spent.
type LoginExhaustedError struct {
	Attempts int
}

func (e *LoginExhaustedError) Error() string {
	return fmt.Sprintf("%v after %d attempts", ErrLoginExhausted, e.Attempts)
}

func (e *LoginExhaustedError) Unwrap() error {
	return ErrLoginExhausted
}

// MalformedLinkError identifies the offending input row.
type MalformedLinkError struct {
	Row  int
	Href string
}

func (e *MalformedLinkError) Error() string {
	return fmt.Sprintf("%v at row %d: %q", ErrMalformedLink, e.Row, e.Href)
}

func (e *MalformedLinkError) Unwrap() error {
	return ErrMalformedLink
}

// FieldShapeError records how many text fields a rendered profile had.
type FieldShapeError struct {
	Row  int
	Href string
	Got  int
}

func (e *FieldShapeError) Error() string {
	return fmt.Sprintf("%v at row %d: want 3 fields, got %d", ErrUnexpectedFieldShape, e.Row, e.Got)
}

func (e *FieldShapeError) Unwrap() error {
	return ErrUnexpectedFieldShape
}

// RenderTimeoutError wraps ErrRenderTimeout with the link that timed out.
type RenderTimeoutError struct {
	Row  int
	Href string
	Err  error
}

func (e *RenderTimeoutError) Error() string {
	return fmt.Sprintf("%v at row %d: %v", ErrRenderTimeout, e.Row, e.Err)
}

func (e *RenderTimeoutError) Unwrap() []error {
	return []error{ErrRenderTimeout, e.Err}
}
