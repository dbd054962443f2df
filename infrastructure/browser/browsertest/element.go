package browsertest

import (
	"context"

	"profile_scraper/domain/interfaces"
)

// Element is a scripted node.
type Element struct {
	Name     string
	Content  string
	Attrs    map[string]string
	Visible  bool
	Disabled bool

	// OnClick runs after the click is recorded.
	OnClick func() error

	// Typed holds every value passed to TypeText.
	Typed []string

	Clicks int

	browser *Browser
}

// Link returns a visible anchor carrying href.
func Link(name, href string) *Element {
	return &Element{Name: name, Visible: true, Attrs: map[string]string{"href": href}}
}

// Text returns a visible element with the given content.
func Text(name, content string) *Element {
	return &Element{Name: name, Content: content, Visible: true}
}

// Button returns a visible, enabled element running onClick.
func Button(name string, onClick func() error) *Element {
	return &Element{Name: name, Visible: true, OnClick: onClick}
}

func (e *Element) record(format string, args ...any) {
	if e.browser != nil {
		e.browser.record(format, args...)
	}
}

func (e *Element) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.Clicks++
	e.record("click %s", e.Name)
	if e.OnClick != nil {
		return e.OnClick()
	}
	return nil
}

func (e *Element) TypeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.record("type %s", e.Name)
	e.Typed = append(e.Typed, text)
	return nil
}

func (e *Element) Text(ctx context.Context) (string, error) {
	return e.Content, nil
}

func (e *Element) Attribute(ctx context.Context, name string) (string, error) {
	return e.Attrs[name], nil
}

func (e *Element) IsVisible(ctx context.Context) (bool, error) {
	return e.Visible, nil
}

func (e *Element) IsEnabled(ctx context.Context) (bool, error) {
	return !e.Disabled, nil
}

var _ interfaces.Element = (*Element)(nil)
