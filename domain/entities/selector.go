package entities

// SelectorKind names the locator strategy understood by browser backends.
type SelectorKind string

const (
	SelectorCSS   SelectorKind = "css"
	SelectorXPath SelectorKind = "xpath"
)

// Selector locates elements on the current page.
type Selector struct {
	Kind  SelectorKind `json:"kind"`
	Value string       `json:"value"`
}

// CSS builds a CSS selector.
func CSS(value string) Selector {
	return Selector{Kind: SelectorCSS, Value: value}
}

// XPath builds an XPath selector.
func XPath(value string) Selector {
	return Selector{Kind: SelectorXPath, Value: value}
}

func (s Selector) String() string {
	return string(s.Kind) + "=" + s.Value
}
