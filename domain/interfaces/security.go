package interfaces

// Redactor scrubs secrets out of text before it leaves the process.
type Redactor interface {
	Redact(text string) string
}
