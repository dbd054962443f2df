package entities

// Credential is the login pair for the target site. It is read from the
// environment once per run and never written anywhere.
type Credential struct {
	Identifier string
	Secret     string
}

// String keeps the secret out of formatted output.
func (c Credential) String() string {
	return c.Identifier + ":censored"
}

// GoString covers %#v.
func (c Credential) GoString() string {
	return c.String()
}

// IsZero reports whether either half of the pair is missing.
func (c Credential) IsZero() bool {
	return c.Identifier == "" || c.Secret == ""
}
