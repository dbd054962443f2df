package security

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"profile_scraper/domain/interfaces"
)

// Mask replaces every secret in redacted output.
const Mask = "censored"

// SecurityLayer keeps credential secrets out of logs. It is installed as a
// logrus hook so every entry is scrubbed before any formatter sees it.
type SecurityLayer struct {
	secrets []string
}

// NewSecurityLayer guards the given secrets; empty values are ignored.
func NewSecurityLayer(secrets ...string) *SecurityLayer {
	s := &SecurityLayer{}
	for _, secret := range secrets {
		if secret != "" {
			s.secrets = append(s.secrets, secret)
		}
	}
	return s
}

// Redact replaces every guarded secret in text.
func (s *SecurityLayer) Redact(text string) string {
	for _, secret := range s.secrets {
		text = strings.ReplaceAll(text, secret, Mask)
	}
	return text
}

func (s *SecurityLayer) contains(text string) bool {
	for _, secret := range s.secrets {
		if strings.Contains(text, secret) {
			return true
		}
	}
	return false
}

func (s *SecurityLayer) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (s *SecurityLayer) Fire(entry *logrus.Entry) error {
	if len(s.secrets) == 0 {
		return nil
	}
	entry.Message = s.Redact(entry.Message)
	for key, value := range entry.Data {
		switch v := value.(type) {
		case string:
			entry.Data[key] = s.Redact(v)
		case error:
			if s.contains(v.Error()) {
				entry.Data[key] = errors.New(s.Redact(v.Error()))
			}
		}
	}
	return nil
}

var (
	_ interfaces.Redactor = (*SecurityLayer)(nil)
	_ logrus.Hook         = (*SecurityLayer)(nil)
)
