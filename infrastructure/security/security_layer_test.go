package security

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"profile_scraper/domain/entities"
)

func TestRedact(t *testing.T) {
	s := NewSecurityLayer("pa55word", "")
	require.Equal(t, "login with censored then censored", s.Redact("login with pa55word then pa55word"))
	require.Equal(t, "nothing to hide", s.Redact("nothing to hide"))
}

func TestNoSecretsIsNoop(t *testing.T) {
	s := NewSecurityLayer("")
	require.Equal(t, "", s.Redact(""))
	require.Equal(t, "abc", s.Redact("abc"))
}

func TestHookScrubsEntries(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.AddHook(NewSecurityLayer("pa55word"))

	cred := entities.Credential{Identifier: "me@example.com", Secret: "pa55word"}
	logger.WithFields(logrus.Fields{
		"typed": "pa55word",
		"cred":  cred,
		"count": 3,
	}).WithError(errors.New("rejected pa55word")).Warnf("sent %s", cred.Secret)
	logger.Infof("%v %#v", cred, cred)

	out := buf.String()
	require.NotContains(t, out, "pa55word")
	require.Contains(t, out, "sent censored")
	require.Contains(t, out, "rejected censored")
	require.Contains(t, out, "me@example.com:censored")
	require.Contains(t, out, "count=3")
}

func TestHookLeavesCallerFieldsAlone(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.AddHook(NewSecurityLayer("pa55word"))

	fields := logrus.Fields{"typed": "pa55word"}
	logger.WithFields(fields).Info("typing")
	require.Equal(t, "pa55word", fields["typed"])
	require.NotContains(t, buf.String(), "pa55word")
}

func TestCredentialFormatting(t *testing.T) {
	cred := entities.Credential{Identifier: "me@example.com", Secret: "pa55word"}
	for _, verb := range []string{"%v", "%s", "%+v", "%#v"} {
		require.NotContains(t, fmt.Sprintf(verb, cred), "pa55word", verb)
	}
}
