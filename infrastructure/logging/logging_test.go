package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"profile_scraper/infrastructure/security"
)

func TestNewWritesRunLog(t *testing.T) {
	dir := t.TempDir()
	started := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)

	logger, closer, err := New("debug", dir, "harvest", started, security.NewSecurityLayer("pa55word"))
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.Debugf("typing pa55word")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "harvest", "log 2024-05-06 07-08-09.log"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "typing censored")
	require.NotContains(t, string(raw), "pa55word")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("chatty", t.TempDir(), "harvest", time.Now())
	require.Error(t, err)
}

func TestRunDir(t *testing.T) {
	started := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	require.Equal(t, filepath.Join("data", "output", "extract", "2024-05-06 07-08-09"), RunDir(filepath.Join("data", "output"), "extract", started))
}
