package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// TimestampLayout names per-run directories and log files.
const TimestampLayout = "2006-01-02 15-04-05"

// New builds the run logger writing to stderr and to
// <dir>/<phase>/log <timestamp>.log. hooks are installed before the first
// entry is written. The returned closer releases the log file.
func New(level, dir, phase string, started time.Time, hooks ...logrus.Hook) (*logrus.Logger, io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	logger := logrus.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	for _, hook := range hooks {
		logger.AddHook(hook)
	}

	runDir := filepath.Join(dir, phase)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(runDir, fmt.Sprintf("log %s.log", started.Format(TimestampLayout)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, f))

	return logger, f, nil
}

// RunDir is the per-run output directory for phase.
func RunDir(root, phase string, started time.Time) string {
	return filepath.Join(root, phase, started.Format(TimestampLayout))
}
