package storage

import (
	"os"
	"path/filepath"
)

const (
	stateDirName  = ".profile_scraper"
	stateFileName = "browser_state.json"
)

// BrowserState locates the persisted cookie/local-storage snapshot that lets
// a later run start from an existing session.
type BrowserState struct {
	path string
}

// NewBrowserState places the snapshot under dir, or under the user's home
// directory when dir is empty.
func NewBrowserState(dir string) (*BrowserState, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, stateDirName)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &BrowserState{path: filepath.Join(dir, stateFileName)}, nil
}

// Path is where the snapshot is written.
func (s *BrowserState) Path() string {
	return s.path
}

// Load returns the snapshot, or nil when none has been saved yet.
func (s *BrowserState) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Clear removes the snapshot.
func (s *BrowserState) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
