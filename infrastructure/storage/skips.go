package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

const (
	// SkipLedgerFileName holds one JSON object per skipped link.
	SkipLedgerFileName = "Skipped.jsonl"
	// SkippedLinksFileName holds the same links in harvest format, ready to
	// be passed back to `extract --links`.
	SkippedLinksFileName = "Skipped Links.CSV"
)

// SkipLedger records skipped links in dir.
type SkipLedger struct {
	path  string
	file  *os.File
	enc   *json.Encoder
	links *LinkFile
}

func NewSkipLedger(dir string) *SkipLedger {
	return &SkipLedger{
		path:  filepath.Join(dir, SkipLedgerFileName),
		links: NewLinkFile(filepath.Join(dir, SkippedLinksFileName)),
	}
}

func (s *SkipLedger) WriteSkip(skip entities.SkipRecord) error {
	if s.file == nil {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", s.path, err)
		}
		s.file = f
		s.enc = json.NewEncoder(f)
	}
	if err := s.enc.Encode(skip); err != nil {
		return err
	}
	return s.links.WriteLinks([]entities.ProfileLink{skip.Link()})
}

// ReadSkipLedger loads the ledger written to dir.
func ReadSkipLedger(dir string) ([]entities.SkipRecord, error) {
	f, err := os.Open(filepath.Join(dir, SkipLedgerFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var skips []entities.SkipRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var skip entities.SkipRecord
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		skips = append(skips, skip)
	}
	return skips, nil
}

func (s *SkipLedger) Close() error {
	var errs []error
	if s.file != nil {
		errs = append(errs, s.file.Close())
		s.file = nil
	}
	errs = append(errs, s.links.Close())
	return errors.Join(errs...)
}

var _ interfaces.SkipWriter = (*SkipLedger)(nil)
