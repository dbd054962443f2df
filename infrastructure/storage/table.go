package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// table is a CSV file that is created with a header on its first write of a
// run and appended to afterwards. Every write is flushed so a crash keeps
// what was already written.
type table struct {
	path   string
	header []string
	file   *os.File
	w      *csv.Writer
}

func newTable(path string, header []string) *table {
	return &table{path: path, header: header}
}

func (t *table) write(rows [][]string) error {
	if t.file == nil {
		if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		f, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", t.path, err)
		}
		t.file = f
		t.w = csv.NewWriter(f)
		if err := t.w.Write(t.header); err != nil {
			return err
		}
	}

	if err := t.w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", t.path, err)
	}
	return nil
}

func (t *table) Close() error {
	if t.file == nil {
		return nil
	}
	t.w.Flush()
	werr := t.w.Error()
	cerr := t.file.Close()
	t.file = nil
	if werr != nil {
		return werr
	}
	return cerr
}
