package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// LinksFileName is the harvest output name.
const LinksFileName = "Profile Links.CSV"

var linkHeader = []string{"", "href"}

// LinkFile writes harvested links as `row,href`.
type LinkFile struct {
	*table
}

// NewLinkFile returns a writer for path. Nothing touches the disk until the
// first WriteLinks.
func NewLinkFile(path string) *LinkFile {
	return &LinkFile{table: newTable(path, linkHeader)}
}

func (l *LinkFile) WriteLinks(links []entities.ProfileLink) error {
	rows := make([][]string, 0, len(links))
	for _, link := range links {
		rows = append(rows, []string{strconv.Itoa(link.Row), link.Href})
	}
	return l.write(rows)
}

// LinkSource reads a link file produced by LinkFile, or any two-column CSV
// with a leading row label and an href column.
type LinkSource struct {
	path string
}

func NewLinkSource(path string) *LinkSource {
	return &LinkSource{path: path}
}

func (s *LinkSource) ReadLinks() ([]entities.ProfileLink, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLinks(f)
}

// ReadLinks parses link rows from r. Row labels are kept as given.
func ReadLinks(r io.Reader) ([]entities.ProfileLink, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	hrefCol := 1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "href") {
			hrefCol = i
			break
		}
	}
	if hrefCol == 0 {
		return nil, fmt.Errorf("href column must follow the row label column")
	}

	var links []entities.ProfileLink
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) <= hrefCol {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d", line, hrefCol+1, len(rec))
		}
		row, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid row label %q", line, rec[0])
		}
		links = append(links, entities.ProfileLink{Row: row, Href: strings.TrimSpace(rec[hrefCol])})
	}
	return links, nil
}

var (
	_ interfaces.LinkWriter = (*LinkFile)(nil)
	_ interfaces.LinkReader = (*LinkSource)(nil)
)
