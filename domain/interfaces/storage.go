package interfaces

import "profile_scraper/domain/entities"

// LinkWriter persists harvested links page by page.
type LinkWriter interface {
	// WriteLinks appends one page worth of links; the first call of a run
	// also writes the header
	WriteLinks(links []entities.ProfileLink) error
	Close() error
}

// LinkReader loads a previously harvested link list.
type LinkReader interface {
	ReadLinks() ([]entities.ProfileLink, error)
}

// RecordWriter persists extracted profiles one at a time.
type RecordWriter interface {
	WriteRecord(record entities.ProfileRecord) error
	Close() error
}

// SkipWriter keeps a trace of links that produced no record.
type SkipWriter interface {
	WriteSkip(skip entities.SkipRecord) error
	Close() error
}
