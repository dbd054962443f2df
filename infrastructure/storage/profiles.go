package storage

import (
	"strconv"

	"profile_scraper/domain/entities"
	"profile_scraper/domain/interfaces"
)

// ProfilesFileName is the extraction output name.
const ProfilesFileName = "Profiles.CSV"

var profileHeader = []string{"", "Lady ID", "Character", "Interests", "Her Type of Man"}

// ProfileFile writes extracted profiles, one row per record.
type ProfileFile struct {
	*table
}

func NewProfileFile(path string) *ProfileFile {
	return &ProfileFile{table: newTable(path, profileHeader)}
}

func (p *ProfileFile) WriteRecord(record entities.ProfileRecord) error {
	return p.write([][]string{{
		strconv.Itoa(record.Row),
		record.LadyID,
		record.Character,
		record.Interests,
		record.HerTypeOfMan,
	}})
}

var _ interfaces.RecordWriter = (*ProfileFile)(nil)
