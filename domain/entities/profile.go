package entities

import "time"

// ProfileLink is one harvested listing entry. Row is the 1-based running
// index of the link within its harvest run.
type ProfileLink struct {
	Row  int    `json:"row"`
	Href string `json:"href"`
}

// ProfileRecord is the text extracted from one rendered profile page.
// Row is copied from the ProfileLink it came from.
type ProfileRecord struct {
	Row          int    `json:"row"`
	LadyID       string `json:"lady_id"`
	Character    string `json:"character"`
	Interests    string `json:"interests"`
	HerTypeOfMan string `json:"her_type_of_man"`
}

// LinkStatus is the extraction state of a single link.
type LinkStatus string

const (
	LinkPending   LinkStatus = "pending"
	LinkVisited   LinkStatus = "visited"
	LinkRendered  LinkStatus = "rendered"
	LinkExtracted LinkStatus = "extracted"
	LinkPersisted LinkStatus = "persisted"
	LinkTimedOut  LinkStatus = "timed_out"
	LinkSkipped   LinkStatus = "skipped"
)

// SkipReason explains why a link produced no record.
type SkipReason string

const (
	SkipRenderTimeout SkipReason = "render_timeout"
	SkipFieldShape    SkipReason = "unexpected_field_shape"
)

// SkipRecord is a ledger entry for a link that was skipped during extraction.
type SkipRecord struct {
	Row    int        `json:"row"`
	Href   string     `json:"href"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
	At     time.Time  `json:"at"`
}

// Link returns the ledger entry in harvest-file shape so it can be fed back
// into a retry pass.
func (s SkipRecord) Link() ProfileLink {
	return ProfileLink{Row: s.Row, Href: s.Href}
}

// IDCollision reports distinct hrefs that resolve to the same lady ID.
type IDCollision struct {
	LadyID string        `json:"lady_id"`
	Links  []ProfileLink `json:"links"`
}
