package extract

import "profile_scraper/domain/entities"

// Dedupe drops repeated hrefs, keeping the first occurrence and its row. It
// also reports distinct hrefs that resolve to the same lady ID; those are all
// kept. Hrefs without a parsable ID are left for the extractor to reject.
func Dedupe(links []entities.ProfileLink) ([]entities.ProfileLink, []entities.IDCollision) {
	seen := make(map[string]struct{}, len(links))
	kept := make([]entities.ProfileLink, 0, len(links))

	byID := make(map[string][]entities.ProfileLink)
	var order []string

	for _, link := range links {
		if _, dup := seen[link.Href]; dup {
			continue
		}
		seen[link.Href] = struct{}{}
		kept = append(kept, link)

		id, err := ParseLadyID(link.Href)
		if err != nil {
			continue
		}
		if _, ok := byID[id]; !ok {
			order = append(order, id)
		}
		byID[id] = append(byID[id], link)
	}

	var collisions []entities.IDCollision
	for _, id := range order {
		if group := byID[id]; len(group) > 1 {
			collisions = append(collisions, entities.IDCollision{LadyID: id, Links: group})
		}
	}
	return kept, collisions
}
