package extract

import (
	"fmt"
	"regexp"

	"profile_scraper/domain/entities"
)

var ladyIDPattern = regexp.MustCompile(`LadyID=(\d+)$`)

// ParseLadyID returns the digits of the trailing LadyID query parameter.
func ParseLadyID(href string) (string, error) {
	m := ladyIDPattern.FindStringSubmatch(href)
	if m == nil {
		return "", fmt.Errorf("%w: %q", entities.ErrMalformedLink, href)
	}
	return m[1], nil
}
