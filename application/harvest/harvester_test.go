package harvest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"profile_scraper/domain/entities"
	"profile_scraper/infrastructure/browser/browsertest"
	"profile_scraper/infrastructure/pacing"
	"profile_scraper/infrastructure/storage"
)

const searchURL = "https://dating.test/search?sortBy=4"

func href(id int) string {
	return fmt.Sprintf("https://dating.test/profile?LadyID=%d", id)
}

func profileLinks(from, n int) []*browsertest.Element {
	els := make([]*browsertest.Element, 0, n)
	for i := 0; i < n; i++ {
		els = append(els, browsertest.Link(fmt.Sprintf("profile%d", from+i), href(from+i)))
	}
	return els
}

// listing scripts a search result walk, one slice of link elements per page.
// Every page but the last carries a "Next" button leading to the next one.
func listing(pages ...[]*browsertest.Element) *browsertest.Browser {
	sel := DefaultSelectors()
	b := browsertest.New()
	for i, links := range pages {
		url := searchURL
		if i > 0 {
			url = fmt.Sprintf("%s#page%d", searchURL, i+1)
		}
		page := browsertest.NewPage().Set(sel.ProfileLink, links...)
		if i < len(pages)-1 {
			nextURL := fmt.Sprintf("%s#page%d", searchURL, i+2)
			page.Set(sel.NextButton, browsertest.Button("next", func() error {
				b.Show(nextURL)
				return nil
			}))
		}
		b.AddPage(url, page)
	}
	return b
}

func testPacer(pauses *[]time.Duration) *pacing.Pacer {
	return pacing.New(0, pacing.WithSeed(1), pacing.WithSleep(func(ctx context.Context, d time.Duration) error {
		*pauses = append(*pauses, d)
		return ctx.Err()
	}))
}

func testOptions() Options {
	return Options{
		SearchURL: searchURL,
		SettleMin: time.Second,
		SettleMax: 5 * time.Second,
		Selectors: DefaultSelectors(),
	}
}

func TestHarvestTwoPages(t *testing.T) {
	b := listing(profileLinks(100, 20), profileLinks(200, 5))
	logger, hook := test.NewNullLogger()
	var pauses []time.Duration

	path := filepath.Join(t.TempDir(), storage.LinksFileName)
	w := storage.NewLinkFile(path)
	summary, err := NewHarvester(b, testPacer(&pauses), logger, testOptions()).Harvest(context.Background(), w)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, Summary{Pages: 2, Links: 25}, summary)

	require.Equal(t, []string{"navigate " + searchURL, "reload", "click next"}, b.Events)
	require.Len(t, pauses, 1)
	require.GreaterOrEqual(t, pauses[0], time.Second)
	require.LessOrEqual(t, pauses[0], 5*time.Second)

	links, err := storage.NewLinkSource(path).ReadLinks()
	require.NoError(t, err)
	require.Len(t, links, 25)
	for i, link := range links {
		require.Equal(t, i+1, link.Row)
	}
	require.Equal(t, href(100), links[0].Href)
	require.Equal(t, href(119), links[19].Href)
	require.Equal(t, href(200), links[20].Href)
	require.Equal(t, href(204), links[24].Href)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(raw), "href\n"))
	require.True(t, strings.HasPrefix(string(raw), ",href\n1,"+href(100)+"\n"))

	var logged []string
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "Harvested profiles") {
			logged = append(logged, entry.Message)
		}
	}
	require.Equal(t, []string{"Harvested profiles 1 to 20", "Harvested profiles 21 to 25"}, logged)
}

func TestPagesSinglePage(t *testing.T) {
	b := listing(profileLinks(1, 3))
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration

	var pages []Page
	for page, err := range NewHarvester(b, testPacer(&pauses), logger, testOptions()).Pages(context.Background()) {
		require.NoError(t, err)
		pages = append(pages, page)
	}
	require.Len(t, pages, 1)
	require.Equal(t, []entities.ProfileLink{
		{Row: 1, Href: href(1)},
		{Row: 2, Href: href(2)},
		{Row: 3, Href: href(3)},
	}, pages[0].Links)
	require.Empty(t, pauses)
}

func TestPagesSkipsEmptyHref(t *testing.T) {
	links := profileLinks(1, 3)
	links[1].Attrs["href"] = ""
	b := listing(links)
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration

	var got []entities.ProfileLink
	for page, err := range NewHarvester(b, testPacer(&pauses), logger, testOptions()).Pages(context.Background()) {
		require.NoError(t, err)
		got = append(got, page.Links...)
	}
	require.Equal(t, []entities.ProfileLink{{Row: 1, Href: href(1)}, {Row: 2, Href: href(3)}}, got)
}

func TestPagesStalled(t *testing.T) {
	sel := DefaultSelectors()
	b := browsertest.New()
	b.AddPage(searchURL, browsertest.NewPage().
		Set(sel.ProfileLink, profileLinks(1, 2)...).
		Set(sel.NextButton, browsertest.Button("next", nil)))
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration

	summary, err := NewHarvester(b, testPacer(&pauses), logger, testOptions()).Harvest(context.Background(), discard{})
	require.ErrorIs(t, err, entities.ErrPaginationStalled)
	require.Equal(t, 1, summary.Pages)
}

func TestPagesEmptyPagesStall(t *testing.T) {
	sel := DefaultSelectors()
	b := browsertest.New()
	b.AddPage(searchURL, browsertest.NewPage().
		Set(sel.NextButton, browsertest.Button("next", nil)))
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration

	summary, err := NewHarvester(b, testPacer(&pauses), logger, testOptions()).Harvest(context.Background(), discard{})
	require.ErrorIs(t, err, entities.ErrPaginationStalled)
	require.Equal(t, Summary{Pages: 1, Links: 0}, summary)
	require.Equal(t, []string{"navigate " + searchURL, "reload", "click next"}, b.Events)
}

func TestPagesMaxPages(t *testing.T) {
	b := listing(profileLinks(1, 2), profileLinks(10, 2), profileLinks(20, 2))
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration
	opts := testOptions()
	opts.MaxPages = 2

	summary, err := NewHarvester(b, testPacer(&pauses), logger, opts).Harvest(context.Background(), discard{})
	require.NoError(t, err)
	require.Equal(t, Summary{Pages: 2, Links: 4}, summary)
}

func TestPagesSearchPageUnavailable(t *testing.T) {
	b := browsertest.New()
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration

	_, err := NewHarvester(b, testPacer(&pauses), logger, testOptions()).Harvest(context.Background(), discard{})
	require.Error(t, err)
}

func TestPagesCancelledBetweenPages(t *testing.T) {
	b := listing(profileLinks(1, 2), profileLinks(10, 2))
	logger, _ := test.NewNullLogger()
	var pauses []time.Duration
	ctx, cancel := context.WithCancel(context.Background())

	var pages int
	var lastErr error
	for _, err := range NewHarvester(b, testPacer(&pauses), logger, testOptions()).Pages(ctx) {
		if err != nil {
			lastErr = err
			break
		}
		pages++
		cancel()
	}
	require.Equal(t, 1, pages)
	require.ErrorIs(t, lastErr, context.Canceled)
}

type discard struct{}

func (discard) WriteLinks([]entities.ProfileLink) error { return nil }
func (discard) Close() error                           { return nil }
