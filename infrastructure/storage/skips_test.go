package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"profile_scraper/domain/entities"
)

func TestSkipLedgerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := NewSkipLedger(dir)

	require.NoError(t, ledger.WriteSkip(entities.SkipRecord{Row: 4, Href: "p?LadyID=4", Reason: entities.SkipRenderTimeout, Detail: "timed out", At: at}))
	require.NoError(t, ledger.WriteSkip(entities.SkipRecord{Row: 9, Href: "p?LadyID=9", Reason: entities.SkipFieldShape, At: at}))
	require.NoError(t, ledger.Close())

	skips, err := ReadSkipLedger(dir)
	require.NoError(t, err)
	require.Len(t, skips, 2)
	require.Equal(t, 4, skips[0].Row)
	require.Equal(t, entities.SkipFieldShape, skips[1].Reason)
	require.True(t, at.Equal(skips[1].At))

	links, err := NewLinkSource(filepath.Join(dir, SkippedLinksFileName)).ReadLinks()
	require.NoError(t, err)
	require.Equal(t, []entities.ProfileLink{{Row: 4, Href: "p?LadyID=4"}, {Row: 9, Href: "p?LadyID=9"}}, links)
}

func TestSkipLedgerUntouchedWithoutSkips(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewSkipLedger(dir).Close())

	_, err := os.Stat(filepath.Join(dir, SkipLedgerFileName))
	require.True(t, os.IsNotExist(err))

	skips, err := ReadSkipLedger(dir)
	require.NoError(t, err)
	require.Empty(t, skips)
}

func TestProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProfilesFileName)
	w := NewProfileFile(path)
	require.NoError(t, w.WriteRecord(entities.ProfileRecord{Row: 2, LadyID: "22", Character: "Calm", Interests: "Art, music", HerTypeOfMan: "Kind"}))
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, ",Lady ID,Character,Interests,Her Type of Man\n2,22,Calm,\"Art, music\",Kind\n", string(raw))
}

func TestBrowserState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	state, err := NewBrowserState(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "browser_state.json"), state.Path())

	data, err := state.Load()
	require.NoError(t, err)
	require.Nil(t, data)

	require.NoError(t, os.WriteFile(state.Path(), []byte(`{"cookies":[]}`), 0600))
	data, err = state.Load()
	require.NoError(t, err)
	require.JSONEq(t, `{"cookies":[]}`, string(data))

	require.NoError(t, state.Clear())
	require.NoError(t, state.Clear())
	data, err = state.Load()
	require.NoError(t, err)
	require.Nil(t, data)
}
