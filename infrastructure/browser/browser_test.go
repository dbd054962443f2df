package browser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"

	"profile_scraper/domain/entities"
)

func TestByFor(t *testing.T) {
	by, err := byFor(entities.CSS(`[class="lady-name"] > [class="b"]`))
	require.NoError(t, err)
	require.Equal(t, selenium.ByCSSSelector, by)

	by, err = byFor(entities.XPath(`//a[text()="Next"]`))
	require.NoError(t, err)
	require.Equal(t, selenium.ByXPATH, by)

	_, err = byFor(entities.Selector{Kind: "id", Value: "x"})
	require.Error(t, err)
}

func TestIsNoSuchElement(t *testing.T) {
	require.True(t, isNoSuchElement(&selenium.Error{Err: "no such element", Message: "Unable to locate element"}))
	require.False(t, isNoSuchElement(&selenium.Error{Err: "stale element reference"}))
	require.True(t, isNoSuchElement(errors.New("no such element: Unable to locate element")))
	require.False(t, isNoSuchElement(errors.New("timeout")))
}

func TestFindChromeDriverConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chromedriver")
	require.NoError(t, os.WriteFile(path, nil, 0755))

	got, err := findChromeDriver(path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	_, err = findChromeDriver(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestFindChromeBinaryConfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chrome")
	require.NoError(t, os.WriteFile(path, nil, 0755))
	require.Equal(t, path, findChromeBinary(path))
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New(Options{Driver: "lynx"}, logrus.New())
	require.ErrorContains(t, err, "lynx")
}

func TestLocateOrder(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second")
	require.NoError(t, os.WriteFile(second, nil, 0755))

	got, err := locate("", []string{filepath.Join(dir, "first"), second}, nil)
	require.NoError(t, err)
	require.Equal(t, second, got)

	_, err = locate("", []string{filepath.Join(dir, "first")}, []string{"definitely-not-a-binary-name"})
	require.ErrorIs(t, err, errNotFound)

	_, err = locate(filepath.Join(dir, "missing"), []string{second}, nil)
	require.ErrorIs(t, err, errNotFound)
}
