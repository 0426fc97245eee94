package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeLang(t *testing.T, dir, lang, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, lang+".json"), []byte(content), 0o644))
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	writeLang(t, dir, "en", `{
		"START": "Hello! How can I help?",
		"BUTTON_WRITE_REPORT": "Write a report",
		"REPORT_HEADER_TEMPLATE": "Report #%d (%s):\n%s"
	}`)
	writeLang(t, dir, "ru", `{
		"START": "Привет! Чем могу помочь?",
		"BUTTON_WRITE_REPORT": "Написать жалобу"
	}`)

	c, err := Load(dir, "en", zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestGet(t *testing.T) {
	c := loadTestCatalog(t)

	require.Equal(t, "Hello! How can I help?", c.Get("en", "START"))
	require.Equal(t, "Привет! Чем могу помочь?", c.Get("ru", "START"))
}

func TestGet_FallsBackToDefaultLanguage(t *testing.T) {
	c := loadTestCatalog(t)

	// key missing in ru
	require.Equal(t, "Report #%d (%s):\n%s", c.Get("ru", "REPORT_HEADER_TEMPLATE"))
	// unknown language
	require.Equal(t, "Hello! How can I help?", c.Get("de", "START"))
}

func TestGet_UnknownKeyReturnsKey(t *testing.T) {
	c := loadTestCatalog(t)
	require.Equal(t, "NO_SUCH_KEY", c.Get("en", "NO_SUCH_KEY"))
}

func TestFormat(t *testing.T) {
	c := loadTestCatalog(t)

	got := c.Format("en", "REPORT_HEADER_TEMPLATE", int64(7), "Other", "no masks")
	require.Equal(t, "Report #7 (Other):\nno masks", got)

	// no args leaves verbs untouched
	require.Equal(t, "Hello! How can I help?", c.Format("en", "START"))
}

func TestKeyFor(t *testing.T) {
	c := loadTestCatalog(t)

	key, ok := c.KeyFor("Write a report")
	require.True(t, ok)
	require.Equal(t, "BUTTON_WRITE_REPORT", key)

	key, ok = c.KeyFor("Написать жалобу")
	require.True(t, ok)
	require.Equal(t, "BUTTON_WRITE_REPORT", key)

	_, ok = c.KeyFor("free form text")
	require.False(t, ok)
}

func TestLoad_MissingDefaultLanguage(t *testing.T) {
	dir := t.TempDir()
	writeLang(t, dir, "ru", `{"START": "Привет"}`)

	_, err := Load(dir, "en", zerolog.Nop())
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	writeLang(t, dir, "en", `{"START": `)

	_, err := Load(dir, "en", zerolog.Nop())
	require.Error(t, err)
}
