package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesFileAndConsole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "scraper.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("earlier run\n"), 0o644))

	var console bytes.Buffer
	log, c, err := New(path, "info", &console)
	require.NoError(t, err)

	log.Debug("[page] hidden")
	log.Info("[page] scraping", "page", 1)
	require.NoError(t, c.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "earlier run")
	assert.Contains(t, s, "level=INFO")
	assert.Contains(t, s, `msg="[page] scraping" page=1`)
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, console.String(), "[page] scraping")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
