package main

import (
	"context"
	"encoding/csv"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"jobscrape/internal/config"
	"jobscrape/internal/export"
	"jobscrape/internal/scrape"
	"jobscrape/internal/secrets"
	"jobscrape/internal/snapshot"
	"jobscrape/internal/store"
)

func TestFlags_OnlyVisitedOverride(t *testing.T) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	var f cliFlags
	f.register(fs)
	require.NoError(t, fs.Parse([]string{"-keyword", "Data Engineer", "-max-pages", "3", "-headless"}))

	cfg := config.Default()
	cfg.Search.Location = "Berlin"
	f.apply(fs, &cfg)

	assert.Equal(t, "Data Engineer", cfg.Search.Keyword)
	assert.Equal(t, 3, cfg.Search.MaxPages)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "Berlin", cfg.Search.Location)
	assert.Equal(t, 10, cfg.Search.ScrollTimes)
}

func TestOutPath(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Dir = "out"
	assert.Equal(t, filepath.Join("out", "jobs.db"), outPath(cfg, "jobs.db"))

	abs := filepath.Join(t.TempDir(), "jobs.db")
	assert.Equal(t, abs, outPath(cfg, abs))
}

func TestPassword_SetAndDelete(t *testing.T) {
	keyring.MockInit()

	require.NoError(t, cmdPassword([]string{"set", "-user", "me@example.com"}, strings.NewReader("hunter2\n")))
	pw, err := keyring.Get(secrets.KeyringService, "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)

	require.NoError(t, cmdPassword([]string{"delete", "-user", "me@example.com"}, nil))
	_, err = keyring.Get(secrets.KeyringService, "me@example.com")
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	assert.Error(t, cmdPassword([]string{"rotate", "-user", "me@example.com"}, nil))
	assert.Error(t, cmdPassword(nil, nil))
}

const replayPage1 = `<html><body>
<div class="job-card-container--clickable">
  <a class="job-card-container__link" href="/jobs/view/1/"><span aria-hidden="true"><strong>Product Manager</strong></span></a>
  <div class="artdeco-entity-lockup__subtitle"><span>Acme</span></div>
  <div class="artdeco-entity-lockup__caption"><ul><li><span>Pune, India</span></li></ul></div>
</div>
<div class="job-card-container--clickable"><span>promoted</span></div>
<button aria-label="View next page">Next</button>
</body></html>`

const replayPage2 = `<html><body>
<div class="job-card-container--clickable">
  <a class="job-card-container__link" href="/jobs/view/2/?trk=x"><span aria-hidden="true"><strong>Group PM</strong></span></a>
  <div class="artdeco-entity-lockup__subtitle"><span>Globex</span></div>
</div>
</body></html>`

func replayConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Dir = dir
	cfg.Log.File = filepath.Join(dir, "scraper.log")
	cfg.Search.ScrollTimes = 0
	cfg.Browser.SettleTimeoutMs = 50
	return cfg
}

func TestExecute_ReplayWritesAllSinks(t *testing.T) {
	cfg := replayConfig(t)
	page, err := snapshot.FromHTML(replayPage1, replayPage2)
	require.NoError(t, err)

	require.NoError(t, execute(context.Background(), cfg, []string{"location is empty"}, page, scrape.Options{SkipLogin: true}))

	db, err := store.Open(context.Background(), outPath(cfg, cfg.Output.DBFile))
	require.NoError(t, err)
	defer db.Close()
	got, err := store.ListPostings(context.Background(), db.Pool)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://www.linkedin.com/jobs/view/2/?trk=x", got[1].URL)

	rows, err := export.ReadRows(outPath(cfg, cfg.Output.XLSXFile), cfg.Output.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	f, err := os.Open(outPath(cfg, cfg.Output.CSVFile))
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Keyword", "Title", "Company", "Location", "URL", "Connection"}, recs[0])
	assert.Equal(t, []string{"Product Manager", "Product Manager", "Acme", "Pune, India", "https://www.linkedin.com/jobs/view/1/", "N/A"}, recs[1])

	logText, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(logText), "location is empty")
	assert.Contains(t, string(logText), "skipping job card")
}

func TestExecute_NoCardsSkipsCSV(t *testing.T) {
	cfg := replayConfig(t)
	cfg.Browser.CardTimeoutMs = 10
	page, err := snapshot.FromHTML("<html><body>checkpoint</body></html>")
	require.NoError(t, err)

	require.NoError(t, execute(context.Background(), cfg, nil, page, scrape.Options{SkipLogin: true}))

	assert.NoFileExists(t, outPath(cfg, cfg.Output.CSVFile))
	rows, err := export.ReadRows(outPath(cfg, cfg.Output.XLSXFile), cfg.Output.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestExecute_LockedOutputDir(t *testing.T) {
	cfg := replayConfig(t)
	lock, err := export.LockDir(cfg.Output.Dir)
	require.NoError(t, err)
	defer lock.Unlock()

	page, err := snapshot.FromHTML(replayPage1)
	require.NoError(t, err)
	err = execute(context.Background(), cfg, nil, page, scrape.Options{SkipLogin: true})
	assert.ErrorIs(t, err, export.ErrLocked)
}
