package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"jobscrape/internal/browser"
	"jobscrape/internal/config"
	"jobscrape/internal/export"
	"jobscrape/internal/logging"
	"jobscrape/internal/notify"
	"jobscrape/internal/scrape"
	"jobscrape/internal/scrape/types"
	"jobscrape/internal/secrets"
	"jobscrape/internal/snapshot"
	"jobscrape/internal/store"
)

func runLive(ctx context.Context, cfg config.Config, warns []string) error {
	creds, err := secrets.Load(cfg.Credentials.Username)
	if err != nil {
		return err
	}

	pm, err := browser.NewPlaywright(browser.Options{
		Headless:     cfg.Browser.Headless,
		SlowMo:       ms(cfg.Browser.SlowMoMs),
		QueryTimeout: cfg.Browser.QueryTimeout(),
		NavTimeout:   cfg.Browser.CardTimeout(),
	})
	if err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer pm.Close()

	page, err := pm.NewPage()
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	return execute(ctx, cfg, warns, page, scrape.Options{Credentials: creds})
}

func runReplay(ctx context.Context, cfg config.Config, warns []string, dir string) error {
	page, err := snapshot.Open(dir)
	if err != nil {
		return err
	}
	// replaying snapshots into the same dir would overwrite them
	cfg.Output.DumpHTML = false
	return execute(ctx, cfg, warns, page, scrape.Options{SkipLogin: true})
}

// execute owns everything around the page loop: logger, output lock, sinks,
// final export and the summary.
func execute(ctx context.Context, cfg config.Config, warns []string, page types.Page, opts scrape.Options) error {
	log, logFile, err := logging.New(cfg.Log.File, cfg.Log.Level, os.Stderr)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, w := range warns {
		log.Warn("[config] " + w)
	}

	lock, err := export.LockDir(cfg.Output.Dir)
	if err != nil {
		log.Error("[export] output dir busy", "dir", cfg.Output.Dir, "err", err)
		return err
	}
	defer lock.Unlock()

	db, err := store.Open(ctx, outPath(cfg, cfg.Output.DBFile))
	if err != nil {
		log.Error("[store] open failed", "err", err)
		return err
	}
	defer db.Close()

	wb, err := export.NewWorkbook(outPath(cfg, cfg.Output.XLSXFile), cfg.Output.SheetName)
	if err != nil {
		log.Error("[export] workbook create failed", "err", err)
		return err
	}
	defer wb.Close()

	if cfg.Output.DumpHTML {
		d, err := snapshot.NewDumper(filepath.Join(cfg.Output.Dir, "snapshots"))
		if err != nil {
			return err
		}
		opts.Dumper = d
	}

	opts.Config = cfg
	opts.Logger = log
	opts.Sinks = []scrape.Sink{db, wb}

	s := scrape.New(page, opts)
	rep, runErr := s.Run(ctx)
	if runErr != nil {
		log.Error("[run] aborted", "err", runErr)
		return runErr
	}

	exportErr := scrape.Export(wb, outPath(cfg, cfg.Output.CSVFile), s.Postings(), log.With("run", rep.RunID))
	log.Info("[run] done", "run", rep.RunID, "summary", rep.Summary())

	sendSummary(cfg, rep, log)
	return exportErr
}

func sendSummary(cfg config.Config, rep scrape.Report, log *slog.Logger) {
	tg, err := notify.NewTelegram(os.Getenv(notify.EnvBotToken), cfg.Notify.TelegramChatID)
	if errors.Is(err, notify.ErrDisabled) {
		return
	}
	if err == nil {
		err = tg.SendReport(rep)
	}
	if err != nil {
		log.Warn("[notify] telegram summary failed", "err", err)
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
