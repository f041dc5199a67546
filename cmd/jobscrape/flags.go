package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"jobscrape/internal/config"
)

// cliFlags are the overrides shared by run and replay. Only flags the user
// actually passed are applied over the loaded config.
type cliFlags struct {
	configPath  string
	keyword     string
	location    string
	maxPages    int
	scrollTimes int
	headless    bool
	outDir      string
	dumpHTML    bool
	logFile     string
}

func (f *cliFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path to config.yml (default: <data dir>/config.yml)")
	fs.StringVar(&f.keyword, "keyword", "", "search keyword")
	fs.StringVar(&f.location, "location", "", "search location")
	fs.IntVar(&f.maxPages, "max-pages", 0, "maximum result pages to scrape")
	fs.IntVar(&f.scrollTimes, "scroll-times", 0, "wheel steps per page")
	fs.BoolVar(&f.headless, "headless", false, "run the browser without a window")
	fs.StringVar(&f.outDir, "out-dir", "", "directory for the db, xlsx and csv files")
	fs.BoolVar(&f.dumpHTML, "dump-html", false, "save each results page under <out-dir>/snapshots")
	fs.StringVar(&f.logFile, "log-file", "", "log file path")
}

func (f *cliFlags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "keyword":
			cfg.Search.Keyword = f.keyword
		case "location":
			cfg.Search.Location = f.location
		case "max-pages":
			cfg.Search.MaxPages = f.maxPages
		case "scroll-times":
			cfg.Search.ScrollTimes = f.scrollTimes
		case "headless":
			cfg.Browser.Headless = f.headless
		case "out-dir":
			cfg.Output.Dir = f.outDir
		case "dump-html":
			cfg.Output.DumpHTML = f.dumpHTML
		case "log-file":
			cfg.Log.File = f.logFile
		}
	})
}

// loadConfig resolves the config file, then layers .env, environment and
// flags over it and validates the result.
// Validation warnings are returned for logging once the logger exists.
func (f *cliFlags) loadConfig(fs *flag.FlagSet) (config.Config, []string, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, nil, err
	}

	path := f.configPath
	if path == "" {
		dataDir := os.Getenv("JOBSCRAPE_DATA_DIR")
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return config.Config{}, nil, err
		}
		p, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			return config.Config{}, nil, fmt.Errorf("config bootstrap failed: %w", err)
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := config.OverlayEnv(&cfg, os.Getenv); err != nil {
		return cfg, nil, err
	}
	f.apply(fs, &cfg)

	if err := config.Validate(cfg); err != nil {
		return cfg, nil, err
	}
	norm, v := config.NormalizeAndValidate(cfg)
	return norm, v.Warnings, nil
}

func outPath(cfg config.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.Output.Dir, name)
}
