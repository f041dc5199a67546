// config/overlay.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env files into the process environment. Missing files
// are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// OverlayEnv applies JOBSCRAPE_* and LINKEDIN_USERNAME over cfg.
func OverlayEnv(cfg *Config, getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("JOBSCRAPE_KEYWORD")); v != "" {
		cfg.Search.Keyword = v
	}
	if v := strings.TrimSpace(getenv("JOBSCRAPE_LOCATION")); v != "" {
		cfg.Search.Location = v
	}
	if v := strings.TrimSpace(getenv("JOBSCRAPE_MAX_PAGES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JOBSCRAPE_MAX_PAGES %q: %w", v, err)
		}
		cfg.Search.MaxPages = n
	}
	if v := strings.TrimSpace(getenv("JOBSCRAPE_HEADLESS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid JOBSCRAPE_HEADLESS %q: %w", v, err)
		}
		cfg.Browser.Headless = b
	}
	if v := strings.TrimSpace(getenv("LINKEDIN_USERNAME")); v != "" {
		cfg.Credentials.Username = v
	}
	return nil
}
