package config

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a trimmed copy of cfg together with the
// problems found in it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Search.Keyword = strings.TrimSpace(out.Search.Keyword)
	out.Search.Location = strings.TrimSpace(out.Search.Location)
	out.Site.Origin = strings.TrimRight(strings.TrimSpace(out.Site.Origin), "/")
	out.Credentials.Username = strings.TrimSpace(out.Credentials.Username)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))

	// search
	if out.Search.Keyword == "" {
		res.addErr("search.keyword is required")
	}
	if out.Search.Location == "" {
		res.addWarn("search.location is empty; the site will pick a default region.")
	}
	if out.Search.MaxPages <= 0 {
		res.addErr("search.max_pages must be > 0")
	}
	if out.Search.ScrollTimes < 0 {
		res.addErr("search.scroll_times must be >= 0")
	}

	// site
	if u, err := url.Parse(out.Site.Origin); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("site.origin must be an absolute URL, got %q", out.Site.Origin)
	}
	if !strings.HasPrefix(out.Site.LoginPath, "/") {
		res.addErr("site.login_path must start with /")
	}
	if !strings.HasPrefix(out.Site.SearchPath, "/") {
		res.addErr("site.search_path must start with /")
	}

	// browser timings
	if out.Browser.CardTimeoutMs <= 0 {
		res.addErr("browser.card_timeout_ms must be > 0")
	}
	if out.Browser.SettleTimeoutMs < 0 {
		res.addErr("browser.settle_timeout_ms must be >= 0")
	}
	if out.Browser.ScrollDelayMs < 0 {
		res.addErr("browser.scroll_delay_ms must be >= 0")
	}
	if out.Browser.QueryTimeoutMs <= 0 {
		res.addErr("browser.query_timeout_ms must be > 0")
	}
	if out.Browser.ScrollStepPx == 0 && out.Search.ScrollTimes > 0 {
		res.addWarn("browser.scroll_step_px is 0; scrolling will not load more cards.")
	}

	// selectors
	sel := map[string]string{
		"selectors.login_username": out.Selectors.LoginUsername,
		"selectors.login_password": out.Selectors.LoginPassword,
		"selectors.login_submit":   out.Selectors.LoginSubmit,
		"selectors.card":           out.Selectors.Card,
		"selectors.title":          out.Selectors.Title,
		"selectors.company":        out.Selectors.Company,
		"selectors.location":       out.Selectors.Location,
		"selectors.link":           out.Selectors.Link,
		"selectors.next_page":      out.Selectors.NextPage,
	}
	for _, k := range []string{
		"selectors.login_username", "selectors.login_password", "selectors.login_submit",
		"selectors.card", "selectors.title", "selectors.company",
		"selectors.location", "selectors.link", "selectors.next_page",
	} {
		if strings.TrimSpace(sel[k]) == "" {
			res.addErr("%s is required", k)
		}
	}

	// output
	if strings.TrimSpace(out.Output.DBFile) == "" {
		res.addErr("output.db_file is required")
	}
	if strings.TrimSpace(out.Output.XLSXFile) == "" {
		res.addErr("output.xlsx_file is required")
	}
	if strings.TrimSpace(out.Output.CSVFile) == "" {
		res.addErr("output.csv_file is required")
	}
	if n := utf8.RuneCountInString(out.Output.SheetName); n == 0 || n > 31 {
		res.addErr("output.sheet_name must be 1..31 characters")
	}

	switch out.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		res.addErr("log.level must be one of debug|info|warn|error, got %q", out.Log.Level)
	}

	if out.Credentials.Username == "" {
		res.addWarn("credentials.username is empty; set LINKEDIN_USERNAME.")
	}

	return out, res
}
