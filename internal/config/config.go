// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Search struct {
	Keyword     string `yaml:"keyword"`
	Location    string `yaml:"location"`
	MaxPages    int    `yaml:"max_pages"`
	ScrollTimes int    `yaml:"scroll_times"`
}

type Site struct {
	Origin     string `yaml:"origin"`
	LoginPath  string `yaml:"login_path"`
	SearchPath string `yaml:"search_path"`
}

// Browser holds timings in milliseconds, the same unit Playwright takes.
type Browser struct {
	Headless        bool `yaml:"headless"`
	SlowMoMs        int  `yaml:"slow_mo_ms"`
	CardTimeoutMs   int  `yaml:"card_timeout_ms"`
	SettleTimeoutMs int  `yaml:"settle_timeout_ms"`
	ScrollDelayMs   int  `yaml:"scroll_delay_ms"`
	ScrollStepPx    int  `yaml:"scroll_step_px"`
	QueryTimeoutMs  int  `yaml:"query_timeout_ms"`
}

func (b Browser) CardTimeout() time.Duration   { return ms(b.CardTimeoutMs) }
func (b Browser) SettleTimeout() time.Duration { return ms(b.SettleTimeoutMs) }
func (b Browser) ScrollDelay() time.Duration   { return ms(b.ScrollDelayMs) }
func (b Browser) QueryTimeout() time.Duration  { return ms(b.QueryTimeoutMs) }

type Selectors struct {
	LoginUsername string `yaml:"login_username"`
	LoginPassword string `yaml:"login_password"`
	LoginSubmit   string `yaml:"login_submit"`
	Card          string `yaml:"card"`
	Title         string `yaml:"title"`
	Company       string `yaml:"company"`
	Location      string `yaml:"location"`
	Link          string `yaml:"link"`
	NextPage      string `yaml:"next_page"`
}

type Output struct {
	Dir       string `yaml:"dir"`
	DBFile    string `yaml:"db_file"`
	XLSXFile  string `yaml:"xlsx_file"`
	CSVFile   string `yaml:"csv_file"`
	SheetName string `yaml:"sheet_name"`
	DumpHTML  bool   `yaml:"dump_html"`
}

type Config struct {
	Search    Search    `yaml:"search"`
	Site      Site      `yaml:"site"`
	Browser   Browser   `yaml:"browser"`
	Selectors Selectors `yaml:"selectors"`
	Output    Output    `yaml:"output"`

	Log struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"log"`

	// Only the username lives here; the password comes from env or keychain.
	Credentials struct {
		Username string `yaml:"username"`
	} `yaml:"credentials"`

	Notify struct {
		TelegramChatID int64 `yaml:"telegram_chat_id"`
	} `yaml:"notify"`
}

// Default returns the configuration used when a key is absent from config.yml.
func Default() Config {
	var cfg Config
	cfg.Search = Search{
		Keyword:     "Product Manager",
		Location:    "India",
		MaxPages:    10,
		ScrollTimes: 10,
	}
	cfg.Site = Site{
		Origin:     "https://www.linkedin.com",
		LoginPath:  "/login",
		SearchPath: "/jobs/search/",
	}
	cfg.Browser = Browser{
		Headless:        false,
		SlowMoMs:        200,
		CardTimeoutMs:   30000,
		SettleTimeoutMs: 5000,
		ScrollDelayMs:   2000,
		ScrollStepPx:    1000,
		QueryTimeoutMs:  2000,
	}
	cfg.Selectors = Selectors{
		LoginUsername: `input[name="session_key"]`,
		LoginPassword: `input[name="session_password"]`,
		LoginSubmit:   `button[type="submit"]`,
		Card:          ".job-card-container--clickable",
		Title:         `a.job-card-container__link > span[aria-hidden="true"] strong`,
		Company:       "div.artdeco-entity-lockup__subtitle span",
		Location:      "div.artdeco-entity-lockup__caption li span",
		Link:          "a.job-card-container__link",
		NextPage:      `button[aria-label="View next page"]`,
	}
	cfg.Output = Output{
		Dir:       ".",
		DBFile:    "linkedin_jobs.db",
		XLSXFile:  "linkedin_jobs.xlsx",
		CSVFile:   "linkedin_jobs.csv",
		SheetName: "LinkedIn Jobs",
	}
	cfg.Log.File = "linkedin_scraper.log"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads path over Default, so keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
