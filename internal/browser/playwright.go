package browser

import (
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

type Options struct {
	Headless bool
	SlowMo   time.Duration
	// QueryTimeout bounds attribute reads inside a card.
	QueryTimeout time.Duration
	// NavTimeout bounds Goto.
	NavTimeout time.Duration
}

// PlaywrightManager owns the driver, one Chromium instance and one browser
// context.
type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	bctx    playwright.BrowserContext
	opts    Options
}

func NewPlaywright(opts Options) (*PlaywrightManager, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 2 * time.Second
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(float64(opts.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	bctx, err := b.NewContext()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	return &PlaywrightManager{pw: pw, browser: b, bctx: bctx, opts: opts}, nil
}

func (pm *PlaywrightManager) NewPage() (*Page, error) {
	p, err := pm.bctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create page: %w", err)
	}
	return &Page{p: p, navTimeout: pm.opts.NavTimeout, queryTimeout: pm.opts.QueryTimeout}, nil
}

// Close releases the context, the browser and the driver, in that order.
func (pm *PlaywrightManager) Close() error {
	if pm == nil {
		return nil
	}
	var errs []error
	if pm.bctx != nil {
		errs = append(errs, pm.bctx.Close())
	}
	if pm.browser != nil {
		errs = append(errs, pm.browser.Close())
	}
	if pm.pw != nil {
		errs = append(errs, pm.pw.Stop())
	}
	return errors.Join(errs...)
}

func millis(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}
