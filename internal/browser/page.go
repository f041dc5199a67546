package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"jobscrape/internal/scrape/types"
)

// Page adapts a Playwright page to types.Page.
type Page struct {
	p            playwright.Page
	navTimeout   time.Duration
	queryTimeout time.Duration
}

var _ types.Page = (*Page)(nil)

func (pg *Page) Goto(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := pg.p.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   millis(pg.navTimeout),
	})
	return err
}

func (pg *Page) Fill(selector, value string) error {
	return pg.p.Locator(selector).First().Fill(value)
}

func (pg *Page) Click(selector string) error {
	return pg.p.Locator(selector).First().Click()
}

func (pg *Page) WaitVisible(selector string, timeout time.Duration) error {
	err := pg.p.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: millis(timeout),
	})
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %s after %s", types.ErrTimeout, selector, timeout)
	}
	return err
}

func (pg *Page) Visible(selector string) (bool, error) {
	return pg.p.Locator(selector).First().IsVisible()
}

func (pg *Page) Ready() (bool, error) {
	v, err := pg.p.Evaluate(`() => document.readyState`)
	if err != nil {
		return false, err
	}
	state, _ := v.(string)
	return state == "complete", nil
}

func (pg *Page) URL() string { return pg.p.URL() }

func (pg *Page) Wheel(dx, dy float64) error {
	return pg.p.Mouse().Wheel(dx, dy)
}

func (pg *Page) Cards(selector string) ([]types.Card, error) {
	locs, err := pg.p.Locator(selector).All()
	if err != nil {
		return nil, err
	}
	cards := make([]types.Card, len(locs))
	for i, l := range locs {
		cards[i] = card{loc: l, timeout: pg.queryTimeout}
	}
	return cards, nil
}

func (pg *Page) Content() (string, error) {
	return pg.p.Content()
}

type card struct {
	loc     playwright.Locator
	timeout time.Duration
}

func (c card) Texts(selector string) ([]string, error) {
	return c.loc.Locator(selector).AllInnerTexts()
}

func (c card) Attr(selector, name string) (string, bool, error) {
	l := c.loc.Locator(selector).First()
	n, err := l.Count()
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}
	v, err := l.GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: millis(c.timeout)})
	if err != nil {
		return "", false, err
	}
	return v, v != "", nil
}
