package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobscrape/internal/scrape/types"
)

// Page replays saved result pages. Clicking the next-page control advances
// to the following snapshot; there is no network and nothing to wait for.
type Page struct {
	pages []string
	idx   int
	doc   *goquery.Document
}

var _ types.Page = (*Page)(nil)

func (p *Page) load(i int) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.pages[i]))
	if err != nil {
		return fmt.Errorf("parse snapshot %d: %w", i+1, err)
	}
	p.idx = i
	p.doc = doc
	return nil
}

// Index is the zero-based snapshot being shown.
func (p *Page) Index() int { return p.idx }

func (p *Page) Goto(ctx context.Context, _ string) error { return ctx.Err() }

func (p *Page) Fill(selector, _ string) error {
	if p.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("no element matches %q", selector)
	}
	return nil
}

func (p *Page) Click(selector string) error {
	if p.doc.Find(selector).Length() == 0 {
		return fmt.Errorf("no element matches %q", selector)
	}
	if p.idx+1 >= len(p.pages) {
		return nil
	}
	return p.load(p.idx + 1)
}

func (p *Page) WaitVisible(selector string, timeout time.Duration) error {
	if p.doc.Find(selector).Length() > 0 {
		return nil
	}
	return fmt.Errorf("%w: %s after %s", types.ErrTimeout, selector, timeout)
}

// Visible is true only while another snapshot remains to click through to.
func (p *Page) Visible(selector string) (bool, error) {
	return p.doc.Find(selector).Length() > 0 && p.idx+1 < len(p.pages), nil
}

func (p *Page) Ready() (bool, error)     { return true, nil }
func (p *Page) URL() string              { return "" }
func (p *Page) Wheel(_, _ float64) error { return nil }
func (p *Page) Content() (string, error) { return p.pages[p.idx], nil }

func (p *Page) Cards(selector string) ([]types.Card, error) {
	var cards []types.Card
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		cards = append(cards, card{s: s})
	})
	return cards, nil
}

type card struct {
	s *goquery.Selection
}

// Texts returns the raw text of each match. Whitespace is normalised by
// the extractor, the same as for live pages.
func (c card) Texts(selector string) ([]string, error) {
	out := []string{}
	c.s.Find(selector).Each(func(_ int, e *goquery.Selection) {
		out = append(out, e.Text())
	})
	return out, nil
}

func (c card) Attr(selector, name string) (string, bool, error) {
	e := c.s.Find(selector).First()
	if e.Length() == 0 {
		return "", false, nil
	}
	v, ok := e.Attr(name)
	return v, ok, nil
}
