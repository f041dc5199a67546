package scrape

import (
	"context"
	"errors"
	"sync"
	"time"

	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/types"
)

// fakeCard answers Texts/Attr from maps keyed by selector.
type fakeCard struct {
	texts   map[string][]string
	attrs   map[string]string
	err     error
	panic   bool
	onTexts func()
}

func (c fakeCard) Texts(sel string) ([]string, error) {
	if c.panic {
		panic("detached node")
	}
	if c.onTexts != nil {
		c.onTexts()
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.texts[sel], nil
}

func (c fakeCard) Attr(sel, _ string) (string, bool, error) {
	v, ok := c.attrs[sel]
	return v, ok, nil
}

// fakePage serves one card list per result page and records every call.
type fakePage struct {
	mu sync.Mutex

	pages   [][]types.Card
	idx     int
	nextErr error
	// hideNextOn hides the next control on that (1-based) page.
	hideNextOn int
	clickErr   error
	cardsErr   error
	gotoErr    error
	onWheel    func()

	// renderLag delays the next page by that many Cards calls after the
	// click, like results re-rendering in place.
	renderLag int
	pending   int
	// notReady is how many Ready calls report false before true.
	notReady   int
	readyCalls int
	// loginLag is how many URL calls still show the login page after submit.
	loginLag  int
	submitted bool
	url       string
	urlCalls  int

	calls  []string
	gotos  []string
	fills  map[string]string
	wheels int
}

var _ types.Page = (*fakePage)(nil)

func (p *fakePage) record(c string) {
	p.mu.Lock()
	p.calls = append(p.calls, c)
	p.mu.Unlock()
}

func (p *fakePage) Goto(ctx context.Context, url string) error {
	p.record("goto")
	p.gotos = append(p.gotos, url)
	p.url = url
	if p.gotoErr != nil {
		return p.gotoErr
	}
	return ctx.Err()
}

func (p *fakePage) Fill(sel, val string) error {
	p.record("fill")
	if p.fills == nil {
		p.fills = map[string]string{}
	}
	p.fills[sel] = val
	return nil
}

func (p *fakePage) Click(sel string) error {
	p.record("click:" + sel)
	switch sel {
	case next:
		if p.clickErr != nil {
			return p.clickErr
		}
		if p.renderLag > 0 {
			p.pending = p.renderLag
			return nil
		}
		p.idx++
	case testSel.LoginSubmit:
		p.submitted = true
	}
	return nil
}

func (p *fakePage) WaitVisible(string, time.Duration) error {
	p.record("wait")
	if p.idx >= len(p.pages) || len(p.pages[p.idx]) == 0 {
		return types.ErrTimeout
	}
	return nil
}

func (p *fakePage) Visible(string) (bool, error) {
	p.record("visible")
	if p.nextErr != nil {
		return false, p.nextErr
	}
	if p.hideNextOn == p.idx+1 {
		return false, nil
	}
	return true, nil
}

func (p *fakePage) Ready() (bool, error) {
	p.readyCalls++
	if p.notReady > 0 {
		p.notReady--
		return false, nil
	}
	return true, nil
}

func (p *fakePage) URL() string {
	p.urlCalls++
	if p.submitted {
		if p.loginLag > 0 {
			p.loginLag--
		} else {
			p.url = "https://www.linkedin.com/feed/"
			p.submitted = false
		}
	}
	return p.url
}

func (p *fakePage) Wheel(_, _ float64) error {
	p.wheels++
	if p.onWheel != nil {
		p.onWheel()
	}
	return nil
}

func (p *fakePage) Cards(string) ([]types.Card, error) {
	p.record("cards")
	if p.cardsErr != nil {
		return nil, p.cardsErr
	}
	if p.pending > 0 {
		p.pending--
		if p.pending == 0 {
			p.idx++
		}
	}
	if p.idx >= len(p.pages) {
		return nil, nil
	}
	return p.pages[p.idx], nil
}

func (p *fakePage) Content() (string, error) { return "<html></html>", nil }

// memSink records writes and can fail on the n-th call.
type memSink struct {
	name   string
	rows   []domain.JobPosting
	failAt int
}

func (m *memSink) Name() string { return m.name }

func (m *memSink) Write(_ context.Context, p domain.JobPosting) error {
	if m.failAt > 0 && len(m.rows)+1 == m.failAt {
		return errors.New("disk full")
	}
	m.rows = append(m.rows, p)
	return nil
}

type memDumper struct{ pages []int }

func (d *memDumper) Dump(page int, _ string) error {
	d.pages = append(d.pages, page)
	return nil
}
