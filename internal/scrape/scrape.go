package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"jobscrape/internal/config"
	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/types"
	"jobscrape/internal/scrape/util"
	"jobscrape/internal/secrets"
)

// Sink is a durable destination written once per posting.
type Sink interface {
	Name() string
	Write(ctx context.Context, p domain.JobPosting) error
}

// Dumper stores the HTML of a results page.
type Dumper interface {
	Dump(page int, html string) error
}

type Options struct {
	Config      config.Config
	Credentials secrets.Credentials
	Sinks       []Sink
	Dumper      Dumper
	Logger      *slog.Logger

	// SkipLogin starts at the search page without authenticating.
	SkipLogin bool
}

// Scraper runs one search: login, navigation and the page loop. It owns the
// in-memory posting list for the run.
type Scraper struct {
	page      types.Page
	cfg       config.Config
	creds     secrets.Credentials
	sinks     []Sink
	dumper    Dumper
	log       *slog.Logger
	skipLogin bool

	postings []domain.JobPosting
	seen     map[string]int
}

func New(page types.Page, opts Options) *Scraper {
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}
	return &Scraper{
		page:      page,
		cfg:       opts.Config,
		creds:     opts.Credentials,
		sinks:     opts.Sinks,
		dumper:    opts.Dumper,
		log:       lg,
		skipLogin: opts.SkipLogin,
		seen:      make(map[string]int),
	}
}

// Postings returns the postings saved so far, in extraction order.
func (s *Scraper) Postings() []domain.JobPosting {
	out := make([]domain.JobPosting, len(s.postings))
	copy(out, s.postings)
	return out
}

// Run authenticates, opens the search and walks result pages until a stop
// condition. The returned error is non-nil only for failures that must abort
// the run (login or navigation, sink I/O); the report is filled either way.
func (s *Scraper) Run(ctx context.Context) (Report, error) {
	rep := Report{
		RunID:     uuid.NewString(),
		Keyword:   s.cfg.Search.Keyword,
		Location:  s.cfg.Search.Location,
		StartedAt: time.Now().UTC(),
	}
	s.log = s.log.With("run", rep.RunID)

	if !s.skipLogin {
		if err := s.authenticate(ctx); err != nil {
			rep.FinishedAt = time.Now().UTC()
			return rep, err
		}
	}
	if err := s.navigate(ctx); err != nil {
		rep.FinishedAt = time.Now().UTC()
		return rep, err
	}

	err := s.pageLoop(ctx, &rep)
	rep.FinishedAt = time.Now().UTC()
	return rep, err
}

func (s *Scraper) pageLoop(ctx context.Context, rep *Report) error {
	sel := s.cfg.Selectors
	maxPages := s.cfg.Search.MaxPages

	for n := 1; ; n++ {
		if err := ctx.Err(); err != nil {
			s.stop(rep, StopCanceled, err.Error())
			return nil
		}

		s.log.Info("[page] scraping", "page", n, "max_pages", maxPages)

		if err := s.page.WaitVisible(sel.Card, s.cfg.Browser.CardTimeout()); err != nil {
			s.log.Warn("[page] job cards not found", "page", n, "err", err)
			s.stop(rep, StopCardTimeout, err.Error())
			return nil
		}
		rep.Pages++

		if err := s.scroll(ctx); err != nil {
			if ctx.Err() != nil {
				s.stop(rep, StopCanceled, err.Error())
				return nil
			}
			return err
		}

		if s.dumper != nil {
			if html, err := s.page.Content(); err != nil {
				s.log.Warn("[page] read html failed", "page", n, "err", err)
			} else if err := s.dumper.Dump(n, html); err != nil {
				s.log.Warn("[page] dump html failed", "page", n, "err", err)
			}
		}

		cards, err := s.page.Cards(sel.Card)
		if err != nil {
			return fmt.Errorf("list cards on page %d: %w", n, err)
		}
		s.log.Info("[page] found job cards", "page", n, "cards", len(cards))
		rep.Cards += len(cards)

		for i, card := range cards {
			if err := ctx.Err(); err != nil {
				s.log.Info("[page] canceled between cards", "page", n, "card", i+1)
				s.stop(rep, StopCanceled, err.Error())
				return nil
			}
			res := CardResult{Page: n, Index: i + 1}
			res.Posting, res.Err = extractSafe(card, sel, s.cfg.Search.Keyword, s.cfg.Site.Origin)
			if !res.OK() {
				s.log.Warn("[card] skipping job card", "page", n, "card", res.Index, "err", res.Err)
				rep.skip(res)
				continue
			}
			if err := s.persist(ctx, res, rep); err != nil {
				return err
			}
		}

		if n >= maxPages {
			s.log.Info("[page] reached max pages", "pages", n)
			s.stop(rep, StopMaxPages, "")
			return nil
		}

		if reason, detail := s.nextPage(ctx); reason != "" {
			s.stop(rep, reason, detail)
			return nil
		}
	}
}

// nextPage clicks the next-page control. A non-empty reason ends the loop.
func (s *Scraper) nextPage(ctx context.Context) (StopReason, string) {
	next := s.cfg.Selectors.NextPage

	visible, err := s.page.Visible(next)
	if err != nil {
		s.log.Warn("[page] pagination stopped", "err", err)
		return StopPaginationError, err.Error()
	}
	if !visible {
		s.log.Info("[page] no more next pages")
		return StopNoNextPage, ""
	}

	// results re-render in place, so wait for the first card to change
	var changed func() bool
	if before := s.firstCardKey(); before != "" {
		changed = func() bool {
			k := s.firstCardKey()
			return k != "" && k != before
		}
	}

	s.log.Info("[page] clicking next page")
	if err := s.page.Click(next); err != nil {
		s.log.Warn("[page] pagination stopped", "err", err)
		return StopPaginationError, err.Error()
	}
	if err := s.settle(ctx, "next page", changed); err != nil {
		return StopCanceled, err.Error()
	}
	return "", ""
}

// scroll performs the configured number of wheel steps, one per scroll
// delay, to trigger lazy loading. It does not check for new content.
func (s *Scraper) scroll(ctx context.Context) error {
	times := s.cfg.Search.ScrollTimes
	if times <= 0 {
		return nil
	}
	s.log.Info("[page] scrolling to load more job listings", "steps", times)

	pacer := util.NewPacer(s.cfg.Browser.ScrollDelay())
	step := float64(s.cfg.Browser.ScrollStepPx)
	for i := 0; i < times; i++ {
		if err := pacer.Wait(ctx); err != nil {
			return err
		}
		if err := s.page.Wheel(0, step); err != nil {
			return fmt.Errorf("scroll: %w", err)
		}
	}
	// let the last step load like the others
	return pacer.Wait(ctx)
}

// settle waits for the page to react to an action. It always sleeps one
// poll interval, then polls changed (when non-nil) and Ready with backoff
// until both hold or the settle timeout passes. Reaching the timeout is not
// an error.
func (s *Scraper) settle(ctx context.Context, after string, changed func() bool) error {
	opts := util.DefaultPoll
	opts.Timeout = s.cfg.Browser.SettleTimeout()
	opts.Delay = opts.Initial

	ok, err := util.Poll(ctx, opts, func() (bool, error) {
		if changed != nil && !changed() {
			return false, nil
		}
		ready, err := s.page.Ready()
		if err != nil {
			// navigation in flight; try again
			s.log.Debug("[settle] ready check failed", "after", after, "err", err)
			return false, nil
		}
		return ready, nil
	})
	if err != nil {
		return err
	}
	if !ok {
		if changed != nil {
			s.log.Warn("[settle] page did not change, continuing", "after", after, "timeout", opts.Timeout)
		} else {
			s.log.Debug("[settle] page not ready, continuing", "after", after, "timeout", opts.Timeout)
		}
	}
	return nil
}

// firstCardKey identifies the first result card by its link, or its title
// when it has none. Empty when no card is present.
func (s *Scraper) firstCardKey() string {
	sel := s.cfg.Selectors
	cards, err := s.page.Cards(sel.Card)
	if err != nil || len(cards) == 0 {
		return ""
	}
	if href, ok, err := cards[0].Attr(sel.Link, "href"); err == nil && ok {
		return href
	}
	texts, err := cards[0].Texts(sel.Title)
	if err != nil {
		return ""
	}
	return util.JoinFragments(texts)
}

func (s *Scraper) stop(rep *Report, reason StopReason, detail string) {
	rep.Stop = reason
	rep.StopDetail = detail
}
