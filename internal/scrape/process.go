package scrape

import (
	"context"
	"fmt"

	"jobscrape/internal/scrape/util"
)

// persist writes an extracted posting through every sink, then appends it
// to the in-memory list. Sinks are written in order and each write is
// durable on return, so a posting in memory always has its rows. Writes
// ignore cancellation of ctx so a started posting is never half-written.
func (s *Scraper) persist(ctx context.Context, res CardResult, rep *Report) error {
	p := res.Posting
	ctx = context.WithoutCancel(ctx)

	for _, sink := range s.sinks {
		if err := sink.Write(ctx, p); err != nil {
			return fmt.Errorf("%s sink: page %d card %d: %w", sink.Name(), res.Page, res.Index, err)
		}
	}
	s.postings = append(s.postings, p)
	rep.Saved++

	// duplicates are reported, never dropped
	if key := util.CanonicalURL(p.URL); key != "" {
		if first, ok := s.seen[key]; ok {
			rep.Duplicates++
			s.log.Info("[card] duplicate posting kept", "url", p.URL, "first_seen", first)
		} else {
			s.seen[key] = len(s.postings)
		}
	}

	s.log.Info("[card] job saved", "page", res.Page, "card", res.Index, "title", p.Title, "company", p.Company)
	return nil
}
