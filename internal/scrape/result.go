package scrape

import (
	"fmt"
	"time"

	"jobscrape/internal/domain"
)

// StopReason says why the page loop ended.
type StopReason string

const (
	StopMaxPages        StopReason = "max_pages"
	StopNoNextPage      StopReason = "no_next_page"
	StopCardTimeout     StopReason = "card_timeout"
	StopPaginationError StopReason = "pagination_error"
	StopCanceled        StopReason = "canceled"
)

// CardResult is the outcome of extracting one card: a posting, or the
// reason it was skipped.
type CardResult struct {
	Page    int
	Index   int
	Posting domain.JobPosting
	Err     error
}

func (r CardResult) OK() bool { return r.Err == nil }

type Skip struct {
	Page   int    `json:"page"`
	Card   int    `json:"card"`
	Reason string `json:"reason"`
}

type Report struct {
	RunID      string     `json:"run_id"`
	Keyword    string     `json:"keyword"`
	Location   string     `json:"location"`
	Pages      int        `json:"pages"`
	Cards      int        `json:"cards"`
	Saved      int        `json:"saved"`
	Duplicates int        `json:"duplicates"`
	Skipped    []Skip     `json:"skipped"`
	Stop       StopReason `json:"stop"`
	StopDetail string     `json:"stop_detail,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt time.Time  `json:"finished_at"`
}

func (r *Report) skip(res CardResult) {
	r.Skipped = append(r.Skipped, Skip{Page: res.Page, Card: res.Index, Reason: res.Err.Error()})
}

// Summary is a one-line human description of the run.
func (r Report) Summary() string {
	s := fmt.Sprintf("%q in %q: %d saved from %d cards over %d page(s), %d skipped, %d duplicate(s); stopped: %s",
		r.Keyword, r.Location, r.Saved, r.Cards, r.Pages, len(r.Skipped), r.Duplicates, r.Stop)
	if r.StopDetail != "" {
		s += " (" + r.StopDetail + ")"
	}
	return s
}
