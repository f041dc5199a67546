package scrape

import (
	"errors"
	"fmt"

	"jobscrape/internal/config"
	"jobscrape/internal/domain"
	"jobscrape/internal/scrape/types"
	"jobscrape/internal/scrape/util"
)

var ErrMissingTitle = errors.New("missing title")

// ExtractCard builds a posting from one result card. Each field is the
// space-joined, trimmed, non-empty text fragments of its selector.
func ExtractCard(card types.Card, sel config.Selectors, keyword, origin string) (domain.JobPosting, error) {
	titleRaw, err := card.Texts(sel.Title)
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("title: %w", err)
	}
	title := util.JoinFragments(titleRaw)
	if title == "" {
		return domain.JobPosting{}, ErrMissingTitle
	}

	companyRaw, err := card.Texts(sel.Company)
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("company: %w", err)
	}
	locationRaw, err := card.Texts(sel.Location)
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("location: %w", err)
	}
	href, _, err := card.Attr(sel.Link, "href")
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("link: %w", err)
	}

	return domain.JobPosting{
		Keyword:    keyword,
		Title:      title,
		Company:    util.JoinFragments(companyRaw),
		Location:   util.JoinFragments(locationRaw),
		URL:        util.AbsoluteURL(origin, href),
		Connection: domain.ConnectionPlaceholder,
	}, nil
}

// extractSafe runs ExtractCard and turns a panic from the page driver into
// a skip for this card only.
func extractSafe(card types.Card, sel config.Selectors, keyword, origin string) (p domain.JobPosting, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return ExtractCard(card, sel, keyword, origin)
}
