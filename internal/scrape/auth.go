package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// authenticate submits the login form. Success is not verified; a failed
// login only shows up later as pages without cards.
func (s *Scraper) authenticate(ctx context.Context) error {
	sel := s.cfg.Selectors
	loginURL := s.cfg.Site.Origin + s.cfg.Site.LoginPath

	s.log.Info("[auth] logging in", "user", s.creds.Username)
	if err := s.page.Goto(ctx, loginURL); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	if err := s.page.Fill(sel.LoginUsername, s.creds.Username); err != nil {
		return fmt.Errorf("fill username: %w", err)
	}
	if err := s.page.Fill(sel.LoginPassword, s.creds.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := s.page.Click(sel.LoginSubmit); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	return s.settle(ctx, "login", s.leftPath(s.cfg.Site.LoginPath))
}

// leftPath reports whether the page has navigated away from path.
func (s *Scraper) leftPath(path string) func() bool {
	return func() bool {
		u, err := url.Parse(s.page.URL())
		if err != nil {
			return false
		}
		return !strings.HasPrefix(u.Path, path)
	}
}

func (s *Scraper) navigate(ctx context.Context) error {
	u := BuildSearchURL(s.cfg.Site.Origin, s.cfg.Site.SearchPath, s.cfg.Search.Keyword, s.cfg.Search.Location)

	s.log.Info("[nav] opening job search", "url", u)
	if err := s.page.Goto(ctx, u); err != nil {
		return fmt.Errorf("open job search: %w", err)
	}
	return s.settle(ctx, "search", nil)
}
