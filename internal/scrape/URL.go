package scrape

import (
	"strings"

	"jobscrape/internal/scrape/util"
)

// BuildSearchURL returns the job search URL for keyword and location.
func BuildSearchURL(origin, searchPath, keyword, location string) string {
	return strings.TrimRight(origin, "/") + searchPath +
		"?keywords=" + util.QueryEscape(keyword) +
		"&location=" + util.QueryEscape(location)
}
