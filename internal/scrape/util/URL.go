package util

import (
	"net/url"
	"sort"
	"strings"
)

// NotAvailable stands in for a URL when the card has no link.
const NotAvailable = "N/A"

// QueryEscape escapes s for a query value with spaces as %20, not "+".
func QueryEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// AbsoluteURL prefixes a relative href with origin. Absolute hrefs are kept
// and an empty href yields NotAvailable.
func AbsoluteURL(origin, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return NotAvailable
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	origin = strings.TrimRight(origin, "/")
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return origin + href
}

// CanonicalURL reduces a posting URL to a comparison key: lowercase scheme
// and host, no fragment, no tracking parameters, and for LinkedIn only
// currentJobId kept.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == NotAvailable {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "refid" || lk == "trackingid" || lk == "trk" {
			q.Del(k)
		}
	}

	if strings.Contains(u.Host, "linkedin.com") {
		keep := url.Values{}
		if v := q.Get("currentJobId"); v != "" {
			keep.Set("currentJobId", v)
		}
		q = keep
	}

	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}
