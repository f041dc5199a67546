package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText collapses runs of whitespace (NBSP included) into single spaces
// and returns the NFC form.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(strings.TrimSpace(s))
}

// JoinFragments cleans each fragment with CleanText, drops the empty ones
// and joins the rest with a single space, keeping their order.
func JoinFragments(frags []string) string {
	out := make([]string, 0, len(frags))
	for _, f := range frags {
		f = CleanText(f)
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
