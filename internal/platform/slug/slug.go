package slug

import (
	"regexp"
	"strings"
)

// maxLen keeps note filenames short on every filesystem.
const maxLen = 40

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns an activity name into a lowercase, dash-separated filename part.
// "Cross-country skiing" becomes "cross-country-skiing"; names with no usable
// characters become fallback.
func Make(input, fallback string) string {
	s := nonAlphaNum.ReplaceAllString(strings.ToLower(strings.TrimSpace(input)), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}
