// Package slug turns display titles into the URL-safe identifiers the review
// endpoint uses when it addresses items by year and title.
package slug

import (
	"regexp"
	"strings"
)

var (
	// Anything that is not a word character, a space or a hyphen is dropped.
	strip = regexp.MustCompile(`[^\w\- ]+`)
	// Runs of whitespace and hyphens collapse into one hyphen.
	collapse = regexp.MustCompile(`[\s-]+`)
)

// Hyphenify lower-cases s, removes punctuation and joins words with single
// hyphens: "Spider-Man: Homecoming" becomes "spider-man-homecoming".
// Hyphenify(Hyphenify(s)) == Hyphenify(s) for every s.
func Hyphenify(s string) string {
	stripped := strip.ReplaceAllString(s, "")
	return strings.ToLower(collapse.ReplaceAllString(stripped, "-"))
}
