package domain

import (
	"strconv"

	"github.com/mmcdole/bruschetta/internal/slug"
)

// Title is one entry of a primary search response.
type Title struct {
	ID       string  // Catalog identifier (empty when the catalog addresses by year+slug)
	Title    string  // Display title
	Year     int     // Release year
	Synopsis string  // Short plot summary
	BoxArt   string  // Box art image URL
	URL      string  // Catalog play/info URL
	Rating   float64 // Catalog's own average rating, unrelated to critics score
}

// Key returns the identity used for the title in the result store.
// Titles without an ID are keyed by "<year>/<slug>".
func (t Title) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return strconv.Itoa(t.Year) + "/" + slug.Hyphenify(t.Title)
}

// Slug returns the hyphenified title.
func (t Title) Slug() string {
	return slug.Hyphenify(t.Title)
}

// Review is the parsed rating resource for a single title.
type Review struct {
	CriticsScore   *int   // 0-100, nil when the payload omits it
	CriticsRating  string // e.g. "Certified Fresh"
	AudienceScore  *int
	AudienceRating string
	Consensus      string
	Links          map[string]string
}

// UsableScore reports the critics score and whether it can be displayed.
// Missing and non-positive scores are not usable.
func (r *Review) UsableScore() (int, bool) {
	if r == nil || r.CriticsScore == nil || *r.CriticsScore <= 0 {
		return 0, false
	}
	return *r.CriticsScore, true
}

// Entry is the merge of a Title with its (possibly absent) Review.
type Entry struct {
	Title  Title
	State  RatingState
	Review *Review // set only when State is RatingAvailable
	Reason string  // set only when State is RatingUnavailable
}

// Key returns the store key of the entry's title.
func (e Entry) Key() string {
	return e.Title.Key()
}
