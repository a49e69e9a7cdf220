package domain

import "fmt"

// RatingState classifies an item's review status within one search.
type RatingState int

const (
	// RatingPending means the review has not resolved yet (or the item is unknown).
	RatingPending RatingState = iota
	// RatingAvailable means a usable critics score was merged.
	RatingAvailable
	// RatingUnavailable means the fetch failed or the score was missing or zero.
	RatingUnavailable
)

func (s RatingState) String() string {
	switch s {
	case RatingPending:
		return "pending"
	case RatingAvailable:
		return "available"
	case RatingUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("RatingState(%d)", int(s))
	}
}

// Band is the qualitative presentation of a critics score.
type Band string

const (
	BandFavorable   Band = "favorable"
	BandUnfavorable Band = "unfavorable"
)

// DefaultFavorableThreshold is the lowest score shown as favorable.
const DefaultFavorableThreshold = 60

// BandFor returns the band for score. The threshold itself is favorable.
func BandFor(score, threshold int) Band {
	if score >= threshold {
		return BandFavorable
	}
	return BandUnfavorable
}

// NoRatingText is shown for items whose rating is unavailable.
const NoRatingText = "No rating"

// FormatRating renders the rating line for an entry. Pending entries render
// as an empty string so the caller can show its own loading indicator.
func FormatRating(e Entry, threshold int) string {
	switch e.State {
	case RatingAvailable:
		score, ok := e.Review.UsableScore()
		if !ok {
			return NoRatingText
		}
		return FormatScore(score, BandFor(score, threshold))
	case RatingUnavailable:
		return NoRatingText
	default:
		return ""
	}
}

// FormatScore renders a score with its band.
func FormatScore(score int, band Band) string {
	return fmt.Sprintf("Critics score: %d%% (%s)", score, band)
}
