package catalog

import (
	"fmt"
	"strings"

	"github.com/mmcdole/bruschetta/internal/domain"
)

// MapTitles validates search entries and converts them to domain titles.
// Every entry needs a title; id addressing needs an id and slug addressing
// needs a year.
func MapTitles(dtos []TitleDTO, addressing Addressing) ([]domain.Title, error) {
	titles := make([]domain.Title, 0, len(dtos))
	for i, d := range dtos {
		t, err := mapTitle(d, addressing)
		if err != nil {
			return nil, fmt.Errorf("%w: search entry %d: %v", domain.ErrMalformedPayload, i, err)
		}
		titles = append(titles, t)
	}
	return titles, nil
}

func mapTitle(d TitleDTO, addressing Addressing) (domain.Title, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return domain.Title{}, fmt.Errorf("missing title")
	}

	id := strings.TrimSpace(string(d.ID))
	switch addressing {
	case AddressBySlug:
		if d.Year <= 0 {
			return domain.Title{}, fmt.Errorf("%q has no year", title)
		}
	default:
		if id == "" {
			return domain.Title{}, fmt.Errorf("%q has no id", title)
		}
	}

	return domain.Title{
		ID:       id,
		Title:    title,
		Year:     int(d.Year),
		Synopsis: d.Synopsis,
		BoxArt:   d.BoxArt,
		URL:      d.URL,
		Rating:   d.Rating,
	}, nil
}

// MapReview validates a review payload and converts it to a domain review.
func MapReview(d ReviewDTO) (*domain.Review, error) {
	if d.Ratings == nil {
		return nil, fmt.Errorf("%w: review has no ratings", domain.ErrMalformedPayload)
	}
	return &domain.Review{
		CriticsScore:   d.Ratings.CriticsScore,
		CriticsRating:  d.Ratings.CriticsRating,
		AudienceScore:  d.Ratings.AudienceScore,
		AudienceRating: d.Ratings.AudienceRating,
		Consensus:      d.Consensus,
		Links:          d.Links,
	}, nil
}
