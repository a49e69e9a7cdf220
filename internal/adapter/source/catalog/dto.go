package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TitleDTO is one entry of a search response
type TitleDTO struct {
	ID       FlexString `json:"id"`
	Title    string     `json:"title"`
	Year     FlexInt    `json:"year"`
	Synopsis string     `json:"synopsis,omitempty"`
	BoxArt   string     `json:"box_art,omitempty"`
	URL      string     `json:"url,omitempty"`
	Rating   float64    `json:"rating,omitempty"`
}

// titleEnvelope is the wrapped search response shape: {"titles": [...]}
type titleEnvelope struct {
	Titles *[]TitleDTO `json:"titles"`
}

// ReviewDTO is the review resource for one title
type ReviewDTO struct {
	ID        FlexString        `json:"id,omitempty"`
	Title     string            `json:"title,omitempty"`
	Consensus string            `json:"critics_consensus,omitempty"`
	Ratings   *RatingsDTO       `json:"ratings"`
	Links     map[string]string `json:"links,omitempty"`
}

// RatingsDTO holds the scores of a review. Scores are pointers so an absent
// field can be told apart from zero.
type RatingsDTO struct {
	CriticsRating  string `json:"critics_rating,omitempty"`
	CriticsScore   *int   `json:"critics_score"`
	AudienceRating string `json:"audience_rating,omitempty"`
	AudienceScore  *int   `json:"audience_score,omitempty"`
}

// FlexString accepts a JSON string or number. Catalog ids have been served
// as both.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexInt accepts a JSON number or a numeric string ("1989").
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("year %q is not a number: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(n)
	return nil
}
