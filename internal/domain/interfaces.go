package domain

// Observer receives the presentation events of a search.
// Item events are scoped to a single key; renderers should only redraw that row.
type Observer interface {
	// SearchStarted fires after the store was cleared for a new query
	SearchStarted(query string)

	// ItemSeeded fires once per title when the primary response is applied
	ItemSeeded(key string, title Title)

	// ItemRatingAvailable fires when a usable critics score arrives
	ItemRatingAvailable(key string, score int, band Band)

	// ItemRatingUnavailable fires when the review failed or had no usable score
	ItemRatingUnavailable(key string)

	// SearchFailed fires when the primary search request fails
	SearchFailed(reason string)

	// SearchSettled fires once every seeded item reached a terminal state
	SearchSettled(query string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) SearchStarted(string)                  {}
func (NopObserver) ItemSeeded(string, Title)              {}
func (NopObserver) ItemRatingAvailable(string, int, Band) {}
func (NopObserver) ItemRatingUnavailable(string)          {}
func (NopObserver) SearchFailed(string)                   {}
func (NopObserver) SearchSettled(string)                  {}
