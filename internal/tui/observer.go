package tui

import (
	"fmt"

	"github.com/mmcdole/bruschetta/internal/domain"
)

// rowView is the cached presentation of one result row.
type rowView struct {
	title  string
	year   int
	state  domain.RatingState
	band   domain.Band
	rating string
}

// ViewObserver adapts controller events into per-row view state for the TUI.
// Events arrive on the Bubble Tea update goroutine, so no locking is needed.
type ViewObserver struct {
	rows     map[string]rowView
	seeded   int
	resolved int

	status    string
	statusErr bool
	alert     string
}

// NewViewObserver creates an observer with an empty row cache.
func NewViewObserver() *ViewObserver {
	return &ViewObserver{rows: make(map[string]rowView)}
}

func (o *ViewObserver) SearchStarted(query string) {
	o.rows = make(map[string]rowView)
	o.seeded, o.resolved = 0, 0
	o.alert = ""
	o.status = fmt.Sprintf("Searching for %q...", query)
	o.statusErr = false
}

func (o *ViewObserver) ItemSeeded(key string, t domain.Title) {
	o.rows[key] = rowView{title: t.Title, year: t.Year, state: domain.RatingPending}
	o.seeded++
}

func (o *ViewObserver) ItemRatingAvailable(key string, score int, band domain.Band) {
	r, ok := o.rows[key]
	if !ok {
		return
	}
	r.state = domain.RatingAvailable
	r.band = band
	r.rating = domain.FormatScore(score, band)
	o.rows[key] = r
	o.resolved++
}

func (o *ViewObserver) ItemRatingUnavailable(key string) {
	r, ok := o.rows[key]
	if !ok {
		return
	}
	r.state = domain.RatingUnavailable
	r.rating = domain.NoRatingText
	o.rows[key] = r
	o.resolved++
}

func (o *ViewObserver) SearchFailed(reason string) {
	o.alert = reason
	o.status = "Search failed"
	o.statusErr = true
}

func (o *ViewObserver) SearchSettled(query string) {
	o.statusErr = false
	switch o.seeded {
	case 0:
		o.status = fmt.Sprintf("No results for %q", query)
	case 1:
		o.status = fmt.Sprintf("1 result for %q", query)
	default:
		o.status = fmt.Sprintf("%d results for %q", o.seeded, query)
	}
}

// row returns the cached row for key.
func (o *ViewObserver) row(key string) (rowView, bool) {
	r, ok := o.rows[key]
	return r, ok
}

// Progress reports how many seeded rows reached a terminal state.
func (o *ViewObserver) Progress() (resolved, seeded int) {
	return o.resolved, o.seeded
}

// Alert returns the pending failure alert, if any.
func (o *ViewObserver) Alert() string { return o.alert }

// DismissAlert clears the failure alert.
func (o *ViewObserver) DismissAlert() { o.alert = "" }

// Status returns the footer status line and whether it is an error.
func (o *ViewObserver) Status() (string, bool) { return o.status, o.statusErr }

// ClearStatus empties the footer status line.
func (o *ViewObserver) ClearStatus() {
	o.status = ""
	o.statusErr = false
}
