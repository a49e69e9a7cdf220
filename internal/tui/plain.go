package tui

import (
	"fmt"
	"io"

	"github.com/mmcdole/bruschetta/internal/domain"
	"github.com/mmcdole/bruschetta/internal/tui/styles"
)

// PlainObserver prints controller events as lines, for pipes and scripts.
// Ratings are printed in the order they arrive.
type PlainObserver struct {
	out    io.Writer
	errOut io.Writer
	titles map[string]domain.Title
	seeded int
	failed string
}

// NewPlainObserver creates an observer writing results to out and the
// search failure to errOut.
func NewPlainObserver(out, errOut io.Writer) *PlainObserver {
	return &PlainObserver{
		out:    out,
		errOut: errOut,
		titles: make(map[string]domain.Title),
	}
}

func (p *PlainObserver) SearchStarted(query string) {
	p.titles = make(map[string]domain.Title)
	p.seeded = 0
	p.failed = ""
	fmt.Fprintln(p.out, styles.DimStyle.Render(fmt.Sprintf("Searching for %q...", query)))
}

func (p *PlainObserver) ItemSeeded(key string, t domain.Title) {
	p.titles[key] = t
	p.seeded++
}

func (p *PlainObserver) ItemRatingAvailable(key string, score int, band domain.Band) {
	style := styles.BandStyle(band)
	fmt.Fprintf(p.out, "%s %s  %s\n",
		style.Render(styles.AvailableChar),
		p.label(key),
		style.Render(domain.FormatScore(score, band)))
}

func (p *PlainObserver) ItemRatingUnavailable(key string) {
	fmt.Fprintf(p.out, "%s %s  %s\n",
		styles.DimStyle.Render(styles.UnavailableChar),
		p.label(key),
		styles.DimStyle.Render(domain.NoRatingText))
}

func (p *PlainObserver) SearchFailed(reason string) {
	p.failed = reason
	fmt.Fprintln(p.errOut, styles.ErrorStyle.Render("Search failed: "+reason))
}

func (p *PlainObserver) SearchSettled(query string) {
	var line string
	switch p.seeded {
	case 0:
		line = fmt.Sprintf("No results for %q", query)
	case 1:
		line = fmt.Sprintf("1 result for %q", query)
	default:
		line = fmt.Sprintf("%d results for %q", p.seeded, query)
	}
	fmt.Fprintln(p.out, styles.DimStyle.Render(line))
}

// Failed returns the failure reason of the last search, if it failed.
func (p *PlainObserver) Failed() string { return p.failed }

func (p *PlainObserver) label(key string) string {
	t, ok := p.titles[key]
	if !ok {
		return key
	}
	label := styles.TitleStyle.Render(t.Title)
	if t.Year > 0 {
		label += styles.DimStyle.Render(fmt.Sprintf(" (%d)", t.Year))
	}
	return label
}
