package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mmcdole/bruschetta/internal/domain"
)

func TestViewObserverTouchesOnlyTheEventKey(t *testing.T) {
	o := NewViewObserver()
	o.SearchStarted("batman")
	o.ItemSeeded("1", domain.Title{ID: "1", Title: "Batman", Year: 1989})
	o.ItemSeeded("2", domain.Title{ID: "2", Title: "Batman Returns", Year: 1992})

	before, _ := o.row("2")
	o.ItemRatingAvailable("1", 72, domain.BandFavorable)

	got, _ := o.row("1")
	if got.state != domain.RatingAvailable || got.rating != "Critics score: 72% (favorable)" {
		t.Errorf("row 1 = %+v", got)
	}
	if after, _ := o.row("2"); after != before {
		t.Errorf("row 2 changed: %+v -> %+v", before, after)
	}

	o.ItemRatingUnavailable("2")
	if got, _ := o.row("2"); got.rating != domain.NoRatingText {
		t.Errorf("row 2 rating = %q", got.rating)
	}
	if resolved, seeded := o.Progress(); resolved != 2 || seeded != 2 {
		t.Errorf("progress = %d/%d", resolved, seeded)
	}
}

func TestViewObserverIgnoresUnknownKeys(t *testing.T) {
	o := NewViewObserver()
	o.SearchStarted("batman")
	o.ItemRatingAvailable("ghost", 90, domain.BandFavorable)
	o.ItemRatingUnavailable("ghost")

	if _, ok := o.row("ghost"); ok {
		t.Error("unknown key created a row")
	}
	if resolved, _ := o.Progress(); resolved != 0 {
		t.Errorf("resolved = %d, want 0", resolved)
	}
}

func TestViewObserverStatus(t *testing.T) {
	o := NewViewObserver()

	o.SearchStarted("zzz")
	o.SearchSettled("zzz")
	if s, isErr := o.Status(); s != `No results for "zzz"` || isErr {
		t.Errorf("status = %q, %v", s, isErr)
	}

	o.SearchStarted("batman")
	o.SearchFailed("HTTP 503")
	if s, isErr := o.Status(); s != "Search failed" || !isErr {
		t.Errorf("status = %q, %v", s, isErr)
	}
	if o.Alert() != "HTTP 503" {
		t.Errorf("alert = %q", o.Alert())
	}

	o.SearchStarted("batman")
	if o.Alert() != "" {
		t.Error("new search kept the old alert")
	}
}

func TestPlainObserver(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPlainObserver(&out, &errOut)

	p.SearchStarted("batman")
	p.ItemSeeded("1", domain.Title{ID: "1", Title: "Batman", Year: 1989})
	p.ItemSeeded("2", domain.Title{ID: "2", Title: "Batman Returns", Year: 1992})
	p.ItemRatingUnavailable("2")
	p.ItemRatingAvailable("1", 45, domain.BandUnfavorable)
	p.SearchSettled("batman")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out.String())
	}
	checks := []struct {
		line int
		want []string
	}{
		{0, []string{`Searching for "batman"`}},
		{1, []string{"Batman Returns", "(1992)", "No rating"}},
		{2, []string{"Batman", "(1989)", "Critics score: 45% (unfavorable)"}},
		{3, []string{`2 results for "batman"`}},
	}
	for _, c := range checks {
		for _, want := range c.want {
			if !strings.Contains(lines[c.line], want) {
				t.Errorf("line %d = %q, missing %q", c.line, lines[c.line], want)
			}
		}
	}
	if errOut.Len() != 0 || p.Failed() != "" {
		t.Errorf("unexpected failure output %q", errOut.String())
	}
}

func TestPlainObserverFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPlainObserver(&out, &errOut)

	p.SearchStarted("batman")
	p.SearchFailed("server offline")

	if p.Failed() != "server offline" {
		t.Errorf("Failed() = %q", p.Failed())
	}
	if !strings.Contains(errOut.String(), "Search failed: server offline") {
		t.Errorf("stderr = %q", errOut.String())
	}
}
