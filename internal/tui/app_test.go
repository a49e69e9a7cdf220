package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/mmcdole/bruschetta/internal/domain"
	"github.com/mmcdole/bruschetta/internal/service"
	"github.com/mmcdole/bruschetta/internal/store"
)

func score(v int) *int { return &v }

type fakeCatalog struct {
	titles    []domain.Title
	searchErr error
	reviews   map[string]*domain.Review
}

func (f *fakeCatalog) Search(context.Context, string) ([]domain.Title, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.titles, nil
}

func (f *fakeCatalog) Review(_ context.Context, t domain.Title) (*domain.Review, error) {
	r, ok := f.reviews[t.Key()]
	if !ok {
		return nil, &domain.HTTPStatusError{StatusCode: 404}
	}
	return r, nil
}

func batmanCatalog() *fakeCatalog {
	return &fakeCatalog{
		titles: []domain.Title{
			{ID: "1", Title: "Batman", Year: 1989, Synopsis: "The Dark Knight of Gotham City begins his war on crime."},
			{ID: "2", Title: "Batman Returns", Year: 1992},
			{ID: "3", Title: "The Batman", Year: 2022},
		},
		reviews: map[string]*domain.Review{
			"1": {CriticsScore: score(72), Consensus: "An auspicious dark knight."},
			"2": {CriticsScore: score(0)},
		},
	}
}

func newTestModel(cat *fakeCatalog) (Model, *service.SearchController, *ViewObserver) {
	view := NewViewObserver()
	ctrl := service.NewSearchController(cat, cat, store.NewResultStore(),
		service.WithObserver(view),
		service.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	m := NewModel(ctrl, view, "")
	m.statusTTL = time.Millisecond
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model), ctrl, view
}

func press(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command it produces, feeding controller
// messages back through the model.
func drain(m Model, cmd tea.Cmd) Model {
	m, _ = drainMsgs(m, cmd, false)
	return m
}

// drainMsgs is drain that can also deliver status timeouts. It reports
// whether one was produced.
func drainMsgs(m Model, cmd tea.Cmd, clearStatus bool) (Model, bool) {
	cleared := false
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case service.SearchResultsMsg, service.ReviewFetchedMsg:
			next, follow := m.Update(msg)
			m = next.(Model)
			queue = append(queue, follow)
		case ClearStatusMsg:
			cleared = true
			if clearStatus {
				next, _ := m.Update(msg)
				m = next.(Model)
			}
		}
	}
	return m, cleared
}

func search(m Model, query string) Model {
	m.input.SetValue(query)
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	return drain(m, cmd)
}

func TestSubmitRendersEveryRating(t *testing.T) {
	m, ctrl, view := newTestModel(batmanCatalog())

	m = search(m, "batman")

	if ctrl.Status() != service.StatusReady {
		t.Fatalf("status = %v, want ready", ctrl.Status())
	}
	if resolved, seeded := view.Progress(); resolved != 3 || seeded != 3 {
		t.Errorf("progress = %d/%d, want 3/3", resolved, seeded)
	}

	out := m.View()
	for _, want := range []string{
		"Batman (1989)",
		"Critics score: 72% (favorable)",
		"Batman Returns (1992)",
		"No rating",
		`3 results for "batman"`,
		"An auspicious dark knight.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "fetching rating") {
		t.Errorf("settled view still shows a pending row\n%s", out)
	}
}

func TestBlankSubmitIsIgnored(t *testing.T) {
	m, ctrl, _ := newTestModel(batmanCatalog())

	m.input.SetValue("   ")
	_, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("blank submit returned a command")
	}
	if ctrl.Generation() != 0 || ctrl.Status() != service.StatusIdle {
		t.Errorf("controller changed: generation=%d status=%v", ctrl.Generation(), ctrl.Status())
	}
}

func TestSearchFailureAlertBlocksInput(t *testing.T) {
	cat := batmanCatalog()
	cat.searchErr = errors.New("catalog unreachable")
	m, ctrl, view := newTestModel(cat)

	m = search(m, "batman")

	if ctrl.Status() != service.StatusFailed {
		t.Fatalf("status = %v, want failed", ctrl.Status())
	}
	out := m.View()
	if !strings.Contains(out, "Search failed") || !strings.Contains(out, "catalog unreachable") {
		t.Fatalf("alert not rendered\n%s", out)
	}

	// Keys other than dismiss are swallowed while the alert is up
	m, cmd := press(m, runes("q"))
	if cmd != nil {
		t.Error("key behind the alert produced a command")
	}
	if view.Alert() == "" {
		t.Fatal("alert dismissed by a non-dismiss key")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if view.Alert() != "" {
		t.Error("enter did not dismiss the alert")
	}
	if m.focus != focusInput {
		t.Error("focus did not return to the search input")
	}
}

func TestNewSearchReplacesRows(t *testing.T) {
	cat := batmanCatalog()
	m, _, view := newTestModel(cat)
	m = search(m, "batman")

	cat.titles = []domain.Title{{ID: "9", Title: "Superman", Year: 1978}}
	cat.reviews = map[string]*domain.Review{"9": {CriticsScore: score(94)}}
	m = search(m, "superman")

	if _, ok := view.row("1"); ok {
		t.Error("row from the previous search survived")
	}
	out := m.View()
	if strings.Contains(out, "Batman") {
		t.Errorf("previous results still rendered\n%s", out)
	}
	if !strings.Contains(out, "Critics score: 94% (favorable)") {
		t.Errorf("new rating missing\n%s", out)
	}
}

func TestFilterNarrowsResults(t *testing.T) {
	m, _, _ := newTestModel(batmanCatalog())
	m = search(m, "batman")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = press(m, runes("/"))
	if !m.filtering {
		t.Fatal("slash did not start filtering")
	}
	m, _ = press(m, runes("ret"))

	var got []string
	for _, e := range m.visibleEntries() {
		got = append(got, e.Title.Title)
	}
	if diff := cmp.Diff([]string{"Batman Returns"}, got); diff != "" {
		t.Errorf("filtered titles (-want +got):\n%s", diff)
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.filterQuery != "" || len(m.visibleEntries()) != 3 {
		t.Errorf("esc did not clear the filter: query=%q visible=%d", m.filterQuery, len(m.visibleEntries()))
	}
}

func TestCursorStaysInRange(t *testing.T) {
	m, _, _ := newTestModel(batmanCatalog())
	m = search(m, "batman")
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(m, runes("G"))
	if m.cursor != 2 {
		t.Errorf("cursor after G = %d, want 2", m.cursor)
	}
	m, _ = press(m, runes("j"))
	if m.cursor != 2 {
		t.Errorf("cursor moved past the end: %d", m.cursor)
	}
	m, _ = press(m, runes("g"))
	m, _ = press(m, runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor moved before the start: %d", m.cursor)
	}

	e, ok := m.selectedEntry()
	if !ok || e.Title.Title != "Batman" {
		t.Errorf("selected = %+v, %v", e.Title, ok)
	}
}

func TestMatchedRunes(t *testing.T) {
	tests := []struct {
		name  string
		title string
		query string
		want  map[int]bool
	}{
		{"prefix", "Batman", "bat", map[int]bool{0: true, 1: true, 2: true}},
		{"case folded", "BATMAN", "man", map[int]bool{3: true, 4: true, 5: true}},
		{"no query", "Batman", "", nil},
		{"no match", "Batman", "xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, matchedRunes(tt.title, tt.query)); diff != "" {
				t.Errorf("matchedRunes(%q, %q) (-want +got):\n%s", tt.title, tt.query, diff)
			}
		})
	}
}

func TestSettledStatusFades(t *testing.T) {
	m, _, view := newTestModel(batmanCatalog())
	m.input.SetValue("batman")
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cleared := drainMsgs(m, cmd, true)
	if !cleared {
		t.Fatal("settled search did not schedule a status timeout")
	}
	if s, _ := view.Status(); s != "" {
		t.Errorf("status = %q after timeout, want empty", s)
	}
	if !strings.Contains(m.View(), "Batman (1989)") {
		t.Error("rows cleared along with the status")
	}
}

func TestStaleStatusTimeoutKeepsNewerStatus(t *testing.T) {
	m, ctrl, view := newTestModel(batmanCatalog())
	m = search(m, "batman")
	m = search(m, "batman")

	next, _ := m.Update(ClearStatusMsg{Generation: ctrl.Generation() - 1})
	m = next.(Model)
	if s, _ := view.Status(); s != `3 results for "batman"` {
		t.Errorf("status = %q, want the newer search's count", s)
	}

	next, _ = m.Update(ClearStatusMsg{Generation: ctrl.Generation()})
	_ = next.(Model)
	if s, _ := view.Status(); s != "" {
		t.Errorf("status = %q, want empty", s)
	}
}
