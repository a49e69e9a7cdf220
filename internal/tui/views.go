package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/bruschetta/internal/domain"
	"github.com/mmcdole/bruschetta/internal/service"
	"github.com/mmcdole/bruschetta/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Blocking modals
	if alert := m.view.Alert(); alert != "" {
		return m.renderAlert(alert)
	}
	if m.ShowHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderHeader(), m.renderResults()}
	if m.showDetail() {
		sections = append(sections, m.renderDetail())
	}
	sections = append(sections, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	prompt := styles.PromptBlurredStyle.Render("Search ")
	if m.focus == focusInput && !m.filtering {
		prompt = styles.PromptStyle.Render("Search ")
	}
	line1 := " " + prompt + m.input.View()

	var line2 string
	if m.filtering || m.filterQuery != "" {
		label := styles.PromptBlurredStyle.Render("Filter ")
		if m.filtering {
			label = styles.PromptStyle.Render("Filter ")
		}
		line2 = " " + label + m.filterInput.View()
	}
	return line1 + "\n" + line2
}

func (m Model) renderResults() string {
	height := m.listHeight()
	entries := m.visibleEntries()

	var lines []string
	if len(entries) == 0 {
		lines = append(lines, " "+m.emptyMessage())
	}

	end := min(m.offset+height, len(entries))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(entries[i], i == m.cursor, m.Width))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) emptyMessage() string {
	switch m.ctrl.Status() {
	case service.StatusIdle:
		return styles.DimStyle.Render("Type a movie title and press enter")
	case service.StatusSearching:
		return RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Searching...")
	case service.StatusFailed:
		return styles.ErrorStyle.Render("Search failed")
	}
	if m.filterQuery != "" && len(m.ctrl.Entries()) > 0 {
		return styles.DimStyle.Render("No matches for filter")
	}
	return styles.DimStyle.Render(fmt.Sprintf("No results for %q", m.ctrl.Query()))
}

// rowFor returns the cached row for an entry, rebuilding it from the store
// when the observer has not seen the key.
func (m Model) rowFor(e domain.Entry) rowView {
	if r, ok := m.view.row(e.Key()); ok {
		return r
	}
	r := rowView{
		title:  e.Title.Title,
		year:   e.Title.Year,
		state:  e.State,
		rating: m.ctrl.FormatRating(e),
	}
	if score, ok := e.Review.UsableScore(); ok {
		r.band = domain.BandFor(score, m.ctrl.Threshold())
	}
	return r
}

// renderRow renders one result line: indicator, title, year and rating.
func (m Model) renderRow(e domain.Entry, selected bool, width int) string {
	r := m.rowFor(e)

	var indicator string
	var indicatorColor lipgloss.Color
	rating := r.rating
	ratingColor := styles.LightGray
	switch r.state {
	case domain.RatingAvailable:
		indicator = styles.AvailableChar
		indicatorColor = styles.Amber
		if r.band == domain.BandFavorable {
			indicatorColor = styles.Basil
		}
		ratingColor = indicatorColor
	case domain.RatingUnavailable:
		indicator = styles.UnavailableChar
		indicatorColor = styles.DimGray
		ratingColor = styles.DimGray
	default:
		indicator = spinnerFrames[m.SpinnerFrame%len(spinnerFrames)]
		indicatorColor = styles.Tomato
		rating = "fetching rating"
		ratingColor = styles.DimGray
	}

	year := ""
	if r.year > 0 {
		year = fmt.Sprintf(" (%d)", r.year)
	}

	// margins(2) + indicator(1) + space(1) + gap before rating(2)
	titleWidth := width - 6 - lipgloss.Width(year) - lipgloss.Width(rating)
	title := styles.Truncate(r.title, max(titleWidth, 8))
	gap := max(width-2-2-lipgloss.Width(title)-lipgloss.Width(year)-lipgloss.Width(rating), 1)

	dim := styles.DimGray
	parts := []styles.RowPart{
		{Text: indicator, Foreground: &indicatorColor},
		{Text: " "},
		{Text: title, Matched: matchedRunes(title, m.filterQuery)},
		{Text: year, Foreground: &dim},
		{Text: strings.Repeat(" ", gap)},
		{Text: rating, Foreground: &ratingColor},
	}
	return styles.RenderListRow(parts, selected, width)
}

// matchedRunes returns the rune positions of title matched by query.
func matchedRunes(title, query string) map[int]bool {
	if query == "" {
		return nil
	}
	lower := strings.ToLower(title)
	matches := fuzzy.Find(strings.ToLower(query), []string{lower})
	if len(matches) == 0 {
		return nil
	}

	// Match indexes are byte offsets into the candidate
	runeAt := make(map[int]int, len(lower))
	n := 0
	for i := range lower {
		runeAt[i] = n
		n++
	}
	set := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		if r, ok := runeAt[idx]; ok {
			set[r] = true
		}
	}
	return set
}

// renderDetail renders the pane describing the selected entry.
func (m Model) renderDetail() string {
	width := max(m.Width-4, 10)
	sep := styles.DimStyle.Render(strings.Repeat("─", max(m.Width, 1)))

	e, ok := m.selectedEntry()
	if !ok {
		return sep + strings.Repeat("\n", DetailHeight-1)
	}

	var b strings.Builder
	header := e.Title.Title
	if e.Title.Year > 0 {
		header = fmt.Sprintf("%s (%d)", header, e.Title.Year)
	}
	b.WriteString(styles.TitleStyle.Render(styles.Truncate(header, width)))
	b.WriteString("\n")

	switch e.State {
	case domain.RatingAvailable:
		b.WriteString(m.renderReviewLine(e.Review))
	case domain.RatingUnavailable:
		line := domain.NoRatingText
		if e.Reason != "" {
			line += " · " + e.Reason
		}
		b.WriteString(styles.DimStyle.Render(styles.Truncate(line, width)))
	default:
		b.WriteString(RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Fetching rating..."))
	}
	b.WriteString("\n")

	text := e.Title.Synopsis
	if e.Review != nil && e.Review.Consensus != "" {
		text = e.Review.Consensus
	}
	body := strings.Split(wordWrap(text, width), "\n")
	if len(body) > DetailHeight-3 {
		body = body[:DetailHeight-3]
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(body, "\n")))

	content := lipgloss.NewStyle().
		PaddingLeft(2).
		Height(DetailHeight - 1).
		MaxHeight(DetailHeight - 1).
		Render(b.String())
	return sep + "\n" + content
}

func (m Model) renderReviewLine(r *domain.Review) string {
	score, ok := r.UsableScore()
	if !ok {
		return styles.DimStyle.Render(domain.NoRatingText)
	}
	band := domain.BandFor(score, m.ctrl.Threshold())
	parts := []string{styles.BandStyle(band).Render(domain.FormatScore(score, band))}
	if r.CriticsRating != "" {
		parts = append(parts, styles.DimStyle.Render(r.CriticsRating))
	}
	if r.AudienceScore != nil && *r.AudienceScore > 0 {
		audience := fmt.Sprintf("Audience %d%%", *r.AudienceScore)
		if r.AudienceRating != "" {
			audience += " (" + r.AudienceRating + ")"
		}
		parts = append(parts, styles.DimStyle.Render(audience))
	}
	return strings.Join(parts, styles.DimStyle.Render(" · "))
}

// renderFooter renders the status line
func (m Model) renderFooter() string {
	var left string
	if pending := m.ctrl.Pending(); pending > 0 {
		resolved, seeded := m.view.Progress()
		left = RenderSpinner(m.SpinnerFrame) + " " +
			styles.DimStyle.Render(fmt.Sprintf("Fetching ratings %d/%d", resolved, seeded))
	} else if status, isErr := m.view.Status(); status != "" {
		if isErr {
			left = styles.ErrorStyle.Render(status)
		} else {
			left = styles.DimStyle.Render(status)
		}
	}
	left = " " + left

	var right string
	if m.filterQuery != "" {
		right = styles.AccentStyle.Render("esc") + styles.DimStyle.Render(" clear filter  ")
	}
	right += styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help ")

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          RESULTS
  enter      Search                j/k        Up/down
  tab        Focus results         g/Home     First item
  esc        Clear input           G/End      Last item
  ↑/↓        Move selection        PgUp/PgDn  Scroll page
                                   /          Filter results
OTHER                              esc        Clear filter
  ?          This help             tab        Focus search
  q          Quit (results)
  Ctrl+c     Quit

Press ? or esc to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderAlert renders the blocking search failure alert
func (m Model) renderAlert(reason string) string {
	width := min(max(m.Width-12, 20), 60)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render("Search failed"))
	b.WriteString("\n")
	b.WriteString(styles.ErrorStyle.Render(wordWrap(reason, width)))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpKeyStyle.Render("enter") + styles.HelpDescStyle.Render(" dismiss"))

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.AlertStyle.Render(b.String()))
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)])
}

// wordWrap wraps text to the specified width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for _, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen > 0 && lineLen+wordLen+1 > width {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
