package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/bruschetta/internal/domain"
)

// Color palette
var (
	Tomato     = lipgloss.Color("#E5533D")
	Basil      = lipgloss.Color("#4CAF50")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Red        = lipgloss.Color("#EF4444")
	Amber      = lipgloss.Color("#F59E0B")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Tomato)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)
)

// Raw rating state characters (unstyled)
const (
	AvailableChar   = "●"
	UnavailableChar = "○"
)

// Band styles
var (
	FavorableStyle   = lipgloss.NewStyle().Foreground(Basil)
	UnfavorableStyle = lipgloss.NewStyle().Foreground(Amber)
)

// BandStyle returns the foreground style for a rating band.
func BandStyle(b domain.Band) lipgloss.Style {
	if b == domain.BandFavorable {
		return FavorableStyle
	}
	return UnfavorableStyle
}

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Tomato).
			Padding(1, 2).
			Background(SlateDark)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Tomato)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Tomato)
)

// Prompt styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(Tomato).
			Bold(true)

	PromptBlurredStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Match highlight styles for filtered results
var (
	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Tomato).
				Bold(true)

	MatchHighlightSelectedStyle = lipgloss.NewStyle().
					Foreground(Tomato).
					Background(SlateLight).
					Bold(true)
)

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// RowPart represents a part of a row with optional foreground color.
// Matched marks runes to render with the match highlight.
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Matched    map[int]bool
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly so a selected row keeps its background
// across ANSI resets.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	base := func(fg *lipgloss.Color) lipgloss.Style {
		style := lipgloss.NewStyle()
		switch {
		case fg != nil:
			style = style.Foreground(*fg)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(SlateLight)
		}
		return style
	}

	var b strings.Builder
	visibleLen := 0

	for _, part := range parts {
		visibleLen += lipgloss.Width(part.Text)
		if len(part.Matched) == 0 {
			b.WriteString(base(part.Foreground).Render(part.Text))
			continue
		}
		match := MatchHighlightStyle
		if selected {
			match = MatchHighlightSelectedStyle
		}
		normal := base(part.Foreground)
		runes := []rune(part.Text)
		for i := 0; i < len(runes); {
			isMatch := part.Matched[i]
			j := i
			for j < len(runes) && part.Matched[j] == isMatch {
				j++
			}
			if isMatch {
				b.WriteString(match.Render(string(runes[i:j])))
			} else {
				b.WriteString(normal.Render(string(runes[i:j])))
			}
			i = j
		}
	}

	// Fill to width, leaving one cell of margin on each side
	pad := lipgloss.NewStyle()
	if selected {
		pad = pad.Background(SlateLight)
	}
	if gap := width - visibleLen - 2; gap > 0 {
		b.WriteString(pad.Render(strings.Repeat(" ", gap)))
	}
	margin := pad.Render(" ")

	return margin + b.String() + margin
}
