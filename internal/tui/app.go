package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/bruschetta/internal/domain"
	"github.com/mmcdole/bruschetta/internal/service"
)

// focusArea is the component receiving key input
type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

// Layout
const (
	HeaderHeight   = 2
	FooterHeight   = 1
	DetailHeight   = 6
	MinDetailSpace = 18 // terminal height below which the detail pane is hidden

	spinnerInterval = 100 * time.Millisecond
	statusDuration  = 4 * time.Second
)

// Model is the main Bubble Tea model for the application
type Model struct {
	ctrl *service.SearchController
	view *ViewObserver

	// UI Components
	input       textinput.Model
	filterInput textinput.Model

	// UI state
	focus        focusArea
	filtering    bool
	filterQuery  string
	cursor       int
	offset       int
	ShowHelp     bool
	SpinnerFrame int
	statusTTL    time.Duration

	// Dimensions
	Width  int
	Height int
	Ready  bool

	initialQuery string
}

// NewModel creates a new application model. view must be the observer
// registered with ctrl. A non-empty query is searched on startup.
func NewModel(ctrl *service.SearchController, view *ViewObserver, query string) Model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Movie title"
	input.CharLimit = 200
	input.SetValue(query)
	input.Focus()

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "filter results"
	filter.CharLimit = 100

	return Model{
		ctrl:         ctrl,
		view:         view,
		input:        input,
		filterInput:  filter,
		focus:        focusInput,
		statusTTL:    statusDuration,
		initialQuery: strings.TrimSpace(query),
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, TickCmd(spinnerInterval)}
	if m.initialQuery != "" {
		cmds = append(cmds, m.ctrl.Search(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.input.Width = max(msg.Width-12, 10)
		m.filterInput.Width = max(msg.Width-12, 10)
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case ClearStatusMsg:
		// A newer search owns the footer now
		if msg.Generation == m.ctrl.Generation() {
			m.view.ClearStatus()
		}
		return m, nil

	case service.SearchResultsMsg, service.ReviewFetchedMsg:
		wasReady := m.ctrl.Status() == service.StatusReady
		cmd := m.ctrl.Update(msg)
		m.clampCursor()
		if !wasReady && m.ctrl.Status() == service.StatusReady {
			cmd = tea.Batch(cmd, ClearStatusCmd(m.statusTTL, m.ctrl.Generation()))
		}
		return m, cmd
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	if m.filtering {
		m.filterInput, cmd = m.filterInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	// A failure alert blocks all other input until dismissed
	if m.view.Alert() != "" {
		if key.Matches(msg, Keys.Dismiss) {
			m.view.DismissAlert()
			return m.focusSearch()
		}
		return m, nil
	}

	if m.ShowHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.ShowHelp = false
		}
		return m, nil
	}

	switch {
	case m.filtering:
		return m.handleFilterKey(msg)
	case m.focus == focusInput:
		return m.handleInputKey(msg)
	default:
		return m.handleResultsKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Submit):
		cmd := m.ctrl.Search(m.input.Value())
		if cmd == nil {
			return m, nil
		}
		m.clearFilter()
		m.cursor, m.offset = 0, 0
		return m, cmd

	case key.Matches(msg, Keys.Focus):
		return m.focusList()

	case key.Matches(msg, Keys.Escape):
		if m.input.Value() != "" {
			m.input.SetValue("")
			return m, nil
		}
		return m.focusList()

	// Arrow keys move the selection; letters go to the input
	case msg.Type == tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape):
		m.clearFilter()
		return m, nil
	case key.Matches(msg, Keys.Submit):
		m.filtering = false
		m.filterInput.Blur()
		return m, nil
	case msg.Type == tea.KeyUp:
		m.moveCursor(-1)
		return m, nil
	case msg.Type == tea.KeyDown:
		m.moveCursor(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != m.filterQuery {
		m.filterQuery = q
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
	case key.Matches(msg, Keys.Focus):
		return m.focusSearch()
	case key.Matches(msg, Keys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, Keys.Escape):
		if m.filterQuery != "" {
			m.clearFilter()
			return m, nil
		}
		return m.focusSearch()
	case key.Matches(msg, Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, Keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, Keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, Keys.Home):
		m.moveCursor(-len(m.visibleEntries()))
	case key.Matches(msg, Keys.End):
		m.moveCursor(len(m.visibleEntries()))
	}
	return m, nil
}

func (m Model) focusSearch() (tea.Model, tea.Cmd) {
	m.focus = focusInput
	return m, m.input.Focus()
}

func (m Model) focusList() (tea.Model, tea.Cmd) {
	m.focus = focusResults
	m.input.Blur()
	return m, nil
}

func (m *Model) clearFilter() {
	m.filtering = false
	m.filterQuery = ""
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.cursor, m.offset = 0, 0
}

// visibleEntries returns the entries of the current search, narrowed and
// ranked by the active filter.
func (m Model) visibleEntries() []domain.Entry {
	entries := m.ctrl.Entries()
	if m.filterQuery == "" {
		return entries
	}
	return service.FilterEntries(entries, m.filterQuery)
}

// selectedEntry returns the entry under the cursor.
func (m Model) selectedEntry() (domain.Entry, bool) {
	entries := m.visibleEntries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return domain.Entry{}, false
	}
	return entries[m.cursor], true
}

func (m Model) showDetail() bool {
	return m.Height >= MinDetailSpace
}

func (m Model) listHeight() int {
	h := m.Height - HeaderHeight - FooterHeight
	if m.showDetail() {
		h -= DetailHeight
	}
	return max(h, 1)
}

func (m *Model) moveCursor(delta int) {
	n := len(m.visibleEntries())
	if n == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.ensureCursorVisible()
}

func (m *Model) clampCursor() {
	m.moveCursor(0)
}

func (m *Model) ensureCursorVisible() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}
