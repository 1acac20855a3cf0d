package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/namesearch/internal/engine"
	"github.com/rshade/namesearch/internal/logging"
)

// ViewState is the screen the results browser shows.
type ViewState int

const (
	ViewStateLoading ViewState = iota
	ViewStateList
	ViewStateQuitting
	ViewStateError
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	tableChrome   = 6

	colNameWidth  = 16
	colCountWidth = 12
	colFirstWidth = 28

	keyEnter = "enter"
	keyEsc   = "esc"
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keySlash = "/"
)

// BatchProgressMsg reports scan progress.
type BatchProgressMsg struct {
	Completed int
	Failed    int
	Total     int
}

// ResultsLoadedMsg carries the finished scan. Err may be set together with
// a partial Result when the scan timed out.
type ResultsLoadedMsg struct {
	Result engine.AggregatedResult
	Err    error
}

// ResultsModel is the Bubble Tea model of the results browser.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type ResultsModel struct {
	state ViewState
	ctx   context.Context

	result  engine.AggregatedResult
	runErr  error
	allRows []engine.NameCount
	rows    []engine.NameCount

	table      table.Model
	textInput  textinput.Model
	showFilter bool

	width  int
	height int

	completed int
	failed    int
	total     int

	loadingState *LoadingState
}

// NewResultsModel creates a browser in the loading state.
func NewResultsModel(ctx context.Context) (ResultsModel, tea.Cmd) {
	m := ResultsModel{
		state:        ViewStateLoading,
		ctx:          ctx,
		width:        defaultWidth,
		height:       defaultHeight,
		textInput:    newTextInput(),
		loadingState: NewLoadingState(),
	}
	m.table = m.buildTable()
	return m, m.loadingState.Init()
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 64
	return ti
}

// Init starts the spinner (Bubble Tea interface).
func (m ResultsModel) Init() tea.Cmd {
	return m.loadingState.Init()
}

// Update handles messages (Bubble Tea interface).
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.buildTable()
		return m, nil
	case BatchProgressMsg:
		if m.state != ViewStateLoading {
			return m, nil
		}
		m.completed = msg.Completed
		m.failed = msg.Failed
		m.total = msg.Total
		return m, nil
	case ResultsLoadedMsg:
		return m.handleResultsLoaded(msg)
	case tea.KeyMsg:
		if msg.String() == keyCtrlC {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == keyQuit {
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
		return m, m.loadingState.Update(msg)
	case ViewStateList, ViewStateError:
		return m.handleListUpdate(msg)
	default:
		return m, nil
	}
}

func (m ResultsModel) handleResultsLoaded(msg ResultsLoadedMsg) (tea.Model, tea.Cmd) {
	m.result = msg.Result
	m.runErr = msg.Err
	m.allRows = sortByCount(engine.Summarize(msg.Result))

	logging.FromContext(m.ctx).Debug().
		Str("component", "tui").
		Int("names", len(m.allRows)).
		Bool("incomplete", msg.Result.Incomplete).
		Msg("results loaded")

	// A run that produced no result at all has nothing to browse.
	if msg.Err != nil && msg.Result.Names.Len() == 0 {
		m.state = ViewStateError
		return m, nil
	}

	m.state = ViewStateList
	m.applyFilter(m.textInput.Value())
	return m, nil
}

func (m ResultsModel) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.applyFilter(m.textInput.Value())
			m.table.Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.applyFilter(m.textInput.Value())
	return m, cmd
}

func (m ResultsModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyQuit:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keySlash:
			if m.state == ViewStateList {
				m.showFilter = true
				m.table.Blur()
				return m, m.textInput.Focus()
			}
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// applyFilter keeps names containing filter, case-insensitively.
func (m *ResultsModel) applyFilter(filter string) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	rows := make([]engine.NameCount, 0, len(m.allRows))
	for _, r := range m.allRows {
		if filter == "" || strings.Contains(strings.ToLower(r.Name), filter) {
			rows = append(rows, r)
		}
	}
	m.rows = rows
	m.table.SetRows(tableRows(m.rows))
}

func (m ResultsModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: colNameWidth},
		{Title: "Occurrences", Width: colCountWidth},
		{Title: "First position", Width: colFirstWidth},
	}
	height := max(1, m.height-tableChrome)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows(m.rows)),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(ColorHeader).Bold(true)
	styles.Selected = styles.Selected.Foreground(ColorHighlight)
	t.SetStyles(styles)
	return t
}

func tableRows(counts []engine.NameCount) []table.Row {
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		first := "-"
		if c.First != nil {
			first = fmt.Sprintf("line %d, char %d", c.First.LineOffset, c.First.CharOffset)
		}
		rows = append(rows, table.Row{c.Name, FormatCount(c.Count), first})
	}
	return rows
}

// sortByCount orders by descending count; ties keep NameSet order.
func sortByCount(counts []engine.NameCount) []engine.NameCount {
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// State returns the current view state.
func (m ResultsModel) State() ViewState {
	return m.state
}

// Rows returns the name counts currently listed.
func (m ResultsModel) Rows() []engine.NameCount {
	return m.rows
}
