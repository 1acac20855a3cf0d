package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/namesearch/internal/engine"
)

func sampleResult() engine.AggregatedResult {
	names := engine.MustNameSet("James", "John", "Robert")
	return engine.AggregatedResult{
		Names: names,
		Positions: map[string][]engine.Occurrence{
			"James":  {{LineOffset: 0, CharOffset: 0}},
			"John":   {{LineOffset: 0, CharOffset: 15}, {LineOffset: 2, CharOffset: 14}},
			"Robert": {},
		},
		MergedBatches: 2,
		TotalBatches:  2,
	}
}

func update(t *testing.T, m ResultsModel, msg tea.Msg) (ResultsModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(ResultsModel)
	require.True(t, ok)
	return rm, cmd
}

func TestNewResultsModel(t *testing.T) {
	m, cmd := NewResultsModel(context.Background())
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Reading corpus")
}

func TestResultsModel_Progress(t *testing.T) {
	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, BatchProgressMsg{Completed: 3, Failed: 1, Total: 8})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "Scanning: 4/8 batches (50%)")
}

func TestResultsModel_ResultsLoaded(t *testing.T) {
	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, ResultsLoadedMsg{Result: sampleResult()})

	require.Equal(t, ViewStateList, m.State())
	rows := m.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "John", rows[0].Name)
	assert.Equal(t, "James", rows[1].Name)
	assert.Equal(t, "Robert", rows[2].Name)

	view := m.View()
	assert.Contains(t, view, "NAME SEARCH RESULTS")
	assert.Contains(t, view, "line 0, char 15")
}

func TestResultsModel_ProgressAfterResultsIgnored(t *testing.T) {
	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, ResultsLoadedMsg{Result: sampleResult()})
	before := m.View()

	m, cmd := update(t, m, BatchProgressMsg{Completed: 1, Total: 8})

	assert.Nil(t, cmd)
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, before, m.View())
}

func TestResultsModel_PartialResult(t *testing.T) {
	res := sampleResult()
	res.Incomplete = true
	res.Reason = "scan deadline exceeded"

	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, ResultsLoadedMsg{Result: res, Err: engine.ErrTimeout})

	assert.Equal(t, ViewStateList, m.State())
	assert.Contains(t, m.View(), "Incomplete: scan deadline exceeded")
}

func TestResultsModel_ErrorWithoutResult(t *testing.T) {
	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, ResultsLoadedMsg{Err: errors.New("source unavailable")})

	assert.Equal(t, ViewStateError, m.State())
	assert.Contains(t, m.View(), "source unavailable")
}

func TestResultsModel_Filter(t *testing.T) {
	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, ResultsLoadedMsg{Result: sampleResult()})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	require.True(t, m.showFilter)

	for _, r := range "rob" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.showFilter)
	require.Len(t, m.Rows(), 1)
	assert.Equal(t, "Robert", m.Rows()[0].Name)
	assert.Contains(t, m.View(), "Filtered: 1/3")
}

func TestResultsModel_QuitKeys(t *testing.T) {
	tests := []struct {
		name   string
		loaded bool
		key    tea.KeyMsg
	}{
		{name: "q while loading", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{name: "q in list", loaded: true, key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}},
		{name: "ctrl+c in list", loaded: true, key: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := NewResultsModel(context.Background())
			if tt.loaded {
				m, _ = update(t, m, ResultsLoadedMsg{Result: sampleResult()})
			}
			m, cmd := update(t, m, tt.key)
			assert.Equal(t, ViewStateQuitting, m.State())
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestResultsModel_WindowResize(t *testing.T) {
	m, _ := NewResultsModel(context.Background())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "18,248", FormatCount(18248))
	assert.Equal(t, "0", FormatCount(0))
}
