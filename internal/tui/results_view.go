package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current screen (Bubble Tea interface).
func (m ResultsModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return WarningStyle.Render(fmt.Sprintf("Error: %v", m.runErr)) + "\n" +
			SubtleStyle.Render("Press 'q' to quit") + "\n"
	case ViewStateLoading:
		return m.renderLoadingView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m ResultsModel) renderLoadingView() string {
	status := "Reading corpus..."
	if m.total > 0 {
		status = fmt.Sprintf("Scanning: %d/%d batches (%d%%)",
			m.completed+m.failed, m.total, (m.completed+m.failed)*100/m.total) //nolint:mnd // Percentage.
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.loadingState.View(), " ", LabelStyle.Render(status)) + "\n"
}

func (m ResultsModel) renderListView() string {
	sections := []string{
		HeaderStyle.Render("NAME SEARCH RESULTS"),
		m.renderSummary(),
		m.table.View(),
	}

	if m.result.Incomplete {
		sections = append(sections, WarningStyle.Render("Incomplete: "+m.result.Reason))
	}
	if n := len(m.result.Warnings); n > 0 {
		sections = append(sections, WarningStyle.Render(fmt.Sprintf("%d batch(es) failed to scan", n)))
	}

	filterStatus := ""
	if m.textInput.Value() != "" {
		filterStatus = fmt.Sprintf(" | Filtered: %d/%d", len(m.rows), len(m.allRows))
	}
	sections = append(sections, SubtleStyle.Render("Press '/' to filter, 'q' to quit"+filterStatus))

	if m.showFilter {
		sections = append(sections, LabelStyle.Render("Filter: ")+m.textInput.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ResultsModel) renderSummary() string {
	return LabelStyle.Render("Occurrences: ") + ValueStyle.Render(FormatCount(m.result.Total())) +
		LabelStyle.Render("  Batches: ") +
		ValueStyle.Render(fmt.Sprintf("%d/%d", m.result.MergedBatches, m.result.TotalBatches))
}
