package tui

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Color palette.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("240")
	ColorWarning   = lipgloss.Color("214")
	ColorHighlight = lipgloss.Color("205")
)

//nolint:gochecknoglobals // Shared styles.
var (
	HeaderStyle  = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorHighlight)
)

// printer formats counts with thousands separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousands separators, e.g. 18248 -> "18,248".
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}
