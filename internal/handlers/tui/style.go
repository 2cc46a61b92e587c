package tui

import (
	"github.com/gabapcia/addresswatch/internal/watchpanel"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorText    lipgloss.Color = "#cdd6f4"
	colorSubtle  lipgloss.Color = "#7f849c"
	colorBorder  lipgloss.Color = "#45475a"
	colorAccent  lipgloss.Color = "#f5c2e7"
	colorCredit  lipgloss.Color = "#a6e3a1"
	colorDebit   lipgloss.Color = "#f38ba8"
	colorConfirm lipgloss.Color = "#89b4fa"
	colorWarning lipgloss.Color = "#f9e2af"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	helpStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle  = lipgloss.NewStyle().Foreground(colorDebit)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Foreground(colorText).
			Padding(1, 3)
)

// flashStyle is the row style for a highlighted balance change.
func flashStyle(flash watchpanel.Flash) lipgloss.Style {
	switch flash {
	case watchpanel.FlashCredit:
		return cellStyle.Foreground(colorCredit).Bold(true)
	case watchpanel.FlashDebit:
		return cellStyle.Foreground(colorDebit).Bold(true)
	case watchpanel.FlashConfirmation:
		return cellStyle.Foreground(colorConfirm).Bold(true)
	default:
		return cellStyle
	}
}
