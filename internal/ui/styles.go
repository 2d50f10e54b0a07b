package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
const (
	ColorHeader = "252"
	ColorID     = "214"
	ColorName   = "81"
	ColorOK     = "82"
	ColorWarn   = "214"
	ColorFail   = "203"
	ColorMuted  = "240"
	ColorHint   = "245"
)

// Shared styles
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorID))
	NameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	OKStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOK))
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarn))
	FailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorFail))
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// PadRight pads a string to the specified display width using runewidth
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// Truncate shortens a string with ellipsis
func Truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
