package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)

	// FieldStyle for the currently selected candle field.
	FieldStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// FormatPrice renders a price the way the serializer does: bare when
// integral, one decimal otherwise.
func FormatPrice(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', 1, 64)
}
