package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/JaimeStill/tlpmark/pkg/tlp"
)

var (
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F5F"))

	blockingStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF5F5F"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A"))
)

// bannerStyle renders text the way the workbook banner shows it.
func bannerStyle(c tlp.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.String()))
}
