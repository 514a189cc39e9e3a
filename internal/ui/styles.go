// Package ui holds terminal styling shared by the mdtoc commands.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Accent style for file paths and titles
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))

	// Muted style for hints and unchanged context
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for headers
	Bold = lipgloss.NewStyle().Bold(true)

	// Added and Removed style diff lines
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)
