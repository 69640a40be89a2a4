package main

import "github.com/charmbracelet/lipgloss"

var (
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	labelStyle = lipgloss.NewStyle().
			Faint(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB000"))

	contentStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(highlight).
			PaddingLeft(1)
)
