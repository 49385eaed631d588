package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	PromptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	KeyStyle      = lipgloss.NewStyle()
	OperatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	ActionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ActiveStyle   = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.Color("2"))
	DisplayStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Align(lipgloss.Right)
)
