package tui

import "github.com/charmbracelet/lipgloss"

const (
	sidebarWidth = 24
	listWidth    = 48
)

var (
	accent = lipgloss.Color("33")
	muted  = lipgloss.Color("243")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true)

	listStyle = lipgloss.NewStyle().
			Width(listWidth).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true)

	viewerStyle = lipgloss.NewStyle().
			Padding(0, 2)

	activeItemStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(accent)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(accent).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	unreadStyle = lipgloss.NewStyle().
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(10)
)
