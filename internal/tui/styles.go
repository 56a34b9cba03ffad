package tui

import "github.com/charmbracelet/lipgloss"

// Pane chrome. Table content is styled by display.Styles.
var (
	FocusedBorderColor = lipgloss.Color("#04B575")
	BlurredBorderColor = lipgloss.Color("#626262")

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	InputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	SidebarTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#7D56F4")).
				Padding(0, 1).
				Bold(true)
)
