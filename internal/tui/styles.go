package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	questionLabelStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	questionStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	answerLabelStyle = lipgloss.NewStyle().
				Foreground(colorGreen).
				Bold(true)

	answerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 3)
)
