package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var asciiLogo = []string{
	`██╗    ██╗  ██╗███╗   ██╗ ██████╗ ██╗    ██╗ █████╗ ██╗     ██╗     `,
	`██║    ██║ ██╔╝████╗  ██║██╔═══██╗██║    ██║██╔══██╗██║     ██║     `,
	`██║    █████╔╝ ██╔██╗ ██║██║   ██║██║ █╗ ██║███████║██║     ██║     `,
	`██║    ██╔═██╗ ██║╚██╗██║██║   ██║██║███╗██║██╔══██║██║     ██║     `,
	`██║    ██║  ██╗██║ ╚████║╚██████╔╝╚███╔███╔╝██║  ██║███████╗███████╗`,
	`╚═╝    ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚══╝╚══╝ ╚═╝  ╚═╝╚══════╝╚══════╝`,
}

func renderHomeScreen(width, height, recordCount int, updateVersion string) string {
	logoStyle := lipgloss.NewStyle().Foreground(colorAccent)
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(colorSecondary)
	dimStyle := lipgloss.NewStyle().Foreground(colorDim)

	var lines []string

	// ASCII logo
	for _, l := range asciiLogo {
		lines = append(lines, logoStyle.Render(l))
	}
	lines = append(lines, "")
	lines = append(lines, dimStyle.Render(fmt.Sprintf("%d answers loaded", recordCount)))
	lines = append(lines, "")

	// Menu items
	lines = append(lines, "          "+keyStyle.Render("[enter]")+"  "+labelStyle.Render("Start asking"))
	lines = append(lines, "          "+keyStyle.Render("[r]")+"      "+labelStyle.Render("Refresh the knowledge base"))
	lines = append(lines, "")
	lines = append(lines, "          "+keyStyle.Render("[q]")+"      "+labelStyle.Render("Quit"))

	// Update notification
	if updateVersion != "" {
		lines = append(lines, "")
		lines = append(lines, logoStyle.Render("Update available: v"+updateVersion))
	}

	content := strings.Join(lines, "\n")
	contentHeight := strings.Count(content, "\n") + 1

	topPad := (height - contentHeight) / 3
	if topPad < 0 {
		topPad = 0
	}

	// Center horizontally
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Repeat("\n", topPad)+content)
}
