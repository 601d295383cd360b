package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(recordCount int, lastRefresh time.Time, width int, refreshing bool) string {
	left := fmt.Sprintf(" %d answers", recordCount)
	if !lastRefresh.IsZero() {
		left += " · synced " + relativeTime(lastRefresh)
	}
	if refreshing {
		left += " (refreshing...)"
	}

	right := " ctrl+r refresh  f1 help  esc home "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
