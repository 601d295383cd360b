package tui

import "strings"

// renderTranscript lays out the question/reply exchanges bottom-aligned,
// newest last. scroll counts lines back from the bottom.
func renderTranscript(exchanges []exchange, greeting string, width, height, scroll int) string {
	contentWidth := width - 4
	if contentWidth < 10 {
		contentWidth = 10
	}

	var lines []string
	if len(exchanges) == 0 {
		lines = append(lines, "", "  "+answerLabelStyle.Render("bot")+" "+answerStyle.Render(greeting))
	}
	for _, e := range exchanges {
		lines = append(lines, "")
		for i, l := range wrapText(e.question, contentWidth) {
			if i == 0 {
				lines = append(lines, "  "+questionLabelStyle.Render("you")+" "+questionStyle.Render(l))
			} else {
				lines = append(lines, "      "+questionStyle.Render(l))
			}
		}
		reply := e.reply
		if reply == "" {
			reply = "(empty answer)"
		}
		for i, l := range wrapText(reply, contentWidth) {
			if i == 0 {
				lines = append(lines, "  "+answerLabelStyle.Render("bot")+" "+answerStyle.Render(l))
			} else {
				lines = append(lines, "      "+answerStyle.Render(l))
			}
		}
		if e.warn != nil {
			lines = append(lines, "      "+warnStyle.Render("(refresh failed: serving what I have)"))
		}
	}

	// Clamp scroll and take the visible window from the bottom.
	maxScroll := len(lines) - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	if scroll > maxScroll {
		scroll = maxScroll
	}
	end := len(lines) - scroll
	start := end - height
	if start < 0 {
		start = 0
	}
	visible := lines[start:end]

	// Pad to fill height from the top.
	for len(visible) < height {
		visible = append([]string{""}, visible...)
	}
	return strings.Join(visible, "\n")
}

// wrapText word-wraps s to the given width. Words longer than the width are
// hard-broken.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	var line []rune

	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0]
		}
	}

	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			flush()
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= width:
			line = append(line, ' ')
			line = append(line, w...)
		default:
			flush()
			line = append(line, w...)
		}
	}
	flush()

	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
