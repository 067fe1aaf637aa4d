package tui

import "fmt"

// StatusBar renders the top status bar.
func StatusBar(title string, marks int, width int) string {
	if title == "" {
		title = "no page"
	}
	text := fmt.Sprintf("  vocabmark - %s - %d marked  ", title, marks)
	return statusBarStyle.Width(width).Render(text)
}
