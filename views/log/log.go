package log

import (
	"fmt"

	"cryptodevs-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Height is the number of log lines shown for a terminal of the given height:
// at most a third of the screen or 15 lines, at least 5.
func Height(termHeight int) int {
	// header (3 lines), nav (1 line), title + borders (4 lines), margins (2 lines)
	const reserved = 10
	available := max(5, termHeight-reserved)
	return min(available, max(5, min(termHeight/3, 15)))
}

// Render renders the log panel. vp must already be sized with Height.
func Render(width int, logReady bool, logSpinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(max(0, width-2)).
		Height(vp.Height + 2)

	if !logReady {
		return border.Render(title + "\n\n" + "initializing...\n" + logSpinnerView)
	}

	if n := vp.TotalLineCount(); n > vp.Height {
		title += styles.Muted(fmt.Sprintf(" [%d%%] %d lines", int(vp.ScrollPercent()*100), n))
	}

	return border.Render(title + "\n\n" + vp.View())
}
