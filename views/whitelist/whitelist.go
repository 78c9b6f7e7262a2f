package whitelist

import (
	"fmt"
	"strings"

	"cryptodevs-tui/pages"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the whitelist page
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("j") + " join",
		styles.Key("r") + " refresh",
		styles.Key("l") + " logger",
		styles.Key("Esc") + " back",
	}, "   ")
	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the whitelist page
func Render(s pages.WhitelistSnapshot, connected, loading bool, spinnerView string) string {
	lines := []string{
		styles.TitleStyle.Render("Welcome to Crypto Devs!"),
		styles.Muted("It's an NFT collection for developers in Crypto."),
		"",
		fmt.Sprintf("%s have already joined the Whitelist", styles.ValueStyle.Render(fmt.Sprint(s.NumWhitelisted))),
	}
	if s.MaxWhitelisted > 0 {
		lines = append(lines, styles.Muted(fmt.Sprintf("%d spots in total", s.MaxWhitelisted)))
	}
	lines = append(lines, "")

	switch {
	case !connected:
		lines = append(lines, styles.Button("w", "Connect your wallet", true))
	case loading:
		lines = append(lines, spinnerView+" Loading...")
	case s.Joined:
		lines = append(lines, lipgloss.NewStyle().Foreground(styles.CAccent).Render("Thanks for joining the Whitelist!"))
	case s.Full():
		lines = append(lines, styles.WarnStyle.Render("The whitelist is full."))
	default:
		lines = append(lines, styles.Button("j", "Join the Whitelist", true))
	}

	if s.Err != nil {
		lines = append(lines, "", styles.WarnStyle.Render("⚠ some values could not be read"))
	}
	return strings.Join(lines, "\n")
}
