package dapps

import (
	"strings"

	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the home grid
func Nav(width int, connected bool) string {
	keys := []string{
		styles.Key("←/→/Tab") + " select",
		styles.Key("Enter") + " open",
		styles.Key("y") + " copy address",
	}
	if !connected {
		keys = append(keys, styles.Key("w")+" connect wallet")
	}
	keys = append(keys,
		styles.Key("s")+" settings",
		styles.Key("l")+" logger",
		styles.Key("q")+" quit",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// dAppCardStyle returns the style for a dApp card (unfocused)
func dAppCardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Width(26).
		Height(6).
		Align(lipgloss.Center, lipgloss.Center).
		Background(styles.CPanel).
		Padding(1, 2).
		BorderStyle(lipgloss.HiddenBorder())
}

// dAppCardFocusedStyle returns the style for a focused dApp card
func dAppCardFocusedStyle() lipgloss.Style {
	return dAppCardStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("69"))
}

func renderCard(dapp config.DApp, focused bool) string {
	nameStyle := lipgloss.NewStyle().
		Foreground(styles.CText).
		Bold(true)

	addr := styles.Muted("not deployed")
	if dapp.Address != "" {
		addr = helpers.FadeString(helpers.ShortenAddr(dapp.Address), styles.FadeFrom, styles.FadeTo)
	}

	content := dapp.Icon + "\n\n" + nameStyle.Render(dapp.Name) + "\n" + addr
	if dapp.Network != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(styles.CAccent).Render("["+dapp.Network+"]")
	}

	if focused {
		return dAppCardFocusedStyle().Render(content)
	}
	return dAppCardStyle().Render(content)
}

// Columns is the number of cards per grid row.
const Columns = 3

// Render renders the page grid
func Render(dapps []config.DApp, selectedIdx int) string {
	h := styles.TitleStyle.Render("Crypto Devs")
	sub := styles.Muted("Pick a dApp to open it.")

	var rows []string
	for i := 0; i < len(dapps); i += Columns {
		var cards []string
		for j := 0; j < Columns && i+j < len(dapps); j++ {
			cards = append(cards, renderCard(dapps[i+j], i+j == selectedIdx))
			if j < Columns-1 && i+j+1 < len(dapps) {
				cards = append(cards, "  ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	return h + "\n" + sub + "\n\n" + strings.Join(rows, "\n")
}
