package settings

import (
	"fmt"
	"strings"

	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for settings view
func Nav(width int, settingsMode string) string {
	var left string
	if settingsMode == "add" || settingsMode == "edit" || settingsMode == "contracts" {
		left = strings.Join([]string{
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("e") + " edit",
			styles.Key("d") + " delete",
			styles.Key("o") + " contracts",
			styles.Key("l") + " debug log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the RPC endpoints and the contract address book
func Render(cfg config.Config, selectedIdx int) string {
	lines := []string{styles.TitleStyle.Render("RPC Settings"), ""}

	if len(cfg.RPCURLs) == 0 {
		lines = append(lines, styles.Muted("No RPC URLs configured."))
		lines = append(lines, "")
		lines = append(lines, styles.Muted("Press ")+styles.Key("a")+styles.Muted(" to add your first RPC URL."))
	}

	for i, rpc := range cfg.RPCURLs {
		marker := styles.Muted("○ ")
		if rpc.Active {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
		}

		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		urlStyle := styles.MutedStyle

		if i == selectedIdx {
			nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
			urlStyle = urlStyle.Background(styles.CPanel)
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
		}

		lines = append(lines, marker+nameStyle.Render(rpc.Name))
		lines = append(lines, "  "+urlStyle.Render(rpc.URL))
		lines = append(lines, "")
	}

	lines = append(lines, styles.TitleStyle.Render("Contracts"), "")
	lines = append(lines, fmt.Sprintf("%-10s %d", "Chain ID", cfg.ExpectedChainID()))
	c := cfg.Contracts
	for _, row := range []struct{ name, addr string }{
		{"Whitelist", c.Whitelist},
		{"NFT", c.NFT},
		{"Token", c.Token},
		{"Exchange", c.Exchange},
		{"DAO", c.DAO},
	} {
		addr := styles.Muted("not deployed")
		if row.addr != "" {
			addr = helpers.FadeString(row.addr, styles.FadeFrom, styles.FadeTo)
		}
		lines = append(lines, fmt.Sprintf("%-10s %s", row.name, addr))
	}
	if cfg.Keystore != "" {
		lines = append(lines, "", fmt.Sprintf("%-10s %s", "Keystore", styles.Muted(cfg.Keystore)))
	}

	return strings.Join(lines, "\n")
}
