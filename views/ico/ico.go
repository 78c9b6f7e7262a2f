package ico

import (
	"fmt"
	"strings"

	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the ICO page
func Nav(width int, s pages.ICOSnapshot) string {
	var keys []string
	if s.Unclaimed > 0 {
		keys = append(keys, styles.Key("c")+" claim")
	} else {
		keys = append(keys, styles.Key("m")+" mint")
	}
	if s.IsOwner {
		keys = append(keys, styles.Key("W")+" withdraw")
	}
	keys = append(keys,
		styles.Key("r")+" refresh",
		styles.Key("l")+" logger",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the ICO page. form is the mint amount form when open.
func Render(s pages.ICOSnapshot, connected, loading bool, spinnerView string, form *huh.Form) string {
	lines := []string{
		styles.TitleStyle.Render("Welcome to Crypto Devs ICO!"),
		styles.Muted("You can claim or mint Crypto Dev tokens here"),
		"",
	}

	if !connected {
		lines = append(lines, styles.Button("w", "Connect your wallet", true))
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		fmt.Sprintf("You have minted %s Crypto Dev Tokens", styles.ValueStyle.Render(helpers.FormatToken(s.Balance, 18, "CD"))),
		fmt.Sprintf("Overall %s/%d have been minted!!!", styles.ValueStyle.Render(helpers.FormatToken(s.TotalSupply, 18, "")), pages.MaxTotalSupply),
		"",
	)

	switch {
	case loading:
		lines = append(lines, spinnerView+" Loading...")
	case form != nil:
		lines = append(lines, form.View())
	case s.Unclaimed > 0:
		lines = append(lines,
			fmt.Sprintf("%s Tokens can be claimed!", styles.ValueStyle.Render(helpers.FormatToken(s.ClaimableTokens(), 18, "CD"))),
			"",
			styles.Button("c", "Claim Tokens", true),
		)
	default:
		lines = append(lines,
			styles.Muted(fmt.Sprintf("%s per token", helpers.FormatETH(pages.TokenPrice))),
			"",
			styles.Button("m", "Mint Tokens", true),
		)
	}

	if s.IsOwner && !loading {
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(styles.CAccent).Render("Contract balance "+helpers.FormatETH(s.ContractBalance)),
			styles.Button("W", "Withdraw Coins", true),
		)
	}
	if s.Err != nil {
		lines = append(lines, "", styles.WarnStyle.Render("⚠ some values could not be read"))
	}
	return strings.Join(lines, "\n")
}
