package presale

import (
	"fmt"
	"strings"
	"time"

	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav lists the keys that make sense in the current phase.
func Nav(width int, phase pages.Phase, owner bool) string {
	var keys []string
	switch phase {
	case pages.PhaseNotStarted:
		if owner {
			keys = append(keys, styles.Key("s")+" start presale")
		}
	case pages.PhaseActive:
		keys = append(keys, styles.Key("p")+" presale mint")
	case pages.PhaseEnded:
		keys = append(keys, styles.Key("m")+" public mint")
	}
	if owner {
		keys = append(keys, styles.Key("z")+" pause/unpause", styles.Key("W")+" withdraw")
	}
	keys = append(keys,
		styles.Key("r")+" refresh",
		styles.Key("l")+" logger",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// Render renders the presale / mint page
func Render(s pages.PresaleSnapshot, connected, loading bool, spinnerView string, now time.Time) string {
	lines := []string{
		styles.TitleStyle.Render("Welcome to Crypto Devs!"),
		styles.Muted("It's an NFT collection for developers in Crypto."),
		"",
	}
	if s.Minted != nil && s.MaxIDs != nil {
		lines = append(lines, fmt.Sprintf("%s/%s have been minted", styles.ValueStyle.Render(s.Minted.String()), s.MaxIDs.String()), "")
	}

	phase := s.Phase(connected)
	if loading && connected {
		lines = append(lines, spinnerView+" Loading...")
		return strings.Join(lines, "\n")
	}

	switch phase {
	case pages.PhaseDisconnected:
		lines = append(lines, styles.Button("w", "Connect your wallet", true))
	case pages.PhaseConnected:
		lines = append(lines, spinnerView+" Loading...")
	case pages.PhaseNotStarted:
		if s.IsOwner {
			lines = append(lines, styles.Button("s", "Start presale!", true))
		} else {
			lines = append(lines, styles.Muted("Presale hasn't started!"))
		}
	case pages.PhaseActive:
		left := s.EndsAt.Sub(now).Round(time.Second)
		lines = append(lines,
			"Presale has started!!! If your address is whitelisted, Mint a Crypto Dev 🥳",
			styles.Muted(fmt.Sprintf("ends in %s", left)),
			"",
			styles.Button("p", "Presale Mint 🚀", !s.Paused),
		)
	case pages.PhaseEnded:
		lines = append(lines, styles.Button("m", "Public Mint 🚀", !s.Paused))
	}

	if s.Paused {
		lines = append(lines, "", styles.WarnStyle.Render("⏸ minting is paused"))
	}
	lines = append(lines, "", styles.Muted("price "+helpers.FormatETH(pages.MintPrice)))

	if s.IsOwner {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.CAccent).Render("You own this contract."))
	}
	if s.Err != nil {
		lines = append(lines, "", styles.WarnStyle.Render("⚠ some values could not be read"))
	}
	return strings.Join(lines, "\n")
}
