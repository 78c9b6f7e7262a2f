package details

import (
	"fmt"
	"math/big"
	"strings"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// Session is what the session panel shows about the current wallet.
type Session struct {
	chain.Session
	CanSign  bool
	Balance  *big.Int
	Explorer string
	LastTx   string
	Copied   string
}

// Render renders the session panel shown next to the home grid
func Render(s Session, connecting bool, spinnerView string) string {
	h := styles.TitleStyle.Render("Session")

	if connecting {
		return h + "\n\n" + spinnerView + " connecting…"
	}
	if !s.Connected {
		return h + "\n\n" + lipgloss.NewStyle().Foreground(styles.CWarn).Render("Wallet not connected") +
			"\n\n" + styles.Muted("Press ") + styles.Key("w") + styles.Muted(" to connect.")
	}

	lines := []string{h, ""}

	if s.Address == (common.Address{}) {
		lines = append(lines, styles.Muted("read-only session (no signing key)"))
	} else {
		addr := s.Address.Hex()
		url := fmt.Sprintf("%s/address/%s", strings.TrimRight(s.Explorer, "/"), addr)
		addrStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
		// OSC 8 hyperlink: \x1b]8;;URL\x1b\\TEXT\x1b]8;;\x1b\\
		link := fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, addrStyle.Render(helpers.ShortenAddr(addr)))
		lines = append(lines, "Account  "+link)
	}

	lines = append(lines,
		fmt.Sprintf("Network  %s", styles.ValueStyle.Render(fmt.Sprintf("%s (%d)", chain.NetworkName(s.ChainID), s.ChainID))),
		fmt.Sprintf("Balance  %s", styles.ValueStyle.Render(helpers.FormatETH(s.Balance))),
	)
	if !s.CanSign {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(styles.CWarn).Render("⚠ transactions disabled"))
	}

	if s.LastTx != "" {
		lines = append(lines, "", styles.Muted("Last transaction"), helpers.FadeString(helpers.ShortenAddr(s.LastTx), styles.FadeFrom, styles.FadeTo))
		hint := styles.Key("c") + styles.Muted(" copy   ") + styles.Key("t") + styles.Muted(" QR")
		if s.Copied != "" {
			hint += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(s.Copied)
		}
		lines = append(lines, hint)
	}

	return strings.Join(lines, "\n")
}
