package exchange

import (
	"fmt"
	"math/big"
	"strings"

	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the exchange page
func Nav(width int, tab pages.ExchangeTab) string {
	keys := []string{styles.Key("Tab") + " switch tab"}
	if tab == pages.TabLiquidity {
		keys = append(keys,
			styles.Key("a")+" add liquidity",
			styles.Key("x")+" remove liquidity",
		)
	} else {
		keys = append(keys,
			styles.Key("a")+" amount",
			styles.Key("d")+" flip direction",
			styles.Key("Enter")+" swap",
		)
	}
	keys = append(keys,
		styles.Key("r")+" refresh",
		styles.Key("l")+" logger",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// State is the page state outside the snapshot.
type State struct {
	Tab        pages.ExchangeTab
	Direction  pages.SwapDirection
	Quote      *helpers.SwapQuote
	QuoteError string
	Estimating bool
	// Preview of an add/remove form being filled in.
	AddEther *big.Int
	RemoveLP *big.Int
	// SwapAmount is the amount typed into the swap form.
	SwapAmount *big.Int
	Form       *huh.Form
	Connected  bool
	Loading    bool
	Spinner    string
	Width      int
}

var boxStyle = lipgloss.NewStyle().
	Padding(0, 2).
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(styles.CBorder)

// Render renders the exchange page
func Render(s pages.ExchangeSnapshot, st State) string {
	width := min(80, max(40, st.Width-4))

	lines := []string{
		styles.TitleStyle.Render("Welcome to Crypto Devs Exchange!"),
		styles.Muted("Exchange Ethereum <> Crypto Dev Tokens"),
		"",
	}
	if !st.Connected {
		lines = append(lines, styles.Button("w", "Connect your wallet", true))
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		"You have:",
		"  "+styles.ValueStyle.Render(helpers.FormatToken(s.CDBalance, 18, "Crypto Dev Tokens")),
		"  "+styles.ValueStyle.Render(helpers.FormatETH(s.EtherBalance)),
		"  "+styles.ValueStyle.Render(helpers.FormatToken(s.LPBalance, 18, "Crypto Dev LP tokens")),
		"",
		styles.Tabs([]string{pages.TabLiquidity.String(), pages.TabSwap.String()}, int(st.Tab)),
		"",
	)

	switch {
	case st.Loading:
		lines = append(lines, st.Spinner+" Loading...")
	case st.Tab == pages.TabLiquidity:
		lines = append(lines, renderLiquidity(s, st, width))
	default:
		lines = append(lines, renderSwap(s, st, width))
	}

	if s.Err != nil {
		lines = append(lines, "", styles.WarnStyle.Render("⚠ some values could not be read"))
	}
	return strings.Join(lines, "\n")
}

func reserveEmpty(s pages.ExchangeSnapshot) bool {
	return s.CDReserve == nil || s.CDReserve.Sign() == 0
}

func renderLiquidity(s pages.ExchangeSnapshot, st State, width int) string {
	pool := styles.Muted(fmt.Sprintf("Pool: %s / %s", helpers.FormatETH(s.EtherReserve), helpers.FormatToken(s.CDReserve, 18, "CD")))

	var add []string
	if reserveEmpty(s) {
		add = append(add, styles.Muted("The pool is empty: you set the initial ratio with both amounts."))
	} else if st.AddEther != nil {
		need := pages.CalculateCD(st.AddEther, s.EtherReserve, s.CDReserve)
		add = append(add, fmt.Sprintf("You will need %s", styles.ValueStyle.Render(helpers.FormatToken(need, 18, "Crypto Dev Tokens"))))
	}
	add = append(add, styles.Button("a", "Add", true))

	var remove []string
	if st.RemoveLP != nil {
		eth, cd := pages.TokensAfterRemove(st.RemoveLP, s.EtherReserve, s.CDReserve, s.LPTotalSupply)
		remove = append(remove, fmt.Sprintf("You will get %s and %s",
			styles.ValueStyle.Render(helpers.FormatToken(cd, 18, "Crypto Dev Tokens")),
			styles.ValueStyle.Render(helpers.FormatETH(eth))))
	}
	remove = append(remove, styles.Button("x", "Remove", true))

	parts := []string{pool, ""}
	if st.Form != nil {
		parts = append(parts, st.Form.View(), "")
	}
	parts = append(parts,
		boxStyle.Width(width).Render(strings.Join(add, "\n")),
		boxStyle.Width(width).Render(strings.Join(remove, "\n")),
	)
	return strings.Join(parts, "\n")
}

func renderSwap(s pages.ExchangeSnapshot, st State, width int) string {
	inSym, outSym := "ETH", "CD"
	inBal, outBal := s.EtherBalance, s.CDBalance
	if st.Direction == pages.CDToEth {
		inSym, outSym = outSym, inSym
		inBal, outBal = outBal, inBal
	}

	amount := styles.Muted("0.0")
	draft := st.SwapAmount != nil && st.SwapAmount.Sign() > 0
	switch {
	case st.Quote != nil:
		amount = styles.ValueStyle.Render(helpers.FormatToken(st.Quote.AmountIn, 18, ""))
	case draft:
		amount = styles.ValueStyle.Render(helpers.FormatToken(st.SwapAmount, 18, ""))
	}
	from := boxStyle.Width(width).Render(styles.Muted("From") + "\n" +
		lipgloss.NewStyle().Bold(true).Render(inSym) + "   " + styles.Muted("Balance: "+helpers.FormatToken(inBal, 18, "")) + "\n" + amount)

	out := styles.Muted("0.0")
	switch {
	case st.Estimating:
		out = styles.Muted("Estimating...")
	case st.Quote != nil:
		out = styles.ValueStyle.Render(helpers.FormatToken(st.Quote.AmountOut, 18, ""))
	case draft:
		est := pages.EstimateSwap(s, st.SwapAmount, st.Direction)
		out = styles.Muted("≈ " + helpers.FormatToken(est, 18, "") + " (estimate)")
	}
	to := boxStyle.Width(width).Render(styles.Muted("To") + "\n" +
		lipgloss.NewStyle().Bold(true).Render(outSym) + "   " + styles.Muted("Balance: "+helpers.FormatToken(outBal, 18, "")) + "\n" + out)

	arrow := lipgloss.NewStyle().Foreground(styles.CAccent).Width(width).Align(lipgloss.Center).Render("⬇")

	parts := []string{}
	if st.Form != nil {
		parts = append(parts, st.Form.View(), "")
	}
	parts = append(parts, from, arrow, to, "")

	if st.QuoteError != "" {
		parts = append(parts, styles.WarnStyle.Render(st.QuoteError))
	}
	if q := st.Quote; q != nil {
		parts = append(parts, fmt.Sprintf("You will get %s", styles.ValueStyle.Render(helpers.FormatToken(q.AmountOut, 18, outSym))))
		parts = append(parts, styles.Muted(fmt.Sprintf("price %.6f %s/%s", q.EffectivePrice, outSym, inSym)))
		switch {
		case q.PriceImpact > 1.0:
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Render(fmt.Sprintf("⚠ High price impact: %.2f%%", q.PriceImpact)))
		case q.PriceImpact > 0.5:
			parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C00")).Render(fmt.Sprintf("⚠ Moderate price impact: %.2f%%", q.PriceImpact)))
		}
	}
	parts = append(parts, "", styles.Button("Enter", "Swap", st.Quote != nil))

	return strings.Join(parts, "\n")
}
