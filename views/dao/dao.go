package dao

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/styles"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for the DAO page
func Nav(width int, tab pages.DAOTab, owner bool) string {
	keys := []string{styles.Key("Tab") + " switch tab"}
	if tab == pages.TabCreateProposal {
		keys = append(keys, styles.Key("n")+" new proposal")
	} else {
		keys = append(keys,
			styles.Key("↑/↓")+" select",
			styles.Key("y")+" vote YAY",
			styles.Key("x")+" vote NAY",
			styles.Key("e")+" execute",
		)
	}
	if owner {
		keys = append(keys, styles.Key("W")+" withdraw")
	}
	keys = append(keys,
		styles.Key("r")+" refresh",
		styles.Key("Esc")+" back",
	)
	return styles.NavStyle.Width(width).Render(strings.Join(keys, "   "))
}

// State is the page state outside the snapshot.
type State struct {
	Tab       pages.DAOTab
	Proposals []pages.Proposal
	Selected  int
	Form      *huh.Form
	Connected bool
	Loading   bool
	Spinner   string
	Now       time.Time
}

// Render renders the DAO page
func Render(s pages.DAOSnapshot, st State) string {
	lines := []string{
		styles.TitleStyle.Render("Welcome to Crypto Devs!"),
		styles.Muted("Welcome to the DAO!"),
		"",
	}
	if !st.Connected {
		lines = append(lines, styles.Button("w", "Connect your wallet", true))
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		fmt.Sprintf("Your CryptoDevs NFT Balance: %s", styles.ValueStyle.Render(count(s.NFTBalance))),
		fmt.Sprintf("Treasury Balance: %s", styles.ValueStyle.Render(helpers.FormatETH(s.Treasury))),
		fmt.Sprintf("Total Number of Proposals: %s", styles.ValueStyle.Render(count(s.NumProposals))),
		"",
		styles.Tabs([]string{pages.TabCreateProposal.String(), pages.TabViewProposals.String()}, int(st.Tab)),
		"",
	)

	switch {
	case st.Loading:
		lines = append(lines, st.Spinner+" Loading... Waiting for transaction...")
	case st.Tab == pages.TabCreateProposal:
		lines = append(lines, renderCreate(s, st))
	default:
		lines = append(lines, renderProposals(st))
	}

	if s.IsOwner && !st.Loading {
		lines = append(lines, "", styles.Button("W", "Withdraw DAO ETH", true))
	}
	if s.Err != nil {
		lines = append(lines, "", styles.WarnStyle.Render("⚠ some values could not be read"))
	}
	return strings.Join(lines, "\n")
}

func renderCreate(s pages.DAOSnapshot, st State) string {
	if !s.CanCreate() {
		return styles.WarnStyle.Render("You do not own any CryptoDevs NFTs.") + "\n" +
			styles.Muted("You cannot create or vote on proposals")
	}
	if st.Form != nil {
		return st.Form.View()
	}
	return styles.Button("n", "Create", true)
}

func renderProposals(st State) string {
	if len(st.Proposals) == 0 {
		return styles.Muted("No proposals have been created")
	}

	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		MarginBottom(1)
	focused := card.BorderForeground(styles.CAccent)

	var out []string
	for i, p := range st.Proposals {
		body := []string{
			fmt.Sprintf("Proposal ID: %d", p.ID),
			fmt.Sprintf("Fake NFT to Purchase: %s", p.NFTTokenID),
			fmt.Sprintf("Deadline: %s", p.Deadline.Local().Format(time.DateTime)),
			fmt.Sprintf("Yay Votes: %s", p.YayVotes),
			fmt.Sprintf("Nay Votes: %s", p.NayVotes),
			fmt.Sprintf("Executed?: %t", p.Executed),
		}
		switch p.State(st.Now) {
		case pages.ProposalVoting:
			body = append(body, styles.Button("y", "Vote YAY", true)+" "+styles.Button("x", "Vote NAY", true))
		case pages.ProposalExecutable:
			outcome := "NAY"
			if p.YayVotes.Cmp(p.NayVotes) > 0 {
				outcome = "YAY"
			}
			body = append(body, styles.Button("e", "Execute Proposal ("+outcome+")", true))
		default:
			body = append(body, lipgloss.NewStyle().Foreground(styles.CAccent).Render("Proposal Executed"))
		}

		style := card
		if i == st.Selected {
			style = focused
		}
		out = append(out, style.Render(strings.Join(body, "\n")))
	}
	return strings.Join(out, "\n")
}

func count(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
