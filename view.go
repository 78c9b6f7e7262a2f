package main

import (
	"fmt"
	"strings"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/rpc"
	"cryptodevs-tui/styles"
	"cryptodevs-tui/views/dao"
	"cryptodevs-tui/views/dapps"
	"cryptodevs-tui/views/details"
	"cryptodevs-tui/views/exchange"
	"cryptodevs-tui/views/home"
	"cryptodevs-tui/views/ico"
	logview "cryptodevs-tui/views/log"
	"cryptodevs-tui/views/presale"
	"cryptodevs-tui/views/settings"
	"cryptodevs-tui/views/whitelist"

	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- VIEW --------------------

// renderDialog centers a question with Yes/No buttons on screen
func (m *model) renderDialog(question string, yesSelected bool) string {
	var (
		buttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFF7DB")).
				Background(lipgloss.Color("#888B7E")).
				Padding(0, 3).
				MarginTop(1)

		activeButtonStyle = buttonStyle.
					Foreground(lipgloss.Color("#FFF7DB")).
					Background(styles.CPink).
					MarginRight(2).
					Underline(true)
	)
	msg := helpers.FadeString(question, styles.FadeFrom, styles.FadeTo)
	q := lipgloss.NewStyle().Width(50).Align(lipgloss.Center).Render(msg)

	var okButton, cancelButton string
	if yesSelected {
		okButton = activeButtonStyle.Render("Yes")
		cancelButton = buttonStyle.Render("No")
	} else {
		okButton = buttonStyle.MarginRight(2).Render("Yes")
		cancelButton = activeButtonStyle.MarginRight(0).Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, okButton, cancelButton)
	ui := lipgloss.JoinVertical(lipgloss.Center, q, buttons)

	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialogBoxStyle.Render(ui))
}

func (m *model) renderRPCDeleteDialog() string {
	return m.renderDialog("Are you sure you want to delete the RPC endpoint "+m.deleteRPCDialogName+"?", m.deleteRPCDialogYesSelected)
}

// renderAlert is the blocking error box; any of Enter/Esc closes it
func (m *model) renderAlert() string {
	title := lipgloss.NewStyle().Foreground(styles.CError).Bold(true).Render(m.alertTitle)
	body := lipgloss.NewStyle().Width(min(60, max(20, m.w-12))).Render(m.alert)
	ui := title + "\n\n" + body + "\n\n" + styles.Muted("Press ") + styles.Key("Enter") + styles.Muted(" to close")
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialogBoxStyle.Render(ui))
}

// renderNetworkNotice blocks every page until the wallet is on the right chain
func (m *model) renderNetworkNotice() string {
	want := m.networkErr.Want
	title := lipgloss.NewStyle().Foreground(styles.CWarn).Bold(true).Render("Wrong network")
	body := fmt.Sprintf("Change the network to %s (chain id %d).\nThe node reports %s (chain id %d).",
		chain.NetworkName(want), want, chain.NetworkName(m.networkErr.Got), m.networkErr.Got)
	ui := title + "\n\n" + body + "\n\n" + styles.Key("r") + styles.Muted(" retry   ") + styles.Key("q") + styles.Muted(" quit")
	return lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, dialogBoxStyle.Render(ui))
}

// renderTxPanel shows the last confirmed transaction as an explorer QR code
func (m *model) renderTxPanel() string {
	url := rpc.ExplorerTxURL(m.cfg.Explorer, m.lastTx)
	content := styles.TitleStyle.Render("Last Transaction") + "\n\n" +
		rpc.GenerateQRCode(url) + "\n\n" +
		helpers.FadeString(m.lastTx.Hex(), styles.FadeFrom, styles.FadeTo) + "\n" +
		styles.Muted(url) + "\n\n" +
		styles.Key("c") + styles.Muted(" copy hash   ") + styles.Key("Esc") + styles.Muted(" close")
	if m.copiedMsg != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render(m.copiedMsg)
	}
	centered := lipgloss.NewStyle().Width(max(0, m.w-8)).Align(lipgloss.Center).Render(content)
	return appStyle.Render(lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, panelStyle.Width(max(0, m.w-4)).Render(centered)))
}

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8) // Account for panel padding

	var addrDisplay string
	switch {
	case m.conn != nil && m.conn.CanSign():
		addrDisplay = lipgloss.NewStyle().
			Foreground(styles.CAccent2).
			Bold(true).
			Render("Account: " + helpers.FadeString(helpers.ShortenAddr(m.conn.Address().Hex()), styles.FadeFrom, styles.FadeTo))
	case m.conn != nil:
		addrDisplay = lipgloss.NewStyle().Foreground(styles.CMuted).Render("Account: read-only")
	default:
		addrDisplay = lipgloss.NewStyle().Foreground(styles.CMuted).Render("Account: not connected")
	}

	var statusIcon, statusText string
	statusColor := lipgloss.Color("#c01c28")
	switch {
	case m.rpcURL == "":
		statusIcon, statusText = "○", "No RPC"
	case m.rpcConnecting:
		statusIcon, statusText = "○", "Connecting..."
	case !m.rpcConnected:
		statusIcon, statusText = "○", "Connection Failed"
	case m.networkErr != nil:
		statusIcon, statusText = "●", "Wrong network"
		statusColor = styles.CWarn
	default:
		statusIcon = "●"
		statusColor = styles.CAccent
		for _, r := range m.cfg.RPCURLs {
			if r.Active && r.URL == m.rpcURL {
				statusText = r.Name
				break
			}
		}
		if statusText == "" {
			statusText = "Connected"
		}
		if m.conn != nil {
			statusText += " · " + chain.NetworkName(m.conn.Session().ChainID)
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("crypto devs", styles.TitleFrom, styles.TitleTo))

	addrWidth := lipgloss.Width(addrDisplay)
	rpcWidth := lipgloss.Width(rpcDisplay)
	titleWidth := lipgloss.Width(titleText)
	totalOtherWidth := addrWidth + rpcWidth + titleWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		// Not enough space, stack vertically
		headerLine = addrDisplay + "\n" + titleText + "\n" + rpcDisplay
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding
		headerLine = addrDisplay + strings.Repeat(" ", max(1, leftPadding)) + titleText + strings.Repeat(" ", max(1, rightPadding)) + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.CBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

// sessionPanel feeds the details view from the live connection
func (m *model) sessionPanel() string {
	s := details.Session{Balance: m.balance, Explorer: m.cfg.Explorer, Copied: m.copiedMsg}
	if s.Explorer == "" {
		s.Explorer = rpc.DefaultExplorer
	}
	if m.conn != nil {
		s.Session = m.conn.Session()
		s.CanSign = m.conn.CanSign()
	}
	if m.lastTx != (common.Hash{}) {
		s.LastTx = m.lastTx.Hex()
	}
	return details.Render(s, m.connecting, m.spin.View())
}

func formNav(width int) string {
	return styles.NavStyle.Width(width).Render(styles.Key("Enter") + " submit   " + styles.Key("Tab") + " next field   " + styles.Key("Esc") + " cancel")
}

// renderPage returns the active page body and its navigation bar
func (m *model) renderPage() (string, string) {
	width := max(0, m.w-2)
	connected := m.connected()
	spin := m.spin.View()

	if m.formKind == formUnlock || (m.connecting && m.activePage != config.PageHome) {
		return panelStyle.Width(width).Render(home.Render(m.form, m.connecting, spin)), home.Nav(width)
	}

	var body, nav string
	switch m.activePage {
	case config.PageHome:
		grid := dapps.Render(m.dapps, m.selectedDappIdx)
		side := panelStyle.Width(max(30, width/3)).Render(m.sessionPanel())
		if lipgloss.Width(grid)+lipgloss.Width(side) > width {
			body = lipgloss.JoinVertical(lipgloss.Left, grid, side)
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, grid, side)
		}
		return body, dapps.Nav(width, connected)

	case config.PageWhitelist:
		body = whitelist.Render(m.whitelist, connected, m.loading, spin)
		nav = whitelist.Nav(width)

	case config.PagePresale:
		body = presale.Render(m.presale, connected, m.loading, spin, m.clock.Now())
		nav = presale.Nav(width, m.presale.Phase(connected), m.presale.IsOwner)

	case config.PageICO:
		body = ico.Render(m.ico, connected, m.loading, spin, m.form)
		nav = ico.Nav(width, m.ico)

	case config.PageDAO:
		body = dao.Render(m.dao, dao.State{
			Tab:       m.daoTab,
			Proposals: m.proposals,
			Selected:  m.selectedProposal,
			Form:      m.form,
			Connected: connected,
			Loading:   m.loading,
			Spinner:   spin,
			Now:       m.clock.Now(),
		})
		nav = dao.Nav(width, m.daoTab, m.dao.IsOwner)

	case config.PageExchange:
		body = exchange.Render(m.exchange, exchange.State{
			Tab:        m.exchangeTab,
			Direction:  m.swapDir,
			Quote:      m.swapQuote,
			QuoteError: m.swapQuoteError,
			Estimating: m.swapEstimating,
			AddEther:   m.addEtherDraft,
			RemoveLP:   m.removeLPDraft,
			SwapAmount: m.swapDraft,
			Form:       m.form,
			Connected:  connected,
			Loading:    m.loading,
			Spinner:    spin,
			Width:      width,
		})
		nav = exchange.Nav(width, m.exchangeTab)

	case config.PageSettings:
		if m.form != nil {
			title := "Add RPC"
			switch m.settingsMode {
			case "edit":
				title = "Edit RPC"
			case "contracts":
				title = "Contracts & Network"
			}
			body = styles.TitleStyle.Render(title) + "\n\n" + m.form.View()
		} else {
			body = settings.Render(m.cfg, m.selectedRPCIdx)
		}
		nav = settings.Nav(width, m.settingsMode)
	}

	if m.form != nil {
		nav = formNav(width)
	}
	if m.activePage != config.PageSettings && connected {
		body += "\n\n" + styles.Muted("updated "+helpers.LoadedAt(m.loadedAt, m.loading))
	}
	return panelStyle.Width(width).Render(body), nav
}

// View implements tea.Model
func (m *model) View() string {
	switch {
	case m.alert != "":
		return m.renderAlert()
	case m.networkErr != nil:
		return m.renderNetworkNotice()
	case m.showTxPanel:
		return m.renderTxPanel()
	case m.activePage == config.PageSettings && m.showRPCDeleteDialog:
		return m.renderRPCDeleteDialog()
	}

	headerPanel := panelStyle.Width(max(0, m.w-2)).Render(m.globalHeader())
	pageContent, nav := m.renderPage()

	if !m.logEnabled {
		return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav))
	}

	// keep the viewport height in sync with the rendered panel
	m.logViewport.Height = logview.Height(m.h)
	logPanel := logview.Render(m.w, m.logReady, m.logSpinner.View(), m.logViewport)
	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, headerPanel, pageContent, nav, logPanel))
}
