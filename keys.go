package main

import (
	"context"
	"fmt"
	"strings"

	"cryptodevs-tui/config"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/views/dapps"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// handleKey routes a key press. Overlays come first: alert, network notice,
// transaction panel, then an open form, then global keys, then the page.
func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.alert != "" {
		switch key {
		case "enter", "esc", " ":
			m.alert = ""
			m.alertTitle = ""
		}
		return m, nil
	}

	if m.networkErr != nil {
		switch key {
		case "r", "w":
			m.addLog("info", "Retrying connection")
			m.resetSession()
			return m, m.startConnect()
		case "q":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showTxPanel {
		switch key {
		case "c":
			return m, copyToClipboard(m.lastTx.Hex(), "transaction hash")
		case "esc", "enter", "t":
			m.showTxPanel = false
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	// global keys
	switch key {
	case "q":
		return m, tea.Quit
	case "l":
		m.logEnabled = !m.logEnabled
		m.saveConfig()
		if m.logEnabled {
			if !m.logReady {
				return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
			}
			m.addLog("info", "Logger enabled")
		}
		return m, nil
	case "pageup", "pagedown":
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case "t":
		if m.lastTx != (common.Hash{}) {
			m.showTxPanel = true
		}
		return m, nil
	case "w":
		if m.conn == nil && !m.connecting {
			return m, m.startConnect()
		}
		return m, nil
	case "r":
		if m.loading {
			return m, nil
		}
		// on the DAO view tab the proposals follow the snapshot
		return m, m.loadPage()
	}

	switch m.activePage {
	case config.PageHome:
		return m.handleHomeKey(key)
	case config.PageSettings:
		return m.handleSettingsKey(key)
	}

	if key == "esc" {
		return m, m.openPage(config.PageHome)
	}

	switch m.activePage {
	case config.PageWhitelist:
		if key == "j" && !m.whitelist.Joined && !m.whitelist.Full() {
			return m, m.transact("Join whitelist", pages.JoinWhitelist)
		}

	case config.PagePresale:
		return m.handlePresaleKey(key)

	case config.PageICO:
		switch key {
		case "c":
			if m.ico.ClaimableTokens().Sign() > 0 {
				return m, m.transact("Claim tokens", pages.ClaimTokens)
			}
		case "m":
			if m.connected() && !m.loading {
				m.createMintForm()
			}
		case "W":
			if m.ico.IsOwner {
				return m, m.transact("Withdraw ICO", pages.WithdrawICO)
			}
		}

	case config.PageDAO:
		return m.handleDAOKey(key)

	case config.PageExchange:
		return m.handleExchangeKey(key)
	}
	return m, nil
}

func (m *model) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	n := len(m.dapps)
	switch key {
	case "right", "tab":
		if n > 0 {
			m.selectedDappIdx = (m.selectedDappIdx + 1) % n
		}
	case "left", "shift+tab":
		if n > 0 {
			m.selectedDappIdx = (m.selectedDappIdx - 1 + n) % n
		}
	case "down":
		if m.selectedDappIdx+dapps.Columns < n {
			m.selectedDappIdx += dapps.Columns
		}
	case "up":
		if m.selectedDappIdx-dapps.Columns >= 0 {
			m.selectedDappIdx -= dapps.Columns
		}
	case "enter":
		if m.selectedDappIdx < n {
			d := m.dapps[m.selectedDappIdx]
			m.addLog("info", fmt.Sprintf("Opening %s", d.Name))
			return m, m.openPage(d.Page)
		}
	case "s":
		m.settingsMode = "list"
		return m, m.openPage(config.PageSettings)
	case "c":
		if m.lastTx != (common.Hash{}) {
			return m, copyToClipboard(m.lastTx.Hex(), "transaction hash")
		}
	case "y":
		if m.selectedDappIdx < n && m.dapps[m.selectedDappIdx].Address != "" {
			d := m.dapps[m.selectedDappIdx]
			return m, copyToClipboard(d.Address, d.Name+" address")
		}
	case "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) handlePresaleKey(key string) (tea.Model, tea.Cmd) {
	phase := m.presale.Phase(m.connected())
	switch key {
	case "s":
		if m.presale.IsOwner && phase == pages.PhaseNotStarted {
			return m, m.transact("Start presale", pages.StartPresale)
		}
	case "p":
		if phase == pages.PhaseActive {
			return m, m.transact("Presale mint", pages.PresaleMint)
		}
	case "m":
		if phase == pages.PhaseEnded {
			return m, m.transact("Public mint", pages.PublicMint)
		}
	case "z":
		if m.presale.IsOwner {
			paused := !m.presale.Paused
			action := "Pause minting"
			if !paused {
				action = "Unpause minting"
			}
			return m, m.transact(action, func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
				return pages.SetPaused(ctx, env, paused)
			})
		}
	case "W":
		if m.presale.IsOwner {
			return m, m.transact("Withdraw NFT sales", pages.WithdrawNFT)
		}
	}
	return m, nil
}

func (m *model) handleDAOKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "tab":
		if m.daoTab == pages.TabCreateProposal {
			m.daoTab = pages.TabViewProposals
			if m.connected() {
				return m, loadProposals(m.env(), m.dao.NumProposals)
			}
			return m, nil
		}
		m.daoTab = pages.TabCreateProposal
		return m, nil
	case "W":
		if m.dao.IsOwner {
			return m, m.transact("Withdraw DAO treasury", pages.WithdrawDAO)
		}
		return m, nil
	}

	if m.daoTab == pages.TabCreateProposal {
		if key == "n" && m.dao.CanCreate() && m.connected() && !m.loading {
			m.createProposalForm()
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.selectedProposal > 0 {
			m.selectedProposal--
		}
	case "down", "j":
		if m.selectedProposal < len(m.proposals)-1 {
			m.selectedProposal++
		}
	case "y", "x", "e":
		if m.selectedProposal >= len(m.proposals) {
			return m, nil
		}
		p := m.proposals[m.selectedProposal]
		state := p.State(m.clock.Now())
		switch {
		case key == "e" && state == pages.ProposalExecutable:
			return m, m.transact(fmt.Sprintf("Execute proposal %d", p.ID), func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
				return pages.ExecuteProposal(ctx, env, p.ID)
			})
		case key != "e" && state == pages.ProposalVoting:
			vote := pages.VoteYay
			if key == "x" {
				vote = pages.VoteNay
			}
			return m, m.transact(fmt.Sprintf("Vote %s on proposal %d", vote, p.ID), func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
				return pages.VoteOnProposal(ctx, env, p.ID, vote)
			})
		}
	}
	return m, nil
}

func (m *model) handleExchangeKey(key string) (tea.Model, tea.Cmd) {
	if key == "tab" {
		if m.exchangeTab == pages.TabLiquidity {
			m.exchangeTab = pages.TabSwap
		} else {
			m.exchangeTab = pages.TabLiquidity
		}
		return m, nil
	}
	if !m.connected() || m.loading {
		return m, nil
	}

	if m.exchangeTab == pages.TabLiquidity {
		switch key {
		case "a":
			m.createAddLiquidityForm()
		case "x":
			m.createRemoveLiquidityForm()
		}
		return m, nil
	}

	switch key {
	case "a":
		m.createSwapForm()
	case "d":
		if m.swapDir == pages.EthToCD {
			m.swapDir = pages.CDToEth
		} else {
			m.swapDir = pages.EthToCD
		}
		m.swapQuote = nil
		m.swapQuoteError = ""
	case "enter":
		q := m.swapQuote
		if q == nil {
			return m, nil
		}
		dir := m.swapDir
		return m, m.transact("Swap "+dir.String(), func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
			return pages.Swap(ctx, env, q.AmountIn, q.AmountOut, dir)
		})
	}
	return m, nil
}

func (m *model) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	if m.showRPCDeleteDialog {
		switch key {
		case "left", "right", "tab":
			m.deleteRPCDialogYesSelected = !m.deleteRPCDialogYesSelected
		case "enter":
			if m.deleteRPCDialogYesSelected {
				idx := m.deleteRPCDialogIdx
				if idx >= 0 && idx < len(m.cfg.RPCURLs) {
					m.cfg.RPCURLs = append(m.cfg.RPCURLs[:idx], m.cfg.RPCURLs[idx+1:]...)
					if m.selectedRPCIdx >= len(m.cfg.RPCURLs) && m.selectedRPCIdx > 0 {
						m.selectedRPCIdx--
					}
					m.saveConfig()
					m.addLog("warning", fmt.Sprintf("Deleted RPC endpoint `%s`", m.deleteRPCDialogName))
				}
			}
			m.showRPCDeleteDialog = false
		case "esc":
			m.showRPCDeleteDialog = false
		}
		return m, nil
	}

	switch key {
	case "esc":
		return m, m.openPage(config.PageHome)

	case "a", "A":
		m.settingsMode = "add"
		m.createAddRPCForm()

	case "e", "E":
		if len(m.cfg.RPCURLs) > 0 {
			m.settingsMode = "edit"
			m.createEditRPCForm(m.selectedRPCIdx)
		}

	case "o", "O":
		m.settingsMode = "contracts"
		m.createContractsForm()

	case "d", "delete", "backspace":
		if len(m.cfg.RPCURLs) > 0 && m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			m.showRPCDeleteDialog = true
			m.deleteRPCDialogYesSelected = true
			m.deleteRPCDialogIdx = m.selectedRPCIdx
			name := strings.TrimSpace(m.cfg.RPCURLs[m.selectedRPCIdx].Name)
			if name == "" {
				name = m.cfg.RPCURLs[m.selectedRPCIdx].URL
			}
			m.deleteRPCDialogName = name
		}

	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}

	case "down", "j":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs)-1 {
			m.selectedRPCIdx++
		}

	case "enter", " ":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			m.addLog("info", fmt.Sprintf("Switching to RPC `%s`", m.cfg.RPCURLs[m.selectedRPCIdx].Name))
			return m, m.switchRPC(m.selectedRPCIdx)
		}
	}
	return m, nil
}
