package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/styles"
	"cryptodevs-tui/views/home"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/core/types"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempRPCFormName   string
	tempRPCFormURL    string
	tempWhitelistAddr string
	tempNFTAddr       string
	tempTokenAddr     string
	tempExchangeAddr  string
	tempDAOAddr       string
	tempChainID       string
	tempKeystorePath  string
	tempExplorerURL   string
	tempMintAmount    string
	tempTokenID       string
	tempAddEther      string
	tempAddCD         string
	tempRemoveLP      string
	tempSwapAmount    string
)

func validateAddress(s string) error {
	s = strings.TrimSpace(s)
	if s != "" && !helpers.IsValidEthAddress(s) {
		return fmt.Errorf("invalid ethereum address")
	}
	return nil
}

func validateAmount(s string) error {
	v, err := helpers.ParseEther(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid amount")
	}
	if v.Sign() <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n <= 0 {
		return fmt.Errorf("amount must be greater than 0")
	}
	return nil
}

func (m *model) setForm(f *huh.Form, kind formKind) {
	f.Init()
	m.form = f
	m.formKind = kind
}

func (m *model) closeForm() {
	if m.formKind == formAddRPC || m.formKind == formEditRPC || m.formKind == formContracts {
		m.settingsMode = "list"
	}
	if m.formKind == formSwapAmount {
		m.swapDraft = nil
	}
	m.form = nil
	m.formKind = formNone
}

func (m *model) createUnlockForm() {
	f := home.CreateUnlockForm(m.cfg.Keystore)
	m.form = f
	m.formKind = formUnlock
}

func (m *model) createAddRPCForm() {
	tempRPCFormName = ""
	tempRPCFormURL = ""

	m.setForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this RPC endpoint").
				Value(&tempRPCFormName).
				Placeholder("QuickNode Sepolia"),

			huh.NewInput().
				Title("RPC URL").
				Description("The complete RPC URL (https://...)").
				Value(&tempRPCFormURL).
				Placeholder("https://...sepolia.quiknode.pro/...").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("url is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin()), formAddRPC)
}

func (m *model) createEditRPCForm(idx int) {
	if idx < 0 || idx >= len(m.cfg.RPCURLs) {
		return
	}

	rpc := m.cfg.RPCURLs[idx]
	tempRPCFormName = rpc.Name
	tempRPCFormURL = rpc.URL

	m.setForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Value(&tempRPCFormName).
				Placeholder("My Node"),

			huh.NewInput().
				Title("RPC URL").
				Value(&tempRPCFormURL).
				Placeholder("https://..."),
		),
	).WithTheme(huh.ThemeCatppuccin()), formEditRPC)
}

func (m *model) createContractsForm() {
	c := m.cfg.Contracts
	tempWhitelistAddr = c.Whitelist
	tempNFTAddr = c.NFT
	tempTokenAddr = c.Token
	tempExchangeAddr = c.Exchange
	tempDAOAddr = c.DAO
	tempChainID = strconv.FormatUint(m.cfg.ExpectedChainID(), 10)
	tempKeystorePath = m.cfg.Keystore
	tempExplorerURL = m.cfg.Explorer

	addr := func(title string, v *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Value(v).
			Placeholder("0x... (empty if not deployed)").
			Validate(validateAddress)
	}

	m.setForm(huh.NewForm(
		huh.NewGroup(
			addr("Whitelist", &tempWhitelistAddr),
			addr("CryptoDevs NFT", &tempNFTAddr),
			addr("CryptoDev Token", &tempTokenAddr),
			addr("Exchange", &tempExchangeAddr),
			addr("DAO", &tempDAOAddr),
		).Title("Contract addresses"),
		huh.NewGroup(
			huh.NewInput().
				Title("Chain ID").
				Description("Pages refuse to load on any other network").
				Value(&tempChainID).
				Validate(func(s string) error {
					if _, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64); err != nil {
						return fmt.Errorf("invalid chain id")
					}
					return nil
				}),
			huh.NewInput().
				Title("Keystore").
				Description("Encrypted key file unlocked on connect").
				Value(&tempKeystorePath).
				Placeholder("~/.ethereum/keystore/UTC--..."),
			huh.NewInput().
				Title("Explorer").
				Value(&tempExplorerURL).
				Placeholder("https://sepolia.etherscan.io"),
		).Title("Network"),
	).WithTheme(huh.ThemeCatppuccin()), formContracts)
}

func (m *model) createMintForm() {
	tempMintAmount = ""
	m.setForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount of Tokens").
				Description(fmt.Sprintf("%s each", helpers.FormatETH(pages.TokenPrice))).
				Value(&tempMintAmount).
				Placeholder("1").
				Validate(validateCount),
		),
	).WithTheme(huh.ThemeCatppuccin()), formMintTokens)
}

func (m *model) createProposalForm() {
	tempTokenID = ""
	m.setForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fake NFT Token ID to Purchase").
				Value(&tempTokenID).
				Placeholder("0").
				Validate(func(s string) error {
					n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
					if !ok || n.Sign() < 0 {
						return fmt.Errorf("enter a token id")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin()), formProposal)
}

func (m *model) createAddLiquidityForm() {
	tempAddEther = ""
	tempAddCD = ""
	m.addEtherDraft = nil

	fields := []huh.Field{
		huh.NewInput().
			Title("Amount of Ether").
			Description("Available: " + helpers.FormatETH(m.exchange.EtherBalance)).
			Value(&tempAddEther).
			Placeholder("0.0").
			Validate(validateAmount),
	}
	if m.exchange.CDReserve == nil || m.exchange.CDReserve.Sign() == 0 {
		fields = append(fields, huh.NewInput().
			Title("Amount of CryptoDev tokens").
			Description("Available: "+helpers.FormatToken(m.exchange.CDBalance, 18, "CD")).
			Value(&tempAddCD).
			Placeholder("0.0").
			Validate(validateAmount))
	}

	m.setForm(huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin()), formAddLiquidity)
}

func (m *model) createRemoveLiquidityForm() {
	tempRemoveLP = ""
	m.removeLPDraft = nil
	m.setForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount of LP Tokens").
				Description("Available: "+helpers.FormatToken(m.exchange.LPBalance, 18, "LP")).
				Value(&tempRemoveLP).
				Placeholder("0.0").
				Validate(validateAmount),
		),
	).WithTheme(huh.ThemeCatppuccin()), formRemoveLiquidity)
}

func (m *model) createSwapForm() {
	tempSwapAmount = ""
	symbol := swapInSymbol(m.swapDir)
	m.setForm(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Amount of "+symbol).
				Value(&tempSwapAmount).
				Placeholder("0.0").
				Validate(validateAmount),
		),
	).WithTheme(huh.ThemeCatppuccin()), formSwapAmount)
}

// updateForm feeds msg to the open form and acts on it once submitted
func (m *model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	f, ok := form.(*huh.Form)
	if !ok {
		return m, cmd
	}
	m.form = f

	// live previews on the exchange page
	switch m.formKind {
	case formAddLiquidity:
		m.addEtherDraft, _ = helpers.ParseEther(strings.TrimSpace(tempAddEther))
	case formRemoveLiquidity:
		m.removeLPDraft, _ = helpers.ParseEther(strings.TrimSpace(tempRemoveLP))
	case formSwapAmount:
		m.swapDraft, _ = helpers.ParseEther(strings.TrimSpace(tempSwapAmount))
	}

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m.closeForm()
		return m, m.submitForm(kind)
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm turns the values of a completed form into an action
func (m *model) submitForm(kind formKind) tea.Cmd {
	switch kind {
	case formUnlock:
		if m.ethClient == nil {
			return nil
		}
		m.connecting = true
		return unlockKeystore(m.ethClient, m.cfg.Keystore, home.TempPassword, m.cfg.ExpectedChainID())

	case formAddRPC:
		active := len(m.cfg.RPCURLs) == 0
		name := strings.TrimSpace(tempRPCFormName)
		if name == "" {
			name = "RPC " + strconv.Itoa(len(m.cfg.RPCURLs)+1)
		}
		m.cfg.RPCURLs = append(m.cfg.RPCURLs, config.RPCUrl{Name: name, URL: strings.TrimSpace(tempRPCFormURL), Active: active})
		m.saveConfig()
		m.addLog("success", fmt.Sprintf("Added RPC endpoint `%s`", name))
		if active {
			return m.switchRPC(len(m.cfg.RPCURLs) - 1)
		}

	case formEditRPC:
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			r := &m.cfg.RPCURLs[m.selectedRPCIdx]
			r.Name = strings.TrimSpace(tempRPCFormName)
			changed := r.URL != strings.TrimSpace(tempRPCFormURL)
			r.URL = strings.TrimSpace(tempRPCFormURL)
			m.saveConfig()
			m.addLog("success", fmt.Sprintf("Updated RPC endpoint `%s`", r.Name))
			if changed && r.Active {
				return m.switchRPC(m.selectedRPCIdx)
			}
		}

	case formContracts:
		m.cfg.Contracts = config.Contracts{
			Whitelist: strings.TrimSpace(tempWhitelistAddr),
			NFT:       strings.TrimSpace(tempNFTAddr),
			Token:     strings.TrimSpace(tempTokenAddr),
			Exchange:  strings.TrimSpace(tempExchangeAddr),
			DAO:       strings.TrimSpace(tempDAOAddr),
		}
		prevChain := m.cfg.ExpectedChainID()
		if id, err := strconv.ParseUint(strings.TrimSpace(tempChainID), 10, 64); err == nil {
			m.cfg.ChainID = id
		}
		m.cfg.Keystore = strings.TrimSpace(tempKeystorePath)
		m.cfg.Explorer = strings.TrimSpace(tempExplorerURL)
		m.saveConfig()
		m.addLog("success", "Saved contract addresses")
		if m.cfg.ExpectedChainID() != prevChain && m.ethClient != nil {
			m.resetSession()
			return m.startConnect()
		}

	case formMintTokens:
		n, _ := strconv.ParseInt(strings.TrimSpace(tempMintAmount), 10, 64)
		return m.transact("Mint tokens", func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
			return pages.MintTokens(ctx, env, n)
		})

	case formProposal:
		id, _ := new(big.Int).SetString(strings.TrimSpace(tempTokenID), 10)
		return m.transact("Create proposal", func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
			return pages.CreateProposal(ctx, env, id)
		})

	case formAddLiquidity:
		addEther, _ := helpers.ParseEther(strings.TrimSpace(tempAddEther))
		var addCD *big.Int
		if m.exchange.CDReserve == nil || m.exchange.CDReserve.Sign() == 0 {
			addCD, _ = helpers.ParseEther(strings.TrimSpace(tempAddCD))
		} else {
			addCD = pages.CalculateCD(addEther, m.exchange.EtherReserve, m.exchange.CDReserve)
		}
		return m.transact("Add liquidity", func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
			return pages.AddLiquidity(ctx, env, addCD, addEther)
		})

	case formRemoveLiquidity:
		lp, _ := helpers.ParseEther(strings.TrimSpace(tempRemoveLP))
		return m.transact("Remove liquidity", func(ctx context.Context, env pages.Env) (*types.Receipt, error) {
			return pages.RemoveLiquidity(ctx, env, lp)
		})

	case formSwapAmount:
		amount, _ := helpers.ParseEther(strings.TrimSpace(tempSwapAmount))
		m.swapDraft = nil
		m.swapQuote = nil
		m.swapQuoteError = ""
		if !m.connected() {
			return nil
		}
		m.swapEstimating = true
		return fetchSwapQuote(m.env(), m.exchange, amount, m.swapDir)
	}
	return nil
}

// resetSession drops the session and page-scoped work
func (m *model) resetSession() {
	m.stopPresaleWatch()
	m.conn = nil
	m.networkErr = nil
	m.balance = nil
	m.loading = false
}

// switchRPC activates the endpoint at idx and reconnects through it
func (m *model) switchRPC(idx int) tea.Cmd {
	for i := range m.cfg.RPCURLs {
		m.cfg.RPCURLs[i].Active = i == idx
	}
	m.saveConfig()
	m.resetSession()
	if m.ethClient != nil {
		m.ethClient.Close()
		m.ethClient = nil
	}
	m.rpcURL = m.cfg.RPCURLs[idx].URL
	m.rpcConnected = false
	m.rpcConnecting = true
	return connectRPC(m.rpcURL)
}

// -------------------- UPDATE --------------------

// Update implements tea.Model interface and handles all messages
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = newLogger(m.logBuffer)
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case rpcConnectedMsg:
		m.rpcConnecting = false
		if msg.err != nil {
			m.ethClient = nil
			m.rpcConnected = false
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			return m, nil
		}
		m.ethClient = msg.client
		m.rpcConnected = true
		m.addLog("success", fmt.Sprintf("RPC connected to `%s`", msg.client.URL))
		return m, m.startConnect()

	case walletConnectedMsg:
		m.connecting = false
		if msg.err != nil {
			var wrong *chain.WrongNetworkError
			if errors.As(msg.err, &wrong) {
				m.networkErr = wrong
				m.addLog("error", wrong.Error())
				return m, nil
			}
			m.addLog("error", fmt.Sprintf("Wallet connection failed: %v", msg.err))
			m.showAlert("Wallet", chain.Reason(msg.err))
			return m, nil
		}
		m.conn = msg.conn
		m.networkErr = nil
		s := m.conn.Session()
		if m.conn.CanSign() {
			m.addLog("success", fmt.Sprintf("Connected `%s` on %s", helpers.ShortenAddr(s.Address.Hex()), chain.NetworkName(s.ChainID)))
		} else {
			m.addLog("info", fmt.Sprintf("Read-only session on %s", chain.NetworkName(s.ChainID)))
		}
		return m, tea.Batch(loadBalance(m.conn), m.openPage(m.activePage))

	case balanceLoadedMsg:
		if msg.err != nil {
			m.addLog("warning", fmt.Sprintf("Balance: %v", msg.err))
			return m, nil
		}
		m.balance = msg.wei
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		if m.logEnabled {
			m.logViewport.Width = max(0, msg.Width-6)
			if m.logReady {
				m.updateLogViewport()
			}
		}
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case whitelistLoadedMsg:
		m.loading = false
		if m.handleErr("Whitelist", msg.err) {
			return m, nil
		}
		m.whitelist = msg.snap
		m.loadedAt = m.clock.Now()
		return m, nil

	case presaleLoadedMsg:
		m.loading = false
		if m.handleErr("Presale", msg.err) {
			return m, nil
		}
		m.presale = msg.snap
		m.loadedAt = m.clock.Now()
		return m, nil

	case presaleEventMsg:
		if msg.ch != m.presaleEvents {
			return m, nil
		}
		return m, tea.Batch(m.applyPresaleEvent(msg.ev), waitPresaleEvent(msg.ch))

	case icoLoadedMsg:
		m.loading = false
		if m.handleErr("ICO", msg.err) {
			return m, nil
		}
		m.ico = msg.snap
		m.loadedAt = m.clock.Now()
		return m, nil

	case daoLoadedMsg:
		m.loading = false
		if m.handleErr("DAO", msg.err) {
			return m, nil
		}
		m.dao = msg.snap
		m.loadedAt = m.clock.Now()
		if m.daoTab == pages.TabViewProposals {
			return m, loadProposals(m.env(), m.dao.NumProposals)
		}
		return m, nil

	case proposalsLoadedMsg:
		if msg.err != nil {
			m.addLog("warning", fmt.Sprintf("Proposals: %v", msg.err))
		}
		m.proposals = msg.proposals
		if m.selectedProposal >= len(m.proposals) {
			m.selectedProposal = max(0, len(m.proposals)-1)
		}
		return m, nil

	case exchangeLoadedMsg:
		m.loading = false
		if m.handleErr("Exchange", msg.err) {
			return m, nil
		}
		m.exchange = msg.snap
		m.loadedAt = m.clock.Now()
		return m, nil

	case swapQuoteMsg:
		m.swapEstimating = false
		if msg.err != nil {
			if !errors.Is(msg.err, pages.ErrZeroAmount) {
				m.swapQuoteError = chain.Reason(msg.err)
				m.addLog("error", fmt.Sprintf("Swap quote: %v", msg.err))
			}
			return m, nil
		}
		m.swapQuote = msg.quote
		m.addLog("info", "Quote: "+helpers.FormatSwapQuote(msg.quote, swapInSymbol(m.swapDir), swapOutSymbol(m.swapDir)))
		return m, nil

	case txDoneMsg:
		m.loading = false
		if m.handleErr(msg.action, msg.err) {
			return m, nil
		}
		m.lastTx = msg.receipt.TxHash
		m.addLog("success", fmt.Sprintf("%s confirmed in block %s", msg.action, msg.receipt.BlockNumber))
		switch msg.page {
		case config.PageExchange:
			m.swapQuote = nil
			m.addEtherDraft = nil
			m.removeLPDraft = nil
			m.swapDraft = nil
		}
		if msg.page != m.activePage {
			return m, loadBalance(m.conn)
		}
		return m, tea.Batch(m.loadPage(), loadBalance(m.conn))

	case clipboardCopiedMsg:
		m.copiedMsg = "Copied " + msg.what
		m.copiedMsgTime = m.clock.Now()
		m.addLog("info", fmt.Sprintf("Copied %s to clipboard", msg.what))
		return m, clearClipboard()

	case clearClipboardMsg:
		m.copiedMsg = ""
		return m, nil

	case tea.MouseMsg:
		if m.logEnabled && m.logReady {
			var cmd tea.Cmd
			m.logViewport, cmd = m.logViewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// anything else (cursor blinks, field focus) belongs to the form
	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// applyPresaleEvent folds one watcher result into the presale snapshot
func (m *model) applyPresaleEvent(ev pages.PresaleEvent) tea.Cmd {
	// a failed poll keeps the last good values and marks them stale
	if ev.Err != nil {
		m.presale.Err = ev.Err
		return nil
	}
	if ev.Minted != nil {
		m.presale.Minted = ev.Minted
		return nil
	}
	if !ev.PhaseChecked {
		return nil
	}
	wasStarted := m.presale.Started
	m.presale.Started = ev.Started
	m.presale.Ended = ev.Ended
	if ev.Ended {
		m.addLog("info", "Presale ended, phase polling stopped")
	}
	// the end time is only read on a full load
	if ev.Started && !wasStarted && !m.loading {
		return m.loadPage()
	}
	return nil
}

func swapInSymbol(dir pages.SwapDirection) string {
	if dir == pages.EthToCD {
		return "ETH"
	}
	return "CD"
}

func swapOutSymbol(dir pages.SwapDirection) string {
	if dir == pages.EthToCD {
		return "CD"
	}
	return "ETH"
}

// newLogger builds the log panel's logger in the app palette
func newLogger(w *logBuffer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	logger.SetLevel(log.DebugLevel)
	logger.SetStyles(&log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(styles.CMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(styles.CAccent2),
		Message:   lipgloss.NewStyle().Foreground(styles.CText),
		Key:       lipgloss.NewStyle().Foreground(styles.CAccent),
		Value:     lipgloss.NewStyle().Foreground(styles.CText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(styles.CMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(styles.CAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(styles.CWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(styles.CError).SetString("ERROR"),
		},
	})
	return logger
}
