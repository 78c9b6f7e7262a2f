package main

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/rpc"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/core/types"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

// connectRPC establishes an RPC connection to the Ethereum node
func connectRPC(url string) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{client: result.Client, err: result.Error}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// connectWallet runs the network guard and builds the session. A nil key
// gives a read-only session.
func connectWallet(backend rpc.Backend, key *ecdsa.PrivateKey, expected uint64) tea.Cmd {
	return func() tea.Msg {
		conn, err := chain.Connect(context.Background(), backend, key, expected)
		return walletConnectedMsg{conn: conn, err: err}
	}
}

// unlockKeystore decrypts the keystore then connects with it
func unlockKeystore(backend rpc.Backend, path, password string, expected uint64) tea.Cmd {
	return func() tea.Msg {
		key, err := rpc.KeyFromKeystore(path, password)
		if err != nil {
			return walletConnectedMsg{err: err}
		}
		conn, err := chain.Connect(context.Background(), backend, key, expected)
		return walletConnectedMsg{conn: conn, err: err}
	}
}

// loadBalance reads the session account's ETH balance
func loadBalance(conn *chain.Conn) tea.Cmd {
	return func() tea.Msg {
		if conn == nil || !conn.CanSign() {
			return balanceLoadedMsg{}
		}
		wei, err := conn.Balance(context.Background(), conn.Address())
		return balanceLoadedMsg{wei: wei, err: err}
	}
}

func loadWhitelist(env pages.Env) tea.Cmd {
	return func() tea.Msg {
		s, err := pages.LoadWhitelist(context.Background(), env)
		return whitelistLoadedMsg{snap: s, err: err}
	}
}

func loadPresale(env pages.Env) tea.Cmd {
	return func() tea.Msg {
		s, err := pages.LoadPresale(context.Background(), env)
		return presaleLoadedMsg{snap: s, err: err}
	}
}

func loadICO(env pages.Env) tea.Cmd {
	return func() tea.Msg {
		s, err := pages.LoadICO(context.Background(), env)
		return icoLoadedMsg{snap: s, err: err}
	}
}

func loadDAO(env pages.Env) tea.Cmd {
	return func() tea.Msg {
		s, err := pages.LoadDAO(context.Background(), env)
		return daoLoadedMsg{snap: s, err: err}
	}
}

func loadProposals(env pages.Env, n *big.Int) tea.Cmd {
	return func() tea.Msg {
		var count int64
		if n != nil {
			count = n.Int64()
		}
		ps, err := pages.FetchProposals(context.Background(), env, count)
		return proposalsLoadedMsg{proposals: ps, err: err}
	}
}

func loadExchange(env pages.Env) tea.Cmd {
	return func() tea.Msg {
		s, err := pages.LoadExchange(context.Background(), env)
		return exchangeLoadedMsg{snap: s, err: err}
	}
}

// fetchSwapQuote asks the exchange contract for the output of amount
func fetchSwapQuote(env pages.Env, s pages.ExchangeSnapshot, amount *big.Int, dir pages.SwapDirection) tea.Cmd {
	return func() tea.Msg {
		q, err := pages.QuoteSwap(context.Background(), env, s, amount, dir)
		return swapQuoteMsg{quote: q, err: err}
	}
}

// runTx performs one page action and reports how it ended
func runTx(page config.Page, action string, fn func(ctx context.Context) (*types.Receipt, error)) tea.Cmd {
	return func() tea.Msg {
		receipt, err := fn(context.Background())
		return txDoneMsg{page: page, action: action, receipt: receipt, err: err}
	}
}

// waitPresaleEvent delivers the next watcher event, or nothing once the
// watcher is gone.
func waitPresaleEvent(ch chan pages.PresaleEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return presaleEventMsg{ev: ev, ch: ch}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return nil
		}
		return clipboardCopiedMsg{what: what}
	}
}

// clearClipboard waits 2 seconds then sends a message to clear clipboard feedback
func clearClipboard() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearClipboardMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------
// These methods help with state management and command generation

// env is what the page controllers need from the model
func (m *model) env() pages.Env {
	return pages.Env{Conn: m.conn, Contracts: m.cfg.Contracts, Log: m.logger, Clock: m.clock}
}

func (m *model) saveConfig() {
	m.cfg.Logger = m.logEnabled
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", fmt.Sprintf("Saving config failed: %v", err))
	}
	m.dapps = config.DApps(m.cfg)
}

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message)
	case "success":
		m.logger.Info("✓", "msg", message)
	case "error":
		m.logger.Error(message)
	case "warning":
		m.logger.Warn(message)
	case "debug":
		m.logger.Debug(message)
	default:
		m.logger.Print(message)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// textInputActive returns true if a form owns the keyboard
func (m *model) textInputActive() bool {
	return m.form != nil
}

// connected reports whether pages may be loaded
func (m *model) connected() bool {
	return m.conn != nil && m.networkErr == nil
}

// startConnect picks how to build the session: PRIVATE_KEY, then the
// configured keystore (asks for its password), then read-only.
func (m *model) startConnect() tea.Cmd {
	if m.ethClient == nil {
		if m.rpcURL == "" || m.rpcConnecting {
			return nil
		}
		m.rpcConnecting = true
		return connectRPC(m.rpcURL)
	}

	key, err := rpc.KeyFromEnv()
	switch {
	case err == nil:
		m.connecting = true
		return connectWallet(m.ethClient, key, m.cfg.ExpectedChainID())
	case !errors.Is(err, rpc.ErrNoKey):
		m.showAlert("Wallet", err.Error())
		return nil
	case m.cfg.Keystore != "":
		m.createUnlockForm()
		return nil
	default:
		m.addLog("warning", "No signing key found, connecting read-only")
		m.connecting = true
		return connectWallet(m.ethClient, nil, m.cfg.ExpectedChainID())
	}
}

// showAlert raises the blocking alert dialog
func (m *model) showAlert(title, text string) {
	m.alertTitle = title
	m.alert = text
}

// handleErr routes an error from a page command. It reports whether the
// error was one the page should give up on.
func (m *model) handleErr(what string, err error) bool {
	if err == nil {
		return false
	}
	var (
		wrong    *chain.WrongNetworkError
		writeErr *chain.WriteError
	)
	switch {
	case errors.As(err, &wrong):
		m.networkErr = wrong
		m.addLog("error", wrong.Error())
	case errors.Is(err, pages.ErrZeroAmount):
		// nothing was sent
	case errors.Is(err, pages.ErrNotDeployed):
		m.addLog("warning", fmt.Sprintf("%s: %v", what, err))
	case errors.As(err, &writeErr):
		// a write that failed, on the node or on the wire, always alerts
		m.addLog("error", fmt.Sprintf("%s: %v", what, err))
		m.showAlert(what+" failed", chain.Reason(err))
	case errors.Is(err, chain.ErrConnection):
		m.addLog("error", fmt.Sprintf("%s: %v", what, err))
	default:
		m.addLog("error", fmt.Sprintf("%s: %v", what, err))
		m.showAlert(what+" failed", chain.Reason(err))
	}
	return true
}

// loadPage refreshes the snapshot of the active page
func (m *model) loadPage() tea.Cmd {
	if !m.connected() {
		return nil
	}
	env := m.env()
	var cmd tea.Cmd
	switch m.activePage {
	case config.PageWhitelist:
		cmd = loadWhitelist(env)
	case config.PagePresale:
		cmd = loadPresale(env)
	case config.PageICO:
		cmd = loadICO(env)
	case config.PageDAO:
		cmd = loadDAO(env)
	case config.PageExchange:
		cmd = loadExchange(env)
	default:
		return loadBalance(m.conn)
	}
	m.loading = true
	return cmd
}

// openPage switches page, stopping page-scoped work of the old one
func (m *model) openPage(p config.Page) tea.Cmd {
	if m.activePage == config.PagePresale && p != config.PagePresale {
		m.stopPresaleWatch()
	}
	m.activePage = p
	m.form = nil
	m.formKind = formNone
	m.loading = false

	cmds := []tea.Cmd{m.loadPage()}
	if p == config.PagePresale && m.connected() {
		cmds = append(cmds, m.startPresaleWatch())
	}
	return tea.Batch(cmds...)
}

// startPresaleWatch starts the presale pollers and bridges their events
// into the update loop.
func (m *model) startPresaleWatch() tea.Cmd {
	m.stopPresaleWatch()
	ch := make(chan pages.PresaleEvent, 8)
	m.presaleEvents = ch
	m.presaleWatch = pages.WatchPresale(m.env(), pages.PresalePollInterval, func(ev pages.PresaleEvent) {
		select {
		case ch <- ev:
		default:
		}
	})
	m.presaleWatch.Start()
	m.addLog("debug", "Presale polling started")
	return waitPresaleEvent(ch)
}

// stopPresaleWatch stops both pollers. Once Stop returns nothing sends on
// the channel, so it is safe to close.
func (m *model) stopPresaleWatch() {
	if m.presaleWatch == nil {
		return
	}
	m.presaleWatch.Stop()
	close(m.presaleEvents)
	m.presaleWatch = nil
	m.presaleEvents = nil
	m.addLog("debug", "Presale polling stopped")
}

// transact dispatches a page action, setting the busy flag
func (m *model) transact(action string, fn func(ctx context.Context, env pages.Env) (*types.Receipt, error)) tea.Cmd {
	if !m.connected() || m.loading {
		return nil
	}
	env := m.env()
	m.loading = true
	m.addLog("info", fmt.Sprintf("%s: waiting for wallet and confirmation", action))
	return runTx(m.activePage, action, func(ctx context.Context) (*types.Receipt, error) {
		return fn(ctx, env)
	})
}
