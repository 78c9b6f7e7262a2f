package main

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/rpc"
	"cryptodevs-tui/styles"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- MODEL --------------------

// formKind says what a completed m.form should do
type formKind int

const (
	formNone formKind = iota
	formUnlock
	formAddRPC
	formEditRPC
	formContracts
	formMintTokens
	formProposal
	formAddLiquidity
	formRemoveLiquidity
	formSwapAmount
)

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page
	cfg        config.Config
	configPath string
	clock      clock.Clock

	// home grid
	dapps           []config.DApp
	selectedDappIdx int

	// connection
	spin          spinner.Model
	rpcURL        string
	ethClient     *rpc.Client
	rpcConnected  bool // true if RPC is successfully connected
	rpcConnecting bool // true if connection attempt is in progress
	conn          *chain.Conn
	connecting    bool // wallet session being built
	balance       *big.Int
	networkErr    *chain.WrongNetworkError

	// the single busy flag: a snapshot refresh or a transaction is in flight
	loading  bool
	loadedAt time.Time

	// forms
	form     *huh.Form
	formKind formKind

	// blocking alert
	alert      string
	alertTitle string

	// last confirmed transaction
	lastTx      common.Hash
	showTxPanel bool

	// clipboard feedback
	copiedMsg     string
	copiedMsgTime time.Time

	// page state
	whitelist pages.WhitelistSnapshot

	presale       pages.PresaleSnapshot
	presaleWatch  *pages.PresaleWatcher
	presaleEvents chan pages.PresaleEvent

	ico pages.ICOSnapshot

	dao              pages.DAOSnapshot
	daoTab           pages.DAOTab
	proposals        []pages.Proposal
	selectedProposal int

	exchange       pages.ExchangeSnapshot
	exchangeTab    pages.ExchangeTab
	swapDir        pages.SwapDirection
	swapQuote      *helpers.SwapQuote
	swapQuoteError string
	swapEstimating bool
	addEtherDraft  *big.Int
	removeLPDraft  *big.Int
	swapDraft      *big.Int

	// settings state
	settingsMode               string // "list", "add", "edit", "contracts"
	selectedRPCIdx             int
	showRPCDeleteDialog        bool
	deleteRPCDialogName        string
	deleteRPCDialogIdx         int
	deleteRPCDialogYesSelected bool

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *logBuffer
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// logBuffer is the log panel's backing store. Page commands log from their
// own goroutines while View reads it.
type logBuffer struct {
	mu sync.Mutex
	sb strings.Builder
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sb.String()
}

func (b *logBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sb.Reset()
}

// -------------------- INIT --------------------

func defaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cryptodevs-config.json")
}

// newModel creates and initializes a new model with configuration from disk
func newModel(configPath string) model {
	cfg := config.LoadOrCreate(configPath)

	// rpc URL from environment
	rpcFromEnv := strings.TrimSpace(os.Getenv("ETH_RPC_URL"))

	// If no RPC in config but ENV is set, use ENV
	if len(cfg.RPCURLs) == 0 && rpcFromEnv != "" {
		cfg.RPCURLs = []config.RPCUrl{{Name: "Default", URL: rpcFromEnv, Active: true}}
	}

	activeRPC := cfg.ActiveRPC()
	if activeRPC == "" {
		activeRPC = rpcFromEnv
	}

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	return model{
		activePage:   config.PageHome,
		cfg:          cfg,
		configPath:   configPath,
		clock:        clock.New(),
		dapps:        config.DApps(cfg),
		spin:         sp,
		rpcURL:       activeRPC,
		settingsMode: "list",
		logEnabled:   cfg.Logger,
		logViewport:  vp,
		logBuffer:    &logBuffer{},
		logSpinner:   logSpin,
	}
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	// connect if rpc is set
	if m.rpcURL != "" {
		m.rpcConnecting = true
		cmds = append(cmds, connectRPC(m.rpcURL))
	}
	return tea.Batch(cmds...)
}
