package main

import (
	"math/big"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"
	"cryptodevs-tui/helpers"
	"cryptodevs-tui/pages"
	"cryptodevs-tui/rpc"

	"github.com/ethereum/go-ethereum/core/types"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct{ what string }

// clearClipboardMsg is sent a while after a copy to clear the feedback
type clearClipboardMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	client *rpc.Client
	err    error
}

// walletConnectedMsg is the outcome of building a session over the client
type walletConnectedMsg struct {
	conn *chain.Conn
	err  error
}

// balanceLoadedMsg carries the session account's ETH balance
type balanceLoadedMsg struct {
	wei *big.Int
	err error
}

// snapshot messages, one per page
type whitelistLoadedMsg struct {
	snap pages.WhitelistSnapshot
	err  error
}

type presaleLoadedMsg struct {
	snap pages.PresaleSnapshot
	err  error
}

type icoLoadedMsg struct {
	snap pages.ICOSnapshot
	err  error
}

type daoLoadedMsg struct {
	snap pages.DAOSnapshot
	err  error
}

type proposalsLoadedMsg struct {
	proposals []pages.Proposal
	err       error
}

type exchangeLoadedMsg struct {
	snap pages.ExchangeSnapshot
	err  error
}

// swapQuoteMsg contains the result of a getAmountOfTokens quote
type swapQuoteMsg struct {
	quote *helpers.SwapQuote
	err   error
}

// presaleEventMsg is one poll result from the presale watcher. ch identifies
// the watcher so events of a stopped one are dropped.
type presaleEventMsg struct {
	ev pages.PresaleEvent
	ch chan pages.PresaleEvent
}

// txDoneMsg is the end of a write started from page; receipt is nil on
// rejection.
type txDoneMsg struct {
	page    config.Page
	action  string
	receipt *types.Receipt
	err     error
}
