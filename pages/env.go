// Package pages holds one controller per dApp page: a snapshot loader that
// re-reads every quantity the page renders, and one function per user action.
package pages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/config"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrNotDeployed is returned when the config has no address for a contract.
var ErrNotDeployed = errors.New("contract address not configured")

// ErrZeroAmount is returned by actions given a zero amount; nothing is sent.
var ErrZeroAmount = errors.New("amount must be greater than zero")

// ErrInvalidTokenID is returned for a missing or negative NFT token id.
var ErrInvalidTokenID = errors.New("invalid token id")

// Env is what every controller needs: the wallet connection, where the
// contracts live, a logger and a clock.
type Env struct {
	Conn      *chain.Conn
	Contracts config.Contracts
	Log       *log.Logger
	Clock     clock.Clock
}

var discard = log.New(io.Discard)

func (e Env) logger() *log.Logger {
	if e.Log == nil {
		return discard
	}
	return e.Log
}

func (e Env) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e Env) reads() *chain.Reads {
	return chain.NewReads(e.logger())
}

func address(name, hex string) (common.Address, error) {
	if !common.IsHexAddress(hex) {
		return common.Address{}, fmt.Errorf("%s: %w", name, ErrNotDeployed)
	}
	return common.HexToAddress(hex), nil
}

func (e Env) reader(ctx context.Context, name, hex string, descriptor *abi.ABI) (*chain.Handle, error) {
	addr, err := address(name, hex)
	if err != nil {
		return nil, err
	}
	return e.Conn.ReadHandle(ctx, addr, descriptor)
}

func (e Env) writer(ctx context.Context, name, hex string, descriptor *abi.ABI) (*chain.Handle, error) {
	addr, err := address(name, hex)
	if err != nil {
		return nil, err
	}
	return e.Conn.WriteHandle(ctx, addr, descriptor)
}

// send acquires a signing handle and runs one write to completion.
func (e Env) send(ctx context.Context, name, hex string, descriptor *abi.ABI, value *big.Int, method string, args ...any) (*types.Receipt, error) {
	h, err := e.writer(ctx, name, hex, descriptor)
	if err != nil {
		return nil, err
	}
	return e.transact(ctx, name, h, value, method, args...)
}

func (e Env) transact(ctx context.Context, name string, h *chain.Handle, value *big.Int, method string, args ...any) (*types.Receipt, error) {
	l := e.logger().With("contract", name, "method", method)

	pending, tx, err := chain.Submit(ctx, h, value, method, args...)
	if err != nil {
		l.Error("transaction rejected", "err", err)
		return nil, err
	}
	l.Info("transaction submitted", "tx", pending.Hash.Hex())

	receipt, err := pending.Wait(ctx, h, tx)
	if err != nil {
		l.Error("transaction failed", "tx", pending.Hash.Hex(), "err", err)
		return receipt, err
	}
	l.Info("transaction confirmed", "tx", pending.Hash.Hex(), "block", receipt.BlockNumber)
	return receipt, nil
}

func (e Env) isOwner(owner common.Address) bool {
	return owner != (common.Address{}) && owner == e.Conn.Address()
}

func ether(milli int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(milli), big.NewInt(1e15))
}
