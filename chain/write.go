package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// PendingTx is the lifecycle of one submitted write.
type PendingTx struct {
	Hash      common.Hash
	Method    string
	Submitted bool
	Confirmed bool
}

// Write submits a state-changing call, optionally paying value wei, and
// blocks until it is mined with one confirmation.
func Write(ctx context.Context, h *Handle, value *big.Int, method string, args ...any) (*types.Receipt, error) {
	p, tx, err := Submit(ctx, h, value, method, args...)
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx, h, tx)
}

// Submit signs and sends the transaction without waiting for it.
func Submit(ctx context.Context, h *Handle, value *big.Int, method string, args ...any) (*PendingTx, *types.Transaction, error) {
	if h == nil {
		return nil, nil, &WriteError{Kind: Rejected, Method: method, Err: ErrNotConnected}
	}
	if h.Capability != Signing || h.binding.Signer == nil {
		return nil, nil, &WriteError{Kind: Rejected, Method: method, Err: ErrReadOnly}
	}

	opts := *h.binding.Signer
	opts.Context = ctx
	opts.Value = value

	tx, err := h.bound.Transact(&opts, method, args...)
	if err != nil {
		return nil, nil, &WriteError{Kind: Rejected, Method: method, Err: err}
	}
	return &PendingTx{Hash: tx.Hash(), Method: method, Submitted: true}, tx, nil
}

// Wait blocks until tx is mined and marks the pending transaction confirmed.
func (p *PendingTx) Wait(ctx context.Context, h *Handle, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, h.binding.Backend, tx)
	if err != nil {
		return nil, &WriteError{Kind: Rejected, Method: p.Method, TxHash: p.Hash, Err: fmt.Errorf("%w: %w", ErrConnection, err)}
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, &WriteError{Kind: Reverted, Method: p.Method, TxHash: p.Hash, Err: errors.New("execution reverted")}
	}
	p.Confirmed = true
	return receipt, nil
}
