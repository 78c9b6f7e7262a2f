package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"
)

// ReadAll invokes a non-mutating method and returns every decoded output.
func ReadAll(ctx context.Context, h *Handle, method string, args ...any) ([]any, error) {
	if h == nil {
		return nil, fmt.Errorf("%w: %s: no handle", ErrReadFailure, method)
	}
	var out []any
	opts := &bind.CallOpts{Context: ctx, From: h.binding.From}
	if err := h.bound.Call(opts, &out, method, args...); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailure, method, err)
	}
	return out, nil
}

// Read invokes a single-output method and converts the result to T.
func Read[T any](ctx context.Context, h *Handle, method string, args ...any) (T, error) {
	var zero T
	out, err := ReadAll(ctx, h, method, args...)
	if err != nil {
		return zero, err
	}
	if len(out) == 0 {
		return zero, fmt.Errorf("%w: %s: empty result", ErrReadFailure, method)
	}
	return convert[T](method, out[0])
}

func convert[T any](method string, in any) (v T, err error) {
	if t, ok := in.(T); ok {
		return t, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: cannot convert %T: %v", ErrReadFailure, method, in, r)
		}
	}()
	return *abi.ConvertType(in, new(T)).(*T), nil
}

// Reads collects the failures of one snapshot refresh. A failed read is
// logged and replaced by its default; Err reports what was replaced.
type Reads struct {
	log  *log.Logger
	errs *multierror.Error
}

// NewReads returns a collector logging to logger (nil discards).
func NewReads(logger *log.Logger) *Reads {
	return &Reads{log: logger}
}

// Fail records a failed quantity.
func (r *Reads) Fail(quantity string, err error) {
	if r.log != nil {
		r.log.Error("read failed", "quantity", quantity, "err", err)
	}
	r.errs = multierror.Append(r.errs, fmt.Errorf("%s: %w", quantity, err))
}

// Err is nil when every read succeeded.
func (r *Reads) Err() error {
	return r.errs.ErrorOrNil()
}

// ReadOr is Read with the safe-default boundary: errors never escape, def is
// returned instead and the failure recorded in r.
func ReadOr[T any](ctx context.Context, r *Reads, h *Handle, def T, method string, args ...any) T {
	v, err := Read[T](ctx, h, method, args...)
	if err != nil {
		r.Fail(method, err)
		return def
	}
	return v
}

// BalanceOr reads a native balance, zero on failure.
func BalanceOr(ctx context.Context, r *Reads, c *Conn, addr common.Address) *big.Int {
	bal, err := c.Balance(ctx, addr)
	if err != nil {
		r.Fail("balance", err)
		return new(big.Int)
	}
	return bal
}
