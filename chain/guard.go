package chain

import (
	"context"
	"fmt"
	"math/big"
)

// ChainIDReader is the slice of the bridge the guard needs.
type ChainIDReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
}

// CheckNetwork fails with *WrongNetworkError unless the node reports the
// expected chain id. It is not cached; callers run it on every acquisition.
func CheckNetwork(ctx context.Context, b ChainIDReader, expected uint64) error {
	id, err := b.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("%w: chain id: %w", ErrConnection, err)
	}
	if !id.IsUint64() || id.Uint64() != expected {
		got := uint64(0)
		if id.IsUint64() {
			got = id.Uint64()
		}
		return &WrongNetworkError{Got: got, Want: expected}
	}
	return nil
}
