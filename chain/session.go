package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"cryptodevs-tui/rpc"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Session is the in-memory view of a wallet connection.
type Session struct {
	Connected bool
	ChainID   uint64
	Address   common.Address
}

// Conn is the single long-lived wallet connection a page holds. It is never
// mutated after Connect; every acquisition re-runs the network guard.
type Conn struct {
	backend  rpc.Backend
	key      *ecdsa.PrivateKey
	expected uint64
	session  Session
}

// Connect verifies the backend is on the expected chain and returns a
// connection. key may be nil for a read-only session.
func Connect(ctx context.Context, backend rpc.Backend, key *ecdsa.PrivateKey, expected uint64) (*Conn, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: no backend", ErrConnection)
	}
	if err := CheckNetwork(ctx, backend, expected); err != nil {
		return nil, err
	}

	c := &Conn{backend: backend, key: key, expected: expected}
	c.session = Session{Connected: true, ChainID: expected}
	if key != nil {
		c.session.Address = crypto.PubkeyToAddress(key.PublicKey)
	}
	return c, nil
}

// Session returns a copy of the connection's session.
func (c *Conn) Session() Session {
	if c == nil {
		return Session{}
	}
	return c.session
}

// Address is the connected account, zero for read-only sessions.
func (c *Conn) Address() common.Address {
	if c == nil {
		return common.Address{}
	}
	return c.session.Address
}

// CanSign reports whether the session has a signing key.
func (c *Conn) CanSign() bool { return c != nil && c.key != nil }

// Provider returns the backend for read-only use after re-checking the network.
func (c *Conn) Provider(ctx context.Context) (rpc.Backend, error) {
	if c == nil || !c.session.Connected {
		return nil, ErrNotConnected
	}
	if err := CheckNetwork(ctx, c.backend, c.expected); err != nil {
		return nil, err
	}
	return c.backend, nil
}

// Signer returns transact options bound to the wallet key after re-checking the network.
func (c *Conn) Signer(ctx context.Context) (*bind.TransactOpts, error) {
	if _, err := c.Provider(ctx); err != nil {
		return nil, err
	}
	if c.key == nil {
		return nil, rpc.ErrNoKey
	}
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, new(big.Int).SetUint64(c.expected))
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// ReadHandle acquires a provider and builds a ReadOnly handle for address.
func (c *Conn) ReadHandle(ctx context.Context, address common.Address, descriptor *abi.ABI) (*Handle, error) {
	backend, err := c.Provider(ctx)
	if err != nil {
		return nil, err
	}
	return MakeHandle(address, descriptor, ReadOnly, Binding{Backend: backend, From: c.Address()})
}

// WriteHandle acquires a signer and builds a Signing handle for address.
func (c *Conn) WriteHandle(ctx context.Context, address common.Address, descriptor *abi.ABI) (*Handle, error) {
	signer, err := c.Signer(ctx)
	if err != nil {
		return nil, err
	}
	return MakeHandle(address, descriptor, Signing, Binding{Backend: c.backend, From: c.Address(), Signer: signer})
}

// Balance reads the native balance of addr.
func (c *Conn) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	backend, err := c.Provider(ctx)
	if err != nil {
		return nil, err
	}
	bal, err := backend.BalanceAt(ctx, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: balance of %s: %w", ErrReadFailure, addr.Hex(), err)
	}
	return bal, nil
}
