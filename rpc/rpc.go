package rpc

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Backend is everything the pages need from a node: contract calls,
// transaction submission, receipts, chain id and native balances.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

var _ Backend = (*ethclient.Client)(nil)

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	if strings.TrimSpace(url) == "" {
		return ConnectResult{Error: errors.New("no RPC URL configured")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{
			Client: client,
			URL:    url,
		},
		Error: nil,
	}
}

// ErrNoKey is returned when neither PRIVATE_KEY nor a keystore is available.
var ErrNoKey = errors.New("no signing key: set PRIVATE_KEY or configure a keystore")

// KeyFromHex parses a hex private key, with or without 0x prefix
func KeyFromHex(s string) (*ecdsa.PrivateKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, ErrNoKey
	}
	key, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return key, nil
}

// KeyFromEnv reads the PRIVATE_KEY environment variable
func KeyFromEnv() (*ecdsa.PrivateKey, error) {
	return KeyFromHex(os.Getenv("PRIVATE_KEY"))
}

// KeyFromKeystore decrypts a go-ethereum keystore JSON file
func KeyFromKeystore(path, password string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	k, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}
	return k.PrivateKey, nil
}
