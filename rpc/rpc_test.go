package rpc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	// Get RPC URL from environment
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		t.Skip("ETH_RPC_URL not set, skipping connection test")
	}

	t.Run("successful connection", func(t *testing.T) {
		result := Connect(rpcURL)
		require.NoError(t, result.Error)
		require.NotNil(t, result.Client)
		require.Equal(t, rpcURL, result.Client.URL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		chainID, err := result.Client.ChainID(ctx)
		require.NoError(t, err)
		t.Logf("Connected to chain ID: %s", chainID.String())
	})

	t.Run("connection with timeout", func(t *testing.T) {
		result := ConnectWithTimeout(rpcURL, 10*time.Second)
		require.NoError(t, result.Error)
		require.NotNil(t, result.Client)
	})
}

func TestConnectEmptyURL(t *testing.T) {
	result := Connect("  ")
	require.Error(t, result.Error)
	require.Nil(t, result.Client)
}

func TestKeyFromHex(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	hex := hexutil.Encode(crypto.FromECDSA(key))

	got, err := KeyFromHex(hex)
	require.NoError(t, err)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), crypto.PubkeyToAddress(got.PublicKey))

	_, err = KeyFromHex("")
	require.ErrorIs(t, err, ErrNoKey)

	_, err = KeyFromHex("zz")
	require.Error(t, err)
}

func TestKeyFromKeystore(t *testing.T) {
	dir := t.TempDir()
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	acct, err := ks.NewAccount("hunter2")
	require.NoError(t, err)

	path := acct.URL.Path
	if path == "" {
		matches, _ := filepath.Glob(filepath.Join(dir, "*"))
		require.NotEmpty(t, matches)
		path = matches[0]
	}

	key, err := KeyFromKeystore(path, "hunter2")
	require.NoError(t, err)
	require.Equal(t, acct.Address, crypto.PubkeyToAddress(key.PublicKey))

	_, err = KeyFromKeystore(path, "wrong")
	require.Error(t, err)
}
