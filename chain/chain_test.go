package chain_test

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"testing"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/chain/chaintest"
	"cryptodevs-tui/config"
	"cryptodevs-tui/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

var whitelistAddr = common.HexToAddress("0x532C7f4127c10BeD66D80024ba3725efcC738d0e")

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key
}

// whitelistBackend deploys a minimal Whitelist with the given capacity.
func whitelistBackend(max uint8) (*chaintest.Backend, map[common.Address]bool) {
	b := chaintest.New(config.SepoliaChainID)
	joined := map[common.Address]bool{}
	b.Deploy(whitelistAddr, contracts.Whitelist).
		OnCall("whitelistedAddresses", func(_ common.Address, args []any) ([]any, error) {
			return []any{joined[args[0].(common.Address)]}, nil
		}).
		OnCall("numAddressesWhitelisted", func(common.Address, []any) ([]any, error) {
			return []any{uint8(len(joined))}, nil
		}).
		OnCall("maxWhitelistedAddresses", func(common.Address, []any) ([]any, error) {
			return []any{max}, nil
		}).
		OnTransact("addAddressToWhitelist", func(call *chaintest.Call) error {
			if joined[call.From] {
				return errors.New("Sender has already been whitelisted")
			}
			if len(joined) >= int(max) {
				return errors.New("More addresses cant be added, limit reached")
			}
			joined[call.From] = true
			return nil
		})
	return b, joined
}

func TestCheckNetwork(t *testing.T) {
	ctx := context.Background()
	b := chaintest.New(config.SepoliaChainID)
	require.NoError(t, chain.CheckNetwork(ctx, b, config.SepoliaChainID))

	err := chain.CheckNetwork(ctx, b, 1)
	require.ErrorIs(t, err, chain.ErrWrongNetwork)
	var wn *chain.WrongNetworkError
	require.ErrorAs(t, err, &wn)
	require.Equal(t, config.SepoliaChainID, wn.Got)
	require.Equal(t, uint64(1), wn.Want)
	require.Contains(t, err.Error(), "Mainnet")

	b.ChainIDErr = errors.New("dial tcp: refused")
	require.ErrorIs(t, chain.CheckNetwork(ctx, b, config.SepoliaChainID), chain.ErrConnection)
}

func TestWrongNetworkMakesNoCalls(t *testing.T) {
	ctx := context.Background()
	b, _ := whitelistBackend(10)
	b.SetChainID(1)

	_, err := chain.Connect(ctx, b, newKey(t), config.SepoliaChainID)
	require.ErrorIs(t, err, chain.ErrWrongNetwork)
	require.Zero(t, b.ContractCalls())

	// A session on the right chain is re-guarded on every acquisition.
	b.SetChainID(config.SepoliaChainID)
	conn, err := chain.Connect(ctx, b, newKey(t), config.SepoliaChainID)
	require.NoError(t, err)
	b.SetChainID(5)

	_, err = conn.ReadHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.ErrorIs(t, err, chain.ErrWrongNetwork)
	_, err = conn.WriteHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.ErrorIs(t, err, chain.ErrWrongNetwork)
	_, err = conn.Balance(ctx, conn.Address())
	require.ErrorIs(t, err, chain.ErrWrongNetwork)
	require.Zero(t, b.ContractCalls())
}

func TestConnectSession(t *testing.T) {
	ctx := context.Background()
	b := chaintest.New(config.SepoliaChainID)
	key := newKey(t)

	conn, err := chain.Connect(ctx, b, key, config.SepoliaChainID)
	require.NoError(t, err)
	s := conn.Session()
	require.True(t, s.Connected)
	require.Equal(t, config.SepoliaChainID, s.ChainID)
	require.Equal(t, crypto.PubkeyToAddress(key.PublicKey), s.Address)
	require.True(t, conn.CanSign())

	ro, err := chain.Connect(ctx, b, nil, config.SepoliaChainID)
	require.NoError(t, err)
	require.False(t, ro.CanSign())
	_, err = ro.Signer(ctx)
	require.Error(t, err)

	var nilConn *chain.Conn
	_, err = nilConn.Provider(ctx)
	require.ErrorIs(t, err, chain.ErrNotConnected)
	require.False(t, nilConn.Session().Connected)
}

func TestMakeHandle(t *testing.T) {
	b := chaintest.New(config.SepoliaChainID)
	binding := chain.Binding{Backend: b}

	_, err := chain.MakeHandle(common.Address{}, contracts.Whitelist, chain.ReadOnly, binding)
	require.ErrorIs(t, err, chain.ErrMalformedHandle)
	_, err = chain.MakeHandle(whitelistAddr, nil, chain.ReadOnly, binding)
	require.ErrorIs(t, err, chain.ErrMalformedHandle)
	_, err = chain.MakeHandle(whitelistAddr, contracts.Whitelist, chain.Signing, binding)
	require.ErrorIs(t, err, chain.ErrMalformedHandle)
	_, err = chain.MakeHandle(whitelistAddr, contracts.Whitelist, chain.ReadOnly, chain.Binding{})
	require.ErrorIs(t, err, chain.ErrMalformedHandle)

	h, err := chain.MakeHandle(whitelistAddr, contracts.Whitelist, chain.ReadOnly, binding)
	require.NoError(t, err)
	require.Equal(t, whitelistAddr, h.Address)
	require.Equal(t, "read-only", h.Capability.String())
	require.Zero(t, b.ContractCalls())
}

func TestReadAndDefaults(t *testing.T) {
	ctx := context.Background()
	b, joined := whitelistBackend(10)
	key := newKey(t)
	conn, err := chain.Connect(ctx, b, key, config.SepoliaChainID)
	require.NoError(t, err)
	joined[conn.Address()] = true

	h, err := conn.ReadHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.NoError(t, err)

	ok, err := chain.Read[bool](ctx, h, "whitelistedAddresses", conn.Address())
	require.NoError(t, err)
	require.True(t, ok)

	num, err := chain.Read[uint8](ctx, h, "numAddressesWhitelisted")
	require.NoError(t, err)
	require.Equal(t, uint8(1), num)

	// A method the contract does not answer degrades to the default.
	reads := chain.NewReads(nil)
	def := big.NewInt(0)
	got := chain.ReadOr(ctx, reads, h, def, "missing")
	require.Equal(t, def, got)
	require.Error(t, reads.Err())

	reads = chain.NewReads(nil)
	require.Equal(t, uint8(10), chain.ReadOr(ctx, reads, h, uint8(0), "maxWhitelistedAddresses"))
	require.NoError(t, reads.Err())
}

func TestReadRevertReason(t *testing.T) {
	ctx := context.Background()
	b := chaintest.New(config.SepoliaChainID)
	b.Deploy(whitelistAddr, contracts.Whitelist).
		OnCall("numAddressesWhitelisted", func(common.Address, []any) ([]any, error) {
			return nil, errors.New("not today")
		})
	conn, err := chain.Connect(ctx, b, nil, config.SepoliaChainID)
	require.NoError(t, err)
	h, err := conn.ReadHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.NoError(t, err)

	_, err = chain.Read[uint8](ctx, h, "numAddressesWhitelisted")
	require.ErrorIs(t, err, chain.ErrReadFailure)
	require.Equal(t, "not today", chain.Reason(err))
}

func TestZeroBalanceMatchesFailedRead(t *testing.T) {
	ctx := context.Background()
	b := chaintest.New(config.SepoliaChainID)
	conn, err := chain.Connect(ctx, b, newKey(t), config.SepoliaChainID)
	require.NoError(t, err)

	reads := chain.NewReads(nil)
	zero := chain.BalanceOr(ctx, reads, conn, conn.Address())
	require.NoError(t, reads.Err())

	b.SetChainID(1)
	failed := chain.BalanceOr(ctx, reads, conn, conn.Address())
	require.Equal(t, zero.String(), failed.String())
	require.ErrorIs(t, reads.Err(), chain.ErrWrongNetwork)
}

func TestWrite(t *testing.T) {
	ctx := context.Background()
	b, joined := whitelistBackend(1)
	conn, err := chain.Connect(ctx, b, newKey(t), config.SepoliaChainID)
	require.NoError(t, err)
	b.SetBalance(conn.Address(), big.NewInt(1e18))

	h, err := conn.WriteHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.NoError(t, err)

	receipt, err := chain.Write(ctx, h, nil, "addAddressToWhitelist")
	require.NoError(t, err)
	require.Equal(t, uint64(1), receipt.Status)
	require.True(t, joined[conn.Address()])
	require.Len(t, b.Sent, 1)

	// Second join reverts on chain.
	_, err = chain.Write(ctx, h, nil, "addAddressToWhitelist")
	var we *chain.WriteError
	require.ErrorAs(t, err, &we)
	require.Equal(t, chain.Reverted, we.Kind)
	require.Equal(t, "addAddressToWhitelist", we.Method)
	require.NotEqual(t, common.Hash{}, we.TxHash)
}

func TestWriteRejected(t *testing.T) {
	ctx := context.Background()
	b, joined := whitelistBackend(10)
	conn, err := chain.Connect(ctx, b, newKey(t), config.SepoliaChainID)
	require.NoError(t, err)

	b.SendErr = errors.New("user rejected transaction")
	h, err := conn.WriteHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.NoError(t, err)

	_, err = chain.Write(ctx, h, nil, "addAddressToWhitelist")
	var we *chain.WriteError
	require.ErrorAs(t, err, &we)
	require.Equal(t, chain.Rejected, we.Kind)
	require.Equal(t, "user rejected transaction", chain.Reason(err))
	require.Empty(t, joined)

	ro, err := conn.ReadHandle(ctx, whitelistAddr, contracts.Whitelist)
	require.NoError(t, err)
	_, err = chain.Write(ctx, ro, nil, "addAddressToWhitelist")
	require.ErrorIs(t, err, chain.ErrReadOnly)
}

func TestWriteAttachesValue(t *testing.T) {
	ctx := context.Background()
	b := chaintest.New(config.SepoliaChainID)
	nft := common.HexToAddress("0xD44B2e199611812e58dc8e6ccd3189298E8Bc3A8")
	var paid *big.Int
	b.Deploy(nft, contracts.CryptoDevs).
		OnTransact("mint", func(call *chaintest.Call) error {
			paid = call.Value
			return nil
		})
	conn, err := chain.Connect(ctx, b, newKey(t), config.SepoliaChainID)
	require.NoError(t, err)
	b.SetBalance(conn.Address(), big.NewInt(1e18))

	h, err := conn.WriteHandle(ctx, nft, contracts.CryptoDevs)
	require.NoError(t, err)
	_, err = chain.Write(ctx, h, big.NewInt(1e16), "mint")
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1e16), paid)

	bal, err := conn.Balance(ctx, nft)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1e16), bal)
}

func TestNetworkName(t *testing.T) {
	require.Equal(t, "Sepolia", chain.NetworkName(11155111))
	require.Equal(t, "chain 42", chain.NetworkName(42))
}
