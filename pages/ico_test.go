package pages

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// giveNFTs mints n CryptoDevs to the user directly.
func (w *world) giveNFTs(n int) {
	for i := 0; i < n; i++ {
		w.nftOwners = append(w.nftOwners, w.user)
	}
}

func TestCountUnclaimedIdempotent(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	env := w.env(t, w.userKey)
	w.giveNFTs(3)
	w.nftOwners = append(w.nftOwners, w.owner)
	w.claimed[2] = true

	first, err := CountUnclaimed(ctx, env, w.user)
	require.NoError(t, err)
	require.Equal(t, int64(2), first)

	sent := len(w.b.Sent)
	second, err := CountUnclaimed(ctx, env, w.user)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, sent, len(w.b.Sent))
	// One index lookup and one claimed check per NFT per scan.
	require.Equal(t, 6, w.b.CallCount("tokenOfOwnerByIndex"))
	require.Equal(t, 6, w.b.CallCount("tokenIdsClaimed"))
}

func TestClaimDrivesEligibilityToZero(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	env := w.env(t, w.userKey)
	w.giveNFTs(2)

	s, err := LoadICO(ctx, env)
	require.NoError(t, err)
	require.NoError(t, s.Err)
	require.Equal(t, int64(2), s.Unclaimed)
	require.Equal(t, eth(20), s.ClaimableTokens())

	_, err = ClaimTokens(ctx, env)
	require.NoError(t, err)

	s, err = LoadICO(ctx, env)
	require.NoError(t, err)
	require.Zero(t, s.Unclaimed)
	require.Equal(t, eth(20), s.Balance)
	require.Equal(t, eth(20), s.TotalSupply)

	// Nothing left to claim.
	_, err = ClaimTokens(ctx, env)
	require.Error(t, err)
}

func TestMintTokens(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	env := w.env(t, w.userKey)

	before, err := LoadICO(ctx, env)
	require.NoError(t, err)

	_, err = MintTokens(ctx, env, 5)
	require.NoError(t, err)

	after, err := LoadICO(ctx, env)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Add(before.Balance, eth(5)), after.Balance)

	paid, err := env.Conn.Balance(ctx, tokenAddr)
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Mul(TokenPrice, big.NewInt(5)), paid)

	_, err = MintTokens(ctx, env, 0)
	require.ErrorIs(t, err, ErrZeroAmount)
}

func TestICOOwnerWithdraw(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	user := w.env(t, w.userKey)
	owner := w.env(t, w.ownerKey)

	_, err := MintTokens(ctx, user, 10)
	require.NoError(t, err)

	s, err := LoadICO(ctx, owner)
	require.NoError(t, err)
	require.True(t, s.IsOwner)
	require.Equal(t, new(big.Int).Mul(TokenPrice, big.NewInt(10)), s.ContractBalance)

	s, err = LoadICO(ctx, user)
	require.NoError(t, err)
	require.False(t, s.IsOwner)
	require.Zero(t, s.ContractBalance.Sign())

	_, err = WithdrawICO(ctx, user)
	require.Error(t, err)
	_, err = WithdrawICO(ctx, owner)
	require.NoError(t, err)
	s, err = LoadICO(ctx, owner)
	require.NoError(t, err)
	require.Zero(t, s.ContractBalance.Sign())
}

func TestFailedReadReturnsDefault(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	env := w.env(t, w.userKey)

	_, err := MintTokens(ctx, env, 1)
	require.NoError(t, err)
	w.failSupply = true

	s, err := LoadICO(ctx, env)
	require.NoError(t, err)
	require.Zero(t, s.TotalSupply.Sign())
	require.Equal(t, eth(1), s.Balance)
	require.Error(t, s.Err)
	require.Contains(t, s.Err.Error(), "totalSupply")
}
