package pages

import (
	"context"
	"math/big"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/contracts"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	// TokensPerNFT is how many CD each unclaimed CryptoDev NFT is worth.
	TokensPerNFT = 10
	// MaxTotalSupply of CD, in whole tokens.
	MaxTotalSupply = 10000
)

// TokenPrice is the cost of one whole CD token.
var TokenPrice = ether(1) // 0.001 ETH

var tokenUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// ICOSnapshot is everything the ICO page renders.
type ICOSnapshot struct {
	Unclaimed       int64 // NFTs whose tokens are still claimable
	Balance         *big.Int
	TotalSupply     *big.Int
	IsOwner         bool
	ContractBalance *big.Int
	Err             error
}

// ClaimableTokens is the CD amount, in token units, a claim would mint.
func (s ICOSnapshot) ClaimableTokens() *big.Int {
	n := new(big.Int).Mul(big.NewInt(s.Unclaimed), big.NewInt(TokensPerNFT))
	return n.Mul(n, tokenUnit)
}

// CountUnclaimed walks the owner's NFTs and counts those whose token id has
// not been claimed yet. Any failure counts as zero.
func CountUnclaimed(ctx context.Context, env Env, owner common.Address) (int64, error) {
	nft, err := env.reader(ctx, "nft", env.Contracts.NFT, contracts.CryptoDevs)
	if err != nil {
		return 0, err
	}
	token, err := env.reader(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken)
	if err != nil {
		return 0, err
	}

	balance, err := chain.Read[*big.Int](ctx, nft, "balanceOf", owner)
	if err != nil {
		return 0, err
	}
	var unclaimed int64
	for i := int64(0); i < balance.Int64(); i++ {
		id, err := chain.Read[*big.Int](ctx, nft, "tokenOfOwnerByIndex", owner, big.NewInt(i))
		if err != nil {
			return 0, err
		}
		claimed, err := chain.Read[bool](ctx, token, "tokenIdsClaimed", id)
		if err != nil {
			return 0, err
		}
		if !claimed {
			unclaimed++
		}
	}
	return unclaimed, nil
}

// LoadICO reads the claim eligibility and token balances.
func LoadICO(ctx context.Context, env Env) (ICOSnapshot, error) {
	token, err := env.reader(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken)
	if err != nil {
		return ICOSnapshot{}, err
	}

	r := env.reads()
	var s ICOSnapshot
	if n, err := CountUnclaimed(ctx, env, env.Conn.Address()); err != nil {
		r.Fail("unclaimed", err)
	} else {
		s.Unclaimed = n
	}
	s.Balance = chain.ReadOr(ctx, r, token, new(big.Int), "balanceOf", env.Conn.Address())
	s.TotalSupply = chain.ReadOr(ctx, r, token, new(big.Int), "totalSupply")
	s.IsOwner = env.isOwner(chain.ReadOr(ctx, r, token, common.Address{}, "owner"))
	if s.IsOwner {
		s.ContractBalance = chain.BalanceOr(ctx, r, env.Conn, token.Address)
	} else {
		s.ContractBalance = new(big.Int)
	}
	s.Err = r.Err()
	return s, nil
}

// ClaimTokens mints TokensPerNFT CD for every unclaimed NFT held.
func ClaimTokens(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken, nil, "claim")
}

// MintTokens buys amount whole CD tokens at TokenPrice each. The contract
// scales the amount to token units itself.
func MintTokens(ctx context.Context, env Env, amount int64) (*types.Receipt, error) {
	if amount <= 0 {
		return nil, ErrZeroAmount
	}
	n := big.NewInt(amount)
	value := new(big.Int).Mul(TokenPrice, n)
	return env.send(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken, value, "mint", n)
}

// WithdrawICO sends the ICO proceeds to the owner.
func WithdrawICO(ctx context.Context, env Env) (*types.Receipt, error) {
	return env.send(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken, nil, "withdraw")
}
