package pages

import (
	"context"
	"math/big"

	"cryptodevs-tui/chain"
	"cryptodevs-tui/contracts"
	"cryptodevs-tui/helpers"

	"github.com/ethereum/go-ethereum/core/types"
)

// ExchangeTab is the selected section of the exchange page.
type ExchangeTab int

const (
	TabLiquidity ExchangeTab = iota
	TabSwap
)

func (t ExchangeTab) String() string {
	if t == TabSwap {
		return "Swap"
	}
	return "Liquidity"
}

// SwapDirection says which asset is sold.
type SwapDirection int

const (
	EthToCD SwapDirection = iota
	CDToEth
)

func (d SwapDirection) String() string {
	if d == CDToEth {
		return "CD → ETH"
	}
	return "ETH → CD"
}

// ExchangeSnapshot is everything the exchange page renders.
type ExchangeSnapshot struct {
	EtherBalance  *big.Int // user
	CDBalance     *big.Int // user
	LPBalance     *big.Int // user
	CDReserve     *big.Int
	EtherReserve  *big.Int
	LPTotalSupply *big.Int
	Err           error
}

// LoadExchange reads balances of the user and the pool.
func LoadExchange(ctx context.Context, env Env) (ExchangeSnapshot, error) {
	ex, err := env.reader(ctx, "exchange", env.Contracts.Exchange, contracts.Exchange)
	if err != nil {
		return ExchangeSnapshot{}, err
	}
	token, err := env.reader(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken)
	if err != nil {
		return ExchangeSnapshot{}, err
	}

	me := env.Conn.Address()
	r := env.reads()
	s := ExchangeSnapshot{
		EtherBalance:  chain.BalanceOr(ctx, r, env.Conn, me),
		CDBalance:     chain.ReadOr(ctx, r, token, new(big.Int), "balanceOf", me),
		LPBalance:     chain.ReadOr(ctx, r, ex, new(big.Int), "balanceOf", me),
		CDReserve:     chain.ReadOr(ctx, r, ex, new(big.Int), "getReserve"),
		EtherReserve:  chain.BalanceOr(ctx, r, env.Conn, ex.Address),
		LPTotalSupply: chain.ReadOr(ctx, r, ex, new(big.Int), "totalSupply"),
	}
	s.Err = r.Err()
	return s, nil
}

// CalculateCD is the CD amount that must accompany addEther to keep the pool
// ratio: addEther * cdReserve / ethReserve. Zero for an empty pool, where the
// user picks both amounts.
func CalculateCD(addEther, ethReserve, cdReserve *big.Int) *big.Int {
	if addEther == nil || ethReserve == nil || cdReserve == nil || ethReserve.Sign() == 0 {
		return new(big.Int)
	}
	cd := new(big.Int).Mul(addEther, cdReserve)
	return cd.Div(cd, ethReserve)
}

// TokensAfterRemove previews what burning lp tokens returns.
func TokensAfterRemove(lp, ethReserve, cdReserve, lpSupply *big.Int) (eth, cd *big.Int) {
	if lp == nil || lpSupply == nil || lpSupply.Sign() == 0 {
		return new(big.Int), new(big.Int)
	}
	eth = new(big.Int).Mul(ethReserve, lp)
	eth.Div(eth, lpSupply)
	cd = new(big.Int).Mul(cdReserve, lp)
	cd.Div(cd, lpSupply)
	return eth, cd
}

func reserves(s ExchangeSnapshot, dir SwapDirection) (in, out *big.Int) {
	if dir == CDToEth {
		return s.CDReserve, s.EtherReserve
	}
	return s.EtherReserve, s.CDReserve
}

// EstimateSwap prices a swap from the snapshot reserves without a node call.
// The swap form shows it while the amount is typed.
func EstimateSwap(s ExchangeSnapshot, amount *big.Int, dir SwapDirection) *big.Int {
	in, out := reserves(s, dir)
	return helpers.AmountOut(amount, in, out)
}

// QuoteSwap asks the exchange how much of the other asset amount buys.
func QuoteSwap(ctx context.Context, env Env, s ExchangeSnapshot, amount *big.Int, dir SwapDirection) (*helpers.SwapQuote, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	ex, err := env.reader(ctx, "exchange", env.Contracts.Exchange, contracts.Exchange)
	if err != nil {
		return nil, err
	}
	in, out := reserves(s, dir)
	got, err := chain.Read[*big.Int](ctx, ex, "getAmountOfTokens", amount, in, out)
	if err != nil {
		return nil, err
	}
	return helpers.NewSwapQuote(amount, got, in, out), nil
}

// Swap sells amount and requires at least minOut back.
func Swap(ctx context.Context, env Env, amount, minOut *big.Int, dir SwapDirection) (*types.Receipt, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if minOut == nil {
		minOut = new(big.Int)
	}
	ex, err := env.writer(ctx, "exchange", env.Contracts.Exchange, contracts.Exchange)
	if err != nil {
		return nil, err
	}
	if dir == EthToCD {
		return env.transact(ctx, "exchange", ex, amount, "ethToCryptoDevToken", minOut)
	}
	if _, err := approve(ctx, env, ex, amount); err != nil {
		return nil, err
	}
	return env.transact(ctx, "exchange", ex, nil, "cryptoDevTokenToEth", amount, minOut)
}

// AddLiquidity approves addCD to the exchange and deposits it with addEther.
func AddLiquidity(ctx context.Context, env Env, addCD, addEther *big.Int) (*types.Receipt, error) {
	if addEther == nil || addEther.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	if addCD == nil {
		addCD = new(big.Int)
	}
	ex, err := env.writer(ctx, "exchange", env.Contracts.Exchange, contracts.Exchange)
	if err != nil {
		return nil, err
	}
	if _, err := approve(ctx, env, ex, addCD); err != nil {
		return nil, err
	}
	return env.transact(ctx, "exchange", ex, addEther, "addLiquidity", addCD)
}

// RemoveLiquidity burns lp tokens for their share of both reserves.
func RemoveLiquidity(ctx context.Context, env Env, lp *big.Int) (*types.Receipt, error) {
	if lp == nil || lp.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	return env.send(ctx, "exchange", env.Contracts.Exchange, contracts.Exchange, nil, "removeLiquidity", lp)
}

func approve(ctx context.Context, env Env, ex *chain.Handle, amount *big.Int) (*types.Receipt, error) {
	token, err := env.writer(ctx, "token", env.Contracts.Token, contracts.CryptoDevToken)
	if err != nil {
		return nil, err
	}
	return env.transact(ctx, "token", token, nil, "approve", ex.Address, amount)
}
