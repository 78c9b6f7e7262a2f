package helpers

import (
	"fmt"
	"math/big"
)

// SwapQuote represents the result of a swap price query against the exchange
type SwapQuote struct {
	AmountIn       *big.Int // Input amount
	AmountOut      *big.Int // Expected output amount
	ReserveIn      *big.Int // Reserve of the sold asset
	ReserveOut     *big.Int // Reserve of the bought asset
	PriceImpact    float64  // Price impact percentage
	EffectivePrice float64  // Effective price (output/input)
}

// AmountOut mirrors the exchange's getAmountOfTokens:
// out = (in * 99 * reserveOut) / (reserveIn * 100 + in * 99)
// The 99/100 factor is the 1% liquidity provider fee.
func AmountOut(amountIn, reserveIn, reserveOut *big.Int) *big.Int {
	if amountIn == nil || reserveIn == nil || reserveOut == nil || amountIn.Sign() <= 0 || reserveOut.Sign() <= 0 {
		return new(big.Int)
	}
	amountInWithFee := new(big.Int).Mul(amountIn, big.NewInt(99))
	numerator := new(big.Int).Mul(amountInWithFee, reserveOut)
	denominator := new(big.Int).Add(new(big.Int).Mul(reserveIn, big.NewInt(100)), amountInWithFee)
	return numerator.Div(numerator, denominator)
}

// NewSwapQuote derives effective price and price impact for a swap of amountIn
// returning amountOut. amountOut normally comes from the contract itself.
func NewSwapQuote(amountIn, amountOut, reserveIn, reserveOut *big.Int) *SwapQuote {
	q := &SwapQuote{AmountIn: amountIn, AmountOut: amountOut, ReserveIn: reserveIn, ReserveOut: reserveOut}

	if amountIn.Sign() > 0 {
		priceFloat := new(big.Float).Quo(new(big.Float).SetInt(amountOut), new(big.Float).SetInt(amountIn))
		q.EffectivePrice, _ = priceFloat.Float64()
	}

	// Price impact: how much worse than the reserve ratio
	if reserveIn.Sign() > 0 && reserveOut.Sign() > 0 {
		spot, _ := new(big.Float).Quo(new(big.Float).SetInt(reserveOut), new(big.Float).SetInt(reserveIn)).Float64()
		if spot > 0 {
			q.PriceImpact = ((spot - q.EffectivePrice) / spot) * 100
		}
	}
	return q
}

// FormatSwapQuote returns a human-readable string for a swap quote.
// Both sides of the exchange use 18 decimals.
func FormatSwapQuote(quote *SwapQuote, tokenInSymbol, tokenOutSymbol string) string {
	if quote == nil {
		return "No quote available"
	}
	return fmt.Sprintf("%s → %s (impact: %.2f%%)",
		FormatToken(quote.AmountIn, 18, tokenInSymbol),
		FormatToken(quote.AmountOut, 18, tokenOutSymbol),
		quote.PriceImpact)
}
