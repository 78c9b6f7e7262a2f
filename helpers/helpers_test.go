package helpers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	cases := map[string]string{
		"1":     "1000000000000000000",
		"0.01":  "10000000000000000",
		".5":    "500000000000000000",
		"0.001": "1000000000000000",
		"12":    "12000000000000000000",
	}
	for in, want := range cases {
		got, err := ParseEther(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got.String(), in)
	}

	for _, bad := range []string{"", "abc", "-1", "1.2.3", "0.0000000000000000001"} {
		_, err := ParseEther(bad)
		require.Error(t, err, bad)
	}
}

func TestFormatETH(t *testing.T) {
	require.Equal(t, "0 ETH", FormatETH(nil))
	require.Equal(t, "0.010000 ETH", FormatETH(big.NewInt(1e16)))
	require.Equal(t, "10.0000 CD", FormatToken(new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18)), 18, "CD"))
}

func TestShortenAddr(t *testing.T) {
	require.Equal(t, "0x532C…8d0e", ShortenAddr("0x532C7f4127c10BeD66D80024ba3725efcC738d0e"))
	require.Equal(t, "0x12", ShortenAddr("0x12"))
	require.True(t, IsValidEthAddress("0x532C7f4127c10BeD66D80024ba3725efcC738d0e"))
	require.False(t, IsValidEthAddress("0x532C"))
}

func TestAmountOut(t *testing.T) {
	eth := big.NewInt(1e18)
	// 10 ETH / 1000 CD pool, sell 1 ETH.
	in := new(big.Int).Set(eth)
	reserveIn := new(big.Int).Mul(big.NewInt(10), eth)
	reserveOut := new(big.Int).Mul(big.NewInt(1000), eth)

	out := AmountOut(in, reserveIn, reserveOut)
	// 99e18 * 1000e18 / (1000e18 + 99e18)
	want := new(big.Int).Mul(big.NewInt(99), eth)
	want.Mul(want, reserveOut)
	want.Div(want, new(big.Int).Mul(big.NewInt(1099), eth))
	require.Equal(t, want, out)

	require.Zero(t, AmountOut(big.NewInt(0), reserveIn, reserveOut).Sign())
	require.Zero(t, AmountOut(in, reserveIn, big.NewInt(0)).Sign())
}

func TestSwapQuote(t *testing.T) {
	eth := big.NewInt(1e18)
	reserveIn := new(big.Int).Mul(big.NewInt(10), eth)
	reserveOut := new(big.Int).Mul(big.NewInt(1000), eth)
	in := new(big.Int).Set(eth)

	q := NewSwapQuote(in, AmountOut(in, reserveIn, reserveOut), reserveIn, reserveOut)
	require.InDelta(t, 90.08, q.EffectivePrice, 0.01)
	// Spot is 100 CD/ETH, so impact is roughly 9.9%.
	require.InDelta(t, 9.92, q.PriceImpact, 0.01)
	require.Contains(t, FormatSwapQuote(q, "ETH", "CD"), "1.0000 ETH → 90.0819 CD")

	empty := NewSwapQuote(big.NewInt(0), big.NewInt(0), big.NewInt(0), big.NewInt(0))
	require.Zero(t, empty.PriceImpact)
	require.Equal(t, "No quote available", FormatSwapQuote(nil, "ETH", "CD"))
}
