package helpers

import (
	"fmt"
	"image/color"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
)

// ShortenAddr shortens an Ethereum address for display
func ShortenAddr(addr string) string {
	if len(addr) < 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// IsValidEthAddress checks if a string is a valid Ethereum address
func IsValidEthAddress(s string) bool {
	re := regexp.MustCompile("^0x[0-9a-fA-F]{40}$")
	return re.MatchString(s)
}

// FormatETH formats Wei to ETH with proper decimals
func FormatETH(wei *big.Int) string {
	if wei == nil {
		return "0 ETH"
	}
	eth := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18))
	return eth.Text('f', 6) + " ETH"
}

// FormatToken formats token balance with proper decimals
func FormatToken(balance *big.Int, decimals uint8, symbol string) string {
	if balance == nil {
		return "0 " + symbol
	}
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	amount := new(big.Float).Quo(new(big.Float).SetInt(balance), divisor)
	return amount.Text('f', 4) + " " + symbol
}

// LoadedAt formats the loaded timestamp
func LoadedAt(t time.Time, loading bool) string {
	if loading {
		return "loading…"
	}
	if t.IsZero() {
		return "never"
	}
	return t.Format("15:04:05")
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(s))
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var result string
	for i, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		result += baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c))
	}
	return result
}

// ParseUnits converts a decimal string such as "0.25" into an integer amount
// with the given number of decimals.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}
	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("%q has more than %d decimals", s, decimals)
	}
	if whole == "" {
		whole = "0"
	}
	digits := whole + frac + strings.Repeat("0", int(decimals)-len(frac))
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// ParseEther converts an ETH amount string to wei
func ParseEther(s string) (*big.Int, error) {
	return ParseUnits(s, 18)
}
