package rpc

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestGenerateQRCode(t *testing.T) {
	qr := GenerateQRCode("https://sepolia.etherscan.io/tx/0x01")
	require.NotEmpty(t, qr)
	lines := strings.Split(qr, "\n")
	require.Greater(t, len(lines), 5)
	// every row of the code is the same width
	for _, l := range lines[1:] {
		require.Equal(t, len([]rune(lines[0])), len([]rune(l)))
	}
}

func TestExplorerTxURL(t *testing.T) {
	h := common.HexToHash("0xabc")
	require.Equal(t, "https://sepolia.etherscan.io/tx/"+h.Hex(), ExplorerTxURL("", h))
	require.Equal(t, "https://example.org/tx/"+h.Hex(), ExplorerTxURL("https://example.org/", h))
}
