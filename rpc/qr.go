package rpc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mdp/qrterminal/v3"
)

// DefaultExplorer is used when the config names no block explorer.
const DefaultExplorer = "https://sepolia.etherscan.io"

// GenerateQRCode renders text as a half-block QR code for the terminal
func GenerateQRCode(text string) string {
	var buf bytes.Buffer
	qrterminal.GenerateWithConfig(text, qrterminal.Config{
		Level:          qrterminal.L,
		Writer:         &buf,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		QuietZone:      1,
	})
	return strings.TrimRight(buf.String(), "\n")
}

// ExplorerTxURL links a transaction on the explorer, falling back to
// DefaultExplorer.
func ExplorerTxURL(explorer string, tx common.Hash) string {
	explorer = strings.TrimRight(strings.TrimSpace(explorer), "/")
	if explorer == "" {
		explorer = DefaultExplorer
	}
	return fmt.Sprintf("%s/tx/%s", explorer, tx.Hex())
}
