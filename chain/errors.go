package chain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	// ErrWrongNetwork matches any *WrongNetworkError.
	ErrWrongNetwork = errors.New("wrong network")
	// ErrNotConnected is returned by operations on a nil or closed Conn.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrConnection wraps failures reaching the node.
	ErrConnection = errors.New("connection failure")
	// ErrReadFailure wraps every failed read call.
	ErrReadFailure = errors.New("read failed")
	// ErrMalformedHandle is returned by MakeHandle for unusable inputs.
	ErrMalformedHandle = errors.New("malformed contract handle")
	// ErrReadOnly is returned when writing through a ReadOnly handle.
	ErrReadOnly = errors.New("handle is read-only")
)

// WrongNetworkError reports the chain id the wallet is on versus the one the pages need.
type WrongNetworkError struct {
	Got  uint64
	Want uint64
}

func (e *WrongNetworkError) Error() string {
	return fmt.Sprintf("connected to chain %d, expected %d (%s)", e.Got, e.Want, NetworkName(e.Want))
}

func (e *WrongNetworkError) Is(target error) bool { return target == ErrWrongNetwork }

// WriteKind separates signing/submission failures from on-chain reverts.
type WriteKind int

const (
	Rejected WriteKind = iota
	Reverted
)

func (k WriteKind) String() string {
	if k == Reverted {
		return "reverted"
	}
	return "rejected"
}

// WriteError is returned by Write when a transaction could not be submitted
// or was mined with a failed status.
type WriteError struct {
	Kind   WriteKind
	Method string
	TxHash common.Hash
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Reason returns the human readable part of an error for alerts: the decoded
// revert string when the node returned revert data, otherwise the error text.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	var de rpc.DataError
	if errors.As(err, &de) {
		if s, ok := de.ErrorData().(string); ok {
			if data, decErr := hexutil.Decode(s); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
					return reason
				}
			}
		}
		return de.Error()
	}
	var we *WriteError
	if errors.As(err, &we) && we.Err != nil {
		return we.Err.Error()
	}
	return err.Error()
}

// NetworkName gives a display name for well known chain ids.
func NetworkName(id uint64) string {
	switch id {
	case 1:
		return "Mainnet"
	case 11155111:
		return "Sepolia"
	case 17000:
		return "Holesky"
	case 31337:
		return "Hardhat"
	default:
		return fmt.Sprintf("chain %d", id)
	}
}
