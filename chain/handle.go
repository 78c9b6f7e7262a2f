package chain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Capability says whether a handle may submit transactions.
type Capability int

const (
	ReadOnly Capability = iota
	Signing
)

func (c Capability) String() string {
	if c == Signing {
		return "signing"
	}
	return "read-only"
}

// Binding is what a handle is bound to: the node, the caller address used for
// eth_call, and for Signing handles the transact options.
type Binding struct {
	Backend interface {
		bind.ContractBackend
		bind.DeployBackend
	}
	From   common.Address
	Signer *bind.TransactOpts
}

// Handle is an immutable callable view of one deployed contract.
type Handle struct {
	Address    common.Address
	ABI        *abi.ABI
	Capability Capability

	binding Binding
	bound   *bind.BoundContract
}

// MakeHandle builds a handle without any I/O.
func MakeHandle(address common.Address, descriptor *abi.ABI, capability Capability, b Binding) (*Handle, error) {
	switch {
	case address == (common.Address{}):
		return nil, fmt.Errorf("%w: zero address", ErrMalformedHandle)
	case descriptor == nil:
		return nil, fmt.Errorf("%w: no interface descriptor", ErrMalformedHandle)
	case b.Backend == nil:
		return nil, fmt.Errorf("%w: no backend", ErrMalformedHandle)
	case capability == Signing && b.Signer == nil:
		return nil, fmt.Errorf("%w: signing handle without signer", ErrMalformedHandle)
	}

	return &Handle{
		Address:    address,
		ABI:        descriptor,
		Capability: capability,
		binding:    b,
		bound:      bind.NewBoundContract(address, *descriptor, b.Backend, b.Backend, b.Backend),
	}, nil
}
