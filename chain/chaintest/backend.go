// Package chaintest provides an in-memory rpc.Backend whose contracts are Go
// closures keyed by ABI method name.
package chaintest

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// ViewFunc answers an eth_call. Returned values must match the ABI output types.
type ViewFunc func(from common.Address, args []any) ([]any, error)

// TxFunc applies a transaction. A non-nil error mines the tx with failed status.
type TxFunc func(call *Call) error

// Call is the transaction a TxFunc is applying.
type Call struct {
	From     common.Address
	Value    *big.Int
	Args     []any
	Contract common.Address

	b *Backend
}

// Pay moves wei of native balance from the contract to addr.
func (c *Call) Pay(addr common.Address, wei *big.Int) {
	c.b.addBalance(c.Contract, new(big.Int).Neg(wei))
	c.b.addBalance(addr, wei)
}

// Balance is the native balance of addr, including the value attached to
// this call once it succeeds.
func (c *Call) Balance(addr common.Address) *big.Int {
	bal := new(big.Int)
	if cur, ok := c.b.balances[addr]; ok {
		bal.Set(cur)
	}
	return bal
}

// Contract is a fake deployed contract.
type Contract struct {
	Address common.Address
	ABI     *abi.ABI
	views   map[string]ViewFunc
	txs     map[string]TxFunc
}

// OnCall registers the handler for a view method.
func (c *Contract) OnCall(method string, fn ViewFunc) *Contract {
	c.views[method] = fn
	return c
}

// OnTransact registers the handler for a state-changing method.
func (c *Contract) OnTransact(method string, fn TxFunc) *Contract {
	c.txs[method] = fn
	return c
}

// Backend is a fake node. All methods are safe for concurrent use.
type Backend struct {
	mu sync.Mutex

	chainID   uint64
	contracts map[common.Address]*Contract
	balances  map[common.Address]*big.Int
	nonces    map[common.Address]uint64
	receipts  map[common.Hash]*types.Receipt
	block     uint64

	calls      int
	sends      int
	callCounts map[string]int

	// ChainIDErr makes ChainID fail.
	ChainIDErr error
	// SendErr makes SendTransaction fail, as a wallet rejection would.
	SendErr error
	// Sent collects every accepted transaction.
	Sent []*types.Transaction
}

// New returns a backend reporting chainID.
func New(chainID uint64) *Backend {
	return &Backend{
		chainID:    chainID,
		contracts:  make(map[common.Address]*Contract),
		balances:   make(map[common.Address]*big.Int),
		nonces:     make(map[common.Address]uint64),
		receipts:   make(map[common.Hash]*types.Receipt),
		callCounts: make(map[string]int),
	}
}

// SetChainID changes the reported chain id, as a user switching networks would.
func (b *Backend) SetChainID(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chainID = id
}

// Deploy registers a contract at addr.
func (b *Backend) Deploy(addr common.Address, parsed *abi.ABI) *Contract {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := &Contract{Address: addr, ABI: parsed, views: make(map[string]ViewFunc), txs: make(map[string]TxFunc)}
	b.contracts[addr] = c
	return c
}

// Do runs fn while holding the backend lock, so fn may touch state that
// handlers read.
func (b *Backend) Do(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn()
}

// SetBalance sets the native balance of addr.
func (b *Backend) SetBalance(addr common.Address, wei *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[addr] = new(big.Int).Set(wei)
}

// AddBalance adjusts the native balance of addr by delta.
func (b *Backend) AddBalance(addr common.Address, delta *big.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addBalance(addr, delta)
}

func (b *Backend) addBalance(addr common.Address, delta *big.Int) {
	cur, ok := b.balances[addr]
	if !ok {
		cur = new(big.Int)
	}
	b.balances[addr] = new(big.Int).Add(cur, delta)
}

// ContractCalls counts eth_call and eth_sendRawTransaction requests.
func (b *Backend) ContractCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls + b.sends
}

// CallCount counts eth_call requests for one method name.
func (b *Backend) CallCount(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.callCounts[method]
}

// ChainID implements rpc.Backend.
func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ChainIDErr != nil {
		return nil, b.ChainIDErr
	}
	return new(big.Int).SetUint64(b.chainID), nil
}

// BalanceAt implements rpc.Backend.
func (b *Backend) BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bal, ok := b.balances[account]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

// CodeAt implements bind.ContractCaller.
func (b *Backend) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.contracts[contract]; ok {
		return []byte{0x60, 0x80}, nil
	}
	return nil, nil
}

// PendingCodeAt implements bind.ContractTransactor.
func (b *Backend) PendingCodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	return b.CodeAt(ctx, account, nil)
}

// CallContract implements bind.ContractCaller.
func (b *Backend) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++

	c, method, args, err := b.decode(call.To, call.Data)
	if err != nil {
		return nil, err
	}
	b.callCounts[method.Name]++
	fn, ok := c.views[method.Name]
	if !ok {
		return nil, fmt.Errorf("chaintest: no view handler for %s", method.Name)
	}
	out, err := fn(call.From, args)
	if err != nil {
		return nil, NewRevert(err.Error())
	}
	return method.Outputs.Pack(out...)
}

func (b *Backend) decode(to *common.Address, data []byte) (*Contract, *abi.Method, []any, error) {
	if to == nil {
		return nil, nil, nil, errors.New("chaintest: call without target")
	}
	c, ok := b.contracts[*to]
	if !ok {
		return nil, nil, nil, fmt.Errorf("chaintest: no contract at %s", to.Hex())
	}
	if len(data) < 4 {
		return nil, nil, nil, errors.New("chaintest: short calldata")
	}
	method, err := c.ABI.MethodById(data[:4])
	if err != nil {
		return nil, nil, nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, nil, err
	}
	return c, method, args, nil
}

// HeaderByNumber implements bind.ContractTransactor.
func (b *Backend) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &types.Header{Number: new(big.Int).SetUint64(b.block), BaseFee: big.NewInt(1_000_000_000)}, nil
}

// PendingNonceAt implements bind.ContractTransactor.
func (b *Backend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonces[account], nil
}

// SuggestGasPrice implements bind.ContractTransactor.
func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(2_000_000_000), nil
}

// SuggestGasTipCap implements bind.ContractTransactor.
func (b *Backend) SuggestGasTipCap(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

// EstimateGas implements bind.ContractTransactor.
func (b *Backend) EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error) {
	return 200_000, nil
}

// SendTransaction implements bind.ContractTransactor. The transaction is
// applied and mined immediately.
func (b *Backend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sends++
	if b.SendErr != nil {
		return b.SendErr
	}

	from, err := types.Sender(types.LatestSignerForChainID(new(big.Int).SetUint64(b.chainID)), tx)
	if err != nil {
		return err
	}
	b.nonces[from] = tx.Nonce() + 1
	b.block++

	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		TxHash:      tx.Hash(),
		BlockNumber: new(big.Int).SetUint64(b.block),
		GasUsed:     21_000,
	}
	b.Sent = append(b.Sent, tx)
	b.receipts[tx.Hash()] = receipt

	if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		b.contracts[receipt.ContractAddress] = &Contract{
			Address: receipt.ContractAddress,
			ABI:     &abi.ABI{},
			views:   make(map[string]ViewFunc),
			txs:     make(map[string]TxFunc),
		}
		return nil
	}

	c, method, args, err := b.decode(tx.To(), tx.Data())
	if err != nil {
		receipt.Status = types.ReceiptStatusFailed
		return nil
	}
	fn, ok := c.txs[method.Name]
	if !ok {
		receipt.Status = types.ReceiptStatusFailed
		return nil
	}
	// Value is credited up front and returned if the call fails.
	value := tx.Value()
	b.addBalance(from, new(big.Int).Neg(value))
	b.addBalance(c.Address, value)
	if err := fn(&Call{From: from, Value: value, Args: args, Contract: c.Address, b: b}); err != nil {
		b.addBalance(c.Address, new(big.Int).Neg(value))
		b.addBalance(from, value)
		receipt.Status = types.ReceiptStatusFailed
		return nil
	}
	return nil
}

// TransactionReceipt implements bind.DeployBackend.
func (b *Backend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.receipts[txHash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

// FilterLogs implements bind.ContractFilterer.
func (b *Backend) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return nil, nil
}

// SubscribeFilterLogs implements bind.ContractFilterer.
func (b *Backend) SubscribeFilterLogs(ctx context.Context, q ethereum.FilterQuery, ch chan<- types.Log) (ethereum.Subscription, error) {
	return nil, errors.New("chaintest: subscriptions not supported")
}

// RevertError mimics the JSON-RPC error a node returns for a reverted call.
type RevertError struct {
	reason string
	data   string
}

// NewRevert builds a revert error carrying an ABI encoded Error(string).
func NewRevert(reason string) *RevertError {
	strType, _ := abi.NewType("string", "", nil)
	packed, _ := abi.Arguments{{Type: strType}}.Pack(reason)
	selector := crypto.Keccak256([]byte("Error(string)"))[:4]
	return &RevertError{reason: reason, data: hexutil.Encode(append(selector, packed...))}
}

func (e *RevertError) Error() string { return "execution reverted: " + e.reason }

// ErrorData implements rpc.DataError.
func (e *RevertError) ErrorData() interface{} { return e.data }
