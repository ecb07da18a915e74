package chainReader

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// MethodHandler receives decoded call arguments and returns values to ABI-encode.
type MethodHandler func(call ethereum.CallMsg, args []interface{}) ([]interface{}, error)

type methodStub struct {
	method  abi.Method
	handler MethodHandler
}

// FakeChain is an in-memory ChainReader for tests. Contract calls are dispatched by
// selector to handlers registered with Handle.
type FakeChain struct {
	mu sync.Mutex

	code     map[common.Address][]byte
	balances map[common.Address]*big.Int
	nonces   map[common.Address]uint64
	logs     []types.Log
	stubs    map[common.Address][]methodStub

	// Err, when set, is returned from every method.
	Err   error
	Calls []ethereum.CallMsg
}

var _ ChainReader = (*FakeChain)(nil)

func NewFakeChain() *FakeChain {
	return &FakeChain{
		code:     make(map[common.Address][]byte),
		balances: make(map[common.Address]*big.Int),
		nonces:   make(map[common.Address]uint64),
		stubs:    make(map[common.Address][]methodStub),
	}
}

// Handle registers a handler for method on contract.
func (f *FakeChain) Handle(contract common.Address, parsed *abi.ABI, method string, handler MethodHandler) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := parsed.Methods[method]
	if !ok {
		panic(fmt.Sprintf("method %s not in ABI", method))
	}
	f.stubs[contract] = append(f.stubs[contract], methodStub{method: m, handler: handler})
	if _, ok := f.code[contract]; !ok {
		f.code[contract] = []byte{0x60, 0x80}
	}
}

func (f *FakeChain) SetCode(account common.Address, code []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code[account] = code
}

func (f *FakeChain) SetBalance(account common.Address, balance *big.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[account] = balance
}

func (f *FakeChain) SetNonce(account common.Address, nonce uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nonces[account] = nonce
}

func (f *FakeChain) AddLogs(logs ...types.Log) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, logs...)
}

func (f *FakeChain) CodeAt(_ context.Context, account common.Address, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return f.code[account], nil
}

func (f *FakeChain) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if b, ok := f.balances[account]; ok {
		return new(big.Int).Set(b), nil
	}
	return new(big.Int), nil
}

func (f *FakeChain) NonceAt(_ context.Context, account common.Address, _ *big.Int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return 0, f.Err
	}
	return f.nonces[account], nil
}

// FilterLogs matches on address and the first topic only.
func (f *FakeChain) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]types.Log, 0)
	for _, l := range f.logs {
		if len(q.Addresses) > 0 && !containsAddress(q.Addresses, l.Address) {
			continue
		}
		if len(q.Topics) > 0 && len(q.Topics[0]) > 0 {
			if len(l.Topics) == 0 || !containsHash(q.Topics[0], l.Topics[0]) {
				continue
			}
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *FakeChain) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	if f.Err != nil {
		f.mu.Unlock()
		return nil, f.Err
	}
	f.Calls = append(f.Calls, call)
	var to common.Address
	if call.To != nil {
		to = *call.To
	}
	stubs := f.stubs[to]
	f.mu.Unlock()

	if len(call.Data) < 4 {
		return nil, fmt.Errorf("call data too short")
	}
	for _, s := range stubs {
		if !bytes.Equal(s.method.ID, call.Data[:4]) {
			continue
		}
		args, err := s.method.Inputs.Unpack(call.Data[4:])
		if err != nil {
			return nil, fmt.Errorf("failed to unpack %s arguments: %w", s.method.Name, err)
		}
		results, err := s.handler(call, args)
		if err != nil {
			return nil, err
		}
		return s.method.Outputs.Pack(results...)
	}
	return nil, fmt.Errorf("no handler for selector %x on %s", call.Data[:4], to.Hex())
}

func containsAddress(list []common.Address, a common.Address) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func containsHash(list []common.Hash, h common.Hash) bool {
	for _, x := range list {
		if x == h {
			return true
		}
	}
	return false
}

// RevertError mimics the JSON-RPC error returned for a reverted eth_call. It implements rpc.DataError.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string {
	return "execution reverted"
}

func (e *RevertError) ErrorCode() int {
	return 3
}

func (e *RevertError) ErrorData() interface{} {
	return hexutil.Encode(e.Data)
}
