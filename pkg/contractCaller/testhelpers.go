package contractCaller

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/contractCaller/caller"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP6KeyManager"
)

// MockContractCallerStub provides a minimal stub implementation of IContractCaller for testing.
// Nonces are served per (keyManager, channel) and advance on every successful ExecuteRelayCall.
type MockContractCallerStub struct {
	mu sync.Mutex

	nonces map[string]uint64

	// ExecuteRelayCallFunc, when set, replaces the default successful receipt.
	ExecuteRelayCallFunc func(call *caller.RelayCall) (*ethTypes.Receipt, error)
	// SimulateFunc, when set, replaces the default empty return data.
	SimulateFunc func(call *caller.RelayCall) ([]byte, error)
	// NonceErr, when set, is returned from GetNonce.
	NonceErr error

	Executed []*caller.RelayCall
}

var _ IContractCaller = (*MockContractCallerStub)(nil)

func nonceKey(keyManager common.Address, channelId *big.Int) string {
	return keyManager.Hex() + "/" + channelId.String()
}

func (m *MockContractCallerStub) GetNonce(ctx context.Context, keyManager common.Address, signer common.Address, channelId *big.Int) (*uint256.Int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NonceErr != nil {
		return nil, m.NonceErr
	}
	if m.nonces == nil {
		m.nonces = make(map[string]uint64)
	}
	n := new(uint256.Int).SetUint64(m.nonces[nonceKey(keyManager, channelId)])
	channel, _ := uint256.FromBig(channelId)
	return n.Or(n, new(uint256.Int).Lsh(channel, 128)), nil
}

func (m *MockContractCallerStub) GetTarget(ctx context.Context, keyManager common.Address) (common.Address, error) {
	return common.Address{}, nil
}

func (m *MockContractCallerStub) SimulateExecuteRelayCall(ctx context.Context, call *caller.RelayCall) ([]byte, error) {
	if m.SimulateFunc != nil {
		return m.SimulateFunc(call)
	}
	return []byte{}, nil
}

func (m *MockContractCallerStub) ExecuteRelayCall(ctx context.Context, call *caller.RelayCall) (*ethTypes.Receipt, error) {
	m.mu.Lock()
	m.Executed = append(m.Executed, call)
	m.mu.Unlock()

	var receipt *ethTypes.Receipt
	var err error
	if m.ExecuteRelayCallFunc != nil {
		receipt, err = m.ExecuteRelayCallFunc(call)
	} else {
		receipt = &ethTypes.Receipt{Status: 1, TxHash: crypto.Keccak256Hash(call.Signature)}
	}
	if err != nil {
		return receipt, err
	}
	m.AdvanceNonce(call)
	return receipt, nil
}

// AdvanceNonce mimics the key manager consuming call's nonce.
func (m *MockContractCallerStub) AdvanceNonce(call *caller.RelayCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nonces == nil {
		m.nonces = make(map[string]uint64)
	}
	channel := new(uint256.Int).Rsh(call.Nonce, 128).ToBig()
	m.nonces[nonceKey(call.KeyManager, channel)]++
}

func (m *MockContractCallerStub) FilterPermissionsVerified(ctx context.Context, keyManager common.Address, signers []common.Address, fromBlock uint64, toBlock *uint64) ([]*ILSP6KeyManager.ILSP6KeyManagerPermissionsVerified, error) {
	return nil, nil
}

func (m *MockContractCallerStub) GetData(ctx context.Context, account common.Address, key common.Hash) ([]byte, error) {
	return []byte{}, nil
}

func (m *MockContractCallerStub) GetDataBatch(ctx context.Context, account common.Address, keys []common.Hash) ([][]byte, error) {
	return make([][]byte, len(keys)), nil
}

func (m *MockContractCallerStub) GetControllers(ctx context.Context, account common.Address) ([]common.Address, error) {
	return nil, nil
}

func (m *MockContractCallerStub) GetControllerPermissions(ctx context.Context, account common.Address, controller common.Address) (*caller.ControllerPermissions, error) {
	return &caller.ControllerPermissions{Controller: controller}, nil
}

func (m *MockContractCallerStub) EnsureContract(ctx context.Context, address common.Address) error {
	return nil
}

func (m *MockContractCallerStub) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return new(big.Int), nil
}

func (m *MockContractCallerStub) GetTransactionCount(ctx context.Context, address common.Address) (uint64, error) {
	return 0, nil
}
