package contractCaller

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethereumTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/contractCaller/caller"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP6KeyManager"
)

type IContractCaller interface {
	// Key manager functions
	GetNonce(ctx context.Context, keyManager common.Address, signer common.Address, channelId *big.Int) (*uint256.Int, error)

	GetTarget(ctx context.Context, keyManager common.Address) (common.Address, error)

	SimulateExecuteRelayCall(ctx context.Context, call *caller.RelayCall) ([]byte, error)

	ExecuteRelayCall(ctx context.Context, call *caller.RelayCall) (*ethereumTypes.Receipt, error)

	FilterPermissionsVerified(
		ctx context.Context,
		keyManager common.Address,
		signers []common.Address,
		fromBlock uint64,
		toBlock *uint64,
	) ([]*ILSP6KeyManager.ILSP6KeyManagerPermissionsVerified, error)

	// Profile (ERC725Y) functions
	GetData(ctx context.Context, account common.Address, key common.Hash) ([]byte, error)

	GetDataBatch(ctx context.Context, account common.Address, keys []common.Hash) ([][]byte, error)

	GetControllers(ctx context.Context, account common.Address) ([]common.Address, error)

	GetControllerPermissions(ctx context.Context, account common.Address, controller common.Address) (*caller.ControllerPermissions, error)

	// Account state
	EnsureContract(ctx context.Context, address common.Address) error

	GetBalance(ctx context.Context, address common.Address) (*big.Int, error)

	GetTransactionCount(ctx context.Context, address common.Address) (uint64, error)
}

var _ IContractCaller = (*caller.ContractCaller)(nil)
