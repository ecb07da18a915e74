package authorization

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP0ERC725Account"
	"github.com/lsp-relay/lsp-relay-go/pkg/permissions"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/scope"
)

// Operation is the LSP0 execute operation type.
type Operation uint8

const (
	Operation_Call         Operation = 0
	Operation_Create       Operation = 1
	Operation_Create2      Operation = 2
	Operation_StaticCall   Operation = 3
	Operation_DelegateCall Operation = 4
)

var operationNames = map[string]Operation{
	"call":         Operation_Call,
	"create":       Operation_Create,
	"create2":      Operation_Create2,
	"staticcall":   Operation_StaticCall,
	"delegatecall": Operation_DelegateCall,
}

func ParseOperation(s string) (Operation, error) {
	op, ok := operationNames[s]
	if !ok {
		return 0, relayErrors.NewInvalidInput("unknown operation %q", s)
	}
	return op, nil
}

// ControllerGrant describes what a controller may do on a profile.
// Nil AllowedCalls or AllowedDataKeys leave the corresponding data key untouched.
type ControllerGrant struct {
	Controller      common.Address
	Permissions     permissions.Bitmask
	AllowedCalls    *scope.AllowedCallsConfig
	AllowedDataKeys [][]byte
}

// DataUpdate is a set of ERC725Y writes and the setDataBatch calldata that applies them.
type DataUpdate struct {
	Keys     []common.Hash
	Values   [][]byte
	Calldata []byte

	// NewController is true when the controller was appended to AddressPermissions[].
	NewController bool
}

func (u *DataUpdate) add(key common.Hash, value []byte) {
	u.Keys = append(u.Keys, key)
	u.Values = append(u.Values, value)
}

func accountAbi() (*abi.ABI, error) {
	parsed, err := ILSP0ERC725Account.ILSP0ERC725AccountMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to load account ABI: %w", err)
	}
	return parsed, nil
}

// BuildAuthorizeController produces the writes that grant g on a profile whose
// AddressPermissions[] currently holds existing. A controller not in existing is appended:
// the array length is bumped and its index entry set.
func BuildAuthorizeController(existing []common.Address, g *ControllerGrant) (*DataUpdate, error) {
	if g == nil {
		return nil, relayErrors.NewInvalidInput("controller grant is required")
	}
	if g.Controller == (common.Address{}) {
		return nil, relayErrors.NewInvalidInput("controller address is required")
	}
	if g.Permissions.IsZero() {
		return nil, relayErrors.NewInvalidInput("permissions bitmask is empty")
	}

	update := &DataUpdate{}
	permBytes := g.Permissions.Bytes32()
	update.add(permissions.PermissionsKey(g.Controller), permBytes[:])

	if g.AllowedCalls != nil {
		encoded, err := scope.EncodeAllowedCalls(g.AllowedCalls)
		if err != nil {
			return nil, err
		}
		update.add(permissions.AllowedCallsKey(g.Controller), encoded)
	}
	if g.AllowedDataKeys != nil {
		encoded, err := scope.EncodeAllowedDataKeys(g.AllowedDataKeys)
		if err != nil {
			return nil, err
		}
		update.add(permissions.AllowedDataKeysKey(g.Controller), encoded)
	}

	known := false
	for _, c := range existing {
		if c == g.Controller {
			known = true
			break
		}
	}
	if !known {
		count := big.NewInt(int64(len(existing)))
		indexKey, err := permissions.ArrayIndexKey(count)
		if err != nil {
			return nil, err
		}
		length, err := permissions.EncodeArrayLength(new(big.Int).Add(count, big.NewInt(1)))
		if err != nil {
			return nil, err
		}
		update.add(permissions.AddressPermissionsArrayKey, length)
		update.add(indexKey, g.Controller.Bytes())
		update.NewController = true
	}

	calldata, err := BuildSetDataBatch(update.Keys, update.Values)
	if err != nil {
		return nil, err
	}
	update.Calldata = calldata
	return update, nil
}

// BuildSetDataBatch returns setDataBatch(bytes32[],bytes[]) calldata.
func BuildSetDataBatch(keys []common.Hash, values [][]byte) ([]byte, error) {
	if len(keys) == 0 {
		return nil, relayErrors.NewInvalidInput("no data keys to set")
	}
	if len(keys) != len(values) {
		return nil, relayErrors.NewInvalidInput("got %d keys and %d values", len(keys), len(values))
	}
	parsed, err := accountAbi()
	if err != nil {
		return nil, err
	}
	rawKeys := make([][32]byte, len(keys))
	for i, k := range keys {
		rawKeys[i] = k
	}
	calldata, err := parsed.Pack("setDataBatch", rawKeys, values)
	if err != nil {
		return nil, relayErrors.NewInvalidInput("failed to pack setDataBatch: %v", err)
	}
	return calldata, nil
}

// BuildProfileExecute returns execute(uint256,address,uint256,bytes) calldata for the profile.
func BuildProfileExecute(operation Operation, target common.Address, value *big.Int, data []byte) ([]byte, error) {
	if operation > Operation_DelegateCall {
		return nil, relayErrors.NewInvalidInput("unknown operation %d", operation)
	}
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return nil, relayErrors.NewInvalidInput("value must not be negative")
	}
	if data == nil {
		data = []byte{}
	}
	parsed, err := accountAbi()
	if err != nil {
		return nil, err
	}
	calldata, err := parsed.Pack("execute", big.NewInt(int64(operation)), target, value, data)
	if err != nil {
		return nil, relayErrors.NewInvalidInput("failed to pack execute: %v", err)
	}
	return calldata, nil
}

// ControllerReader lists the controllers registered on a profile.
type ControllerReader interface {
	GetControllers(ctx context.Context, account common.Address) ([]common.Address, error)
}

// PlanAuthorizeController reads the profile's current controllers and builds the update for g.
func PlanAuthorizeController(ctx context.Context, reader ControllerReader, account common.Address, g *ControllerGrant) (*DataUpdate, error) {
	existing, err := reader.GetControllers(ctx, account)
	if err != nil {
		return nil, err
	}
	return BuildAuthorizeController(existing, g)
}
