package caller

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP0ERC725Account"
	"github.com/lsp-relay/lsp-relay-go/pkg/permissions"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/scope"
	"github.com/pkg/errors"
)

func (cc *ContractCaller) accountCaller(account common.Address) (*ILSP0ERC725Account.ILSP0ERC725AccountCaller, error) {
	acct, err := ILSP0ERC725Account.NewILSP0ERC725AccountCaller(account, cc.reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create account caller for %s", account.Hex())
	}
	return acct, nil
}

// GetData reads one ERC725Y value. A key that was never set returns an empty value.
func (cc *ContractCaller) GetData(ctx context.Context, account common.Address, key common.Hash) ([]byte, error) {
	acct, err := cc.accountCaller(account)
	if err != nil {
		return nil, err
	}
	value, err := acct.GetData(&bind.CallOpts{Context: ctx}, key)
	if err != nil {
		return nil, relayErrors.NewNetworkError(errors.Wrapf(err, "getData %s", key.Hex()), "failed to read profile data").
			WithDetail("account", account.Hex())
	}
	return value, nil
}

func (cc *ContractCaller) GetDataBatch(ctx context.Context, account common.Address, keys []common.Hash) ([][]byte, error) {
	if len(keys) == 0 {
		return [][]byte{}, nil
	}
	acct, err := cc.accountCaller(account)
	if err != nil {
		return nil, err
	}
	rawKeys := make([][32]byte, len(keys))
	for i, k := range keys {
		rawKeys[i] = k
	}
	values, err := acct.GetDataBatch(&bind.CallOpts{Context: ctx}, rawKeys)
	if err != nil {
		return nil, relayErrors.NewNetworkError(errors.Wrapf(err, "getDataBatch of %d keys", len(keys)), "failed to read profile data").
			WithDetail("account", account.Hex())
	}
	if len(values) != len(keys) {
		return nil, relayErrors.NewNetworkError(nil, "getDataBatch returned a different number of values than keys").
			WithDetail("account", account.Hex())
	}
	return values, nil
}

// GetControllers lists the addresses stored in the AddressPermissions[] array.
func (cc *ContractCaller) GetControllers(ctx context.Context, account common.Address) ([]common.Address, error) {
	rawLength, err := cc.GetData(ctx, account, permissions.AddressPermissionsArrayKey)
	if err != nil {
		return nil, err
	}
	length, err := permissions.DecodeArrayLength(rawLength)
	if err != nil {
		return nil, err
	}
	if !length.IsInt64() || length.Int64() > maxControllers {
		return nil, relayErrors.NewInvalidInput("AddressPermissions[] length %s is too large", length.String())
	}

	count := int(length.Int64())
	keys := make([]common.Hash, count)
	for i := 0; i < count; i++ {
		key, err := permissions.ArrayIndexKey(big.NewInt(int64(i)))
		if err != nil {
			return nil, err
		}
		keys[i] = key
	}
	values, err := cc.GetDataBatch(ctx, account, keys)
	if err != nil {
		return nil, err
	}

	controllers := make([]common.Address, 0, count)
	for i, v := range values {
		if len(v) != common.AddressLength {
			cc.logger.Sugar().Warnw("Skipping malformed AddressPermissions[] entry",
				"account", account.Hex(),
				"index", i,
				"length", len(v),
			)
			continue
		}
		controllers = append(controllers, common.BytesToAddress(v))
	}
	return controllers, nil
}

const maxControllers = 1024

// GetControllerPermissions reads and decodes the permissions, allowed calls and allowed data keys of controller.
func (cc *ContractCaller) GetControllerPermissions(ctx context.Context, account common.Address, controller common.Address) (*ControllerPermissions, error) {
	values, err := cc.GetDataBatch(ctx, account, []common.Hash{
		permissions.PermissionsKey(controller),
		permissions.AllowedCallsKey(controller),
		permissions.AllowedDataKeysKey(controller),
	})
	if err != nil {
		return nil, err
	}

	mask, err := permissions.BitmaskFromBytes(values[0])
	if err != nil {
		return nil, err
	}
	allowedCalls, err := scope.DecodeAllowedCalls(values[1])
	if err != nil {
		return nil, err
	}
	allowedDataKeys, err := scope.DecodeAllowedDataKeys(values[2])
	if err != nil {
		return nil, err
	}

	return &ControllerPermissions{
		Controller:      controller,
		Permissions:     mask,
		AllowedCalls:    allowedCalls,
		AllowedDataKeys: allowedDataKeys,
	}, nil
}
