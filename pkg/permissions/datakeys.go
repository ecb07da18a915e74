package permissions

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
)

// ERC725Y keys under which an LSP6 Key Manager reads controller configuration.
var (
	// AddressPermissionsArrayKey is keccak256("AddressPermissions[]").
	AddressPermissionsArrayKey = common.HexToHash("0xdf30dba06db6a30e65354d9a64c609861f089545ca58c6b4dbe31a5f338cb0e3")

	permissionsKeyPrefix     = common.FromHex("0x4b80742de2bf82acb3630000")
	allowedCallsKeyPrefix    = common.FromHex("0x4b80742de2bf393a64c70000")
	allowedDataKeysKeyPrefix = common.FromHex("0x4b80742de2bf866c29110000")
)

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

func mappingKey(prefix []byte, controller common.Address) common.Hash {
	var key common.Hash
	copy(key[:12], prefix)
	copy(key[12:], controller.Bytes())
	return key
}

// PermissionsKey is AddressPermissions:Permissions:<controller>.
func PermissionsKey(controller common.Address) common.Hash {
	return mappingKey(permissionsKeyPrefix, controller)
}

// AllowedCallsKey is AddressPermissions:AllowedCalls:<controller>.
func AllowedCallsKey(controller common.Address) common.Hash {
	return mappingKey(allowedCallsKeyPrefix, controller)
}

// AllowedDataKeysKey is AddressPermissions:AllowedERC725YDataKeys:<controller>.
func AllowedDataKeysKey(controller common.Address) common.Hash {
	return mappingKey(allowedDataKeysKeyPrefix, controller)
}

// ArrayIndexKey is the AddressPermissions[] element key: the first 16 bytes of the array key
// followed by the index as a 16-byte big-endian integer.
func ArrayIndexKey(index *big.Int) (common.Hash, error) {
	var key common.Hash
	if index == nil || index.Sign() < 0 || index.Cmp(maxUint128) > 0 {
		return key, relayErrors.NewInvalidInput("array index must fit in 128 bits")
	}
	copy(key[:16], AddressPermissionsArrayKey[:16])
	index.FillBytes(key[16:])
	return key, nil
}

// EncodeArrayLength encodes an ERC725Y array length value (uint128, 16 bytes).
func EncodeArrayLength(length *big.Int) ([]byte, error) {
	if length == nil || length.Sign() < 0 || length.Cmp(maxUint128) > 0 {
		return nil, relayErrors.NewInvalidInput("array length must fit in 128 bits")
	}
	out := make([]byte, 16)
	length.FillBytes(out)
	return out, nil
}

// DecodeArrayLength reads an ERC725Y array length; an empty value is zero.
func DecodeArrayLength(value []byte) (*big.Int, error) {
	if len(value) == 0 {
		return new(big.Int), nil
	}
	if len(value) > 32 {
		return nil, relayErrors.NewInvalidInput("array length value must be at most 32 bytes, got %d", len(value))
	}
	length := new(big.Int).SetBytes(value)
	if length.Cmp(maxUint128) > 0 {
		return nil, relayErrors.NewInvalidInput("array length exceeds 128 bits")
	}
	return length, nil
}
