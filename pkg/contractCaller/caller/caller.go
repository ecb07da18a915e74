package caller

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/chainReader"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP6KeyManager"
	"github.com/lsp-relay/lsp-relay-go/pkg/nonceChannel"
	"github.com/lsp-relay/lsp-relay-go/pkg/permissions"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/relaySigner"
	"github.com/lsp-relay/lsp-relay-go/pkg/scope"
	"github.com/lsp-relay/lsp-relay-go/pkg/transactionSigner"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RelayCall is a signed LSP25 message ready for executeRelayCall.
type RelayCall struct {
	KeyManager         common.Address
	Signature          []byte
	Nonce              *uint256.Int
	ValidityTimestamps *uint256.Int
	Payload            []byte
	Value              *uint256.Int
}

func (r *RelayCall) validate() error {
	if r == nil {
		return relayErrors.NewInvalidInput("relay call is nil")
	}
	if len(r.Signature) != relaySigner.SignatureLength {
		return relayErrors.NewInvalidInput("signature must be %d bytes, got %d", relaySigner.SignatureLength, len(r.Signature))
	}
	if r.Nonce == nil {
		return relayErrors.NewInvalidInput("nonce is required")
	}
	return nil
}

func (r *RelayCall) args() (nonce, validity, value *big.Int) {
	nonce = r.Nonce.ToBig()
	validity = new(big.Int)
	if r.ValidityTimestamps != nil {
		validity = r.ValidityTimestamps.ToBig()
	}
	value = new(big.Int)
	if r.Value != nil {
		value = r.Value.ToBig()
	}
	return nonce, validity, value
}

// ControllerPermissions is the LSP6 configuration stored on a profile for one controller.
type ControllerPermissions struct {
	Controller      common.Address
	Permissions     permissions.Bitmask
	AllowedCalls    []scope.AllowedCall
	AllowedDataKeys [][]byte
}

type ContractCaller struct {
	reader chainReader.ChainReader
	signer transactionSigner.ITransactionSigner
	nonces *nonceChannel.NonceChannel
	logger *zap.Logger

	keyManagerAbi *abi.ABI
}

// NewContractCaller creates a caller over reader. signer may be nil, in which case only
// read and simulation methods are usable.
func NewContractCaller(
	reader chainReader.ChainReader,
	signer transactionSigner.ITransactionSigner,
	logger *zap.Logger,
) (*ContractCaller, error) {
	keyManagerAbi, err := ILSP6KeyManager.ILSP6KeyManagerMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse key manager ABI: %w", err)
	}

	return &ContractCaller{
		reader:        reader,
		signer:        signer,
		nonces:        nonceChannel.NewNonceChannel(reader, logger),
		logger:        logger,
		keyManagerAbi: keyManagerAbi,
	}, nil
}

func (cc *ContractCaller) GetNonce(ctx context.Context, keyManager common.Address, signer common.Address, channelId *big.Int) (*uint256.Int, error) {
	return cc.nonces.GetNonce(ctx, keyManager, signer, channelId)
}

// GetTarget returns the profile controlled by keyManager.
func (cc *ContractCaller) GetTarget(ctx context.Context, keyManager common.Address) (common.Address, error) {
	km, err := ILSP6KeyManager.NewILSP6KeyManagerCaller(keyManager, cc.reader)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "failed to create key manager caller")
	}
	target, err := km.Target(&bind.CallOpts{Context: ctx})
	if err != nil {
		return common.Address{}, relayErrors.NewNetworkError(err, "failed to read key manager target").
			WithDetail("keyManager", keyManager.Hex())
	}
	return target, nil
}

func (cc *ContractCaller) EnsureContract(ctx context.Context, address common.Address) error {
	code, err := cc.reader.CodeAt(ctx, address, nil)
	if err != nil {
		return relayErrors.NewNetworkError(err, "failed to read contract code").
			WithDetail("address", address.Hex())
	}
	if len(code) == 0 {
		return relayErrors.NewInvalidInput("no contract deployed at %s", address.Hex())
	}
	return nil
}

func (cc *ContractCaller) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	balance, err := cc.reader.BalanceAt(ctx, address, nil)
	if err != nil {
		return nil, relayErrors.NewNetworkError(err, "failed to read balance").
			WithDetail("address", address.Hex())
	}
	return balance, nil
}

func (cc *ContractCaller) GetTransactionCount(ctx context.Context, address common.Address) (uint64, error) {
	count, err := cc.reader.NonceAt(ctx, address, nil)
	if err != nil {
		return 0, relayErrors.NewNetworkError(err, "failed to read transaction count").
			WithDetail("address", address.Hex())
	}
	return count, nil
}
