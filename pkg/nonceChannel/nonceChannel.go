package nonceChannel

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/chainReader"
	"github.com/lsp-relay/lsp-relay-go/pkg/lsp-bindings/ILSP6KeyManager"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"go.uber.org/zap"
)

// DefaultChannel is the sequential lane most signers use.
var DefaultChannel = big.NewInt(0)

var maxChannelId = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// ValidateChannelId checks that id fits in a uint128.
func ValidateChannelId(id *big.Int) error {
	if id == nil || id.Sign() < 0 || id.Cmp(maxChannelId) > 0 {
		return relayErrors.NewInvalidInput("channel id must be between 0 and 2^128-1")
	}
	return nil
}

// ParseChannelId accepts decimal or 0x-prefixed hex.
func ParseChannelId(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int).Set(DefaultChannel), nil
	}
	id, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, relayErrors.NewInvalidInput("invalid channel id %q", s)
	}
	if err := ValidateChannelId(id); err != nil {
		return nil, err
	}
	return id, nil
}

// RandomChannelId picks a fresh non-zero lane so several signed messages can be outstanding at once.
func RandomChannelId() (*big.Int, error) {
	for {
		id, err := rand.Int(rand.Reader, maxChannelId)
		if err != nil {
			return nil, err
		}
		if id.Sign() > 0 {
			return id, nil
		}
	}
}

// NonceChannel reads per-channel nonces from an LSP6 Key Manager.
type NonceChannel struct {
	reader chainReader.ChainReader
	logger *zap.Logger
}

func NewNonceChannel(reader chainReader.ChainReader, logger *zap.Logger) *NonceChannel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NonceChannel{
		reader: reader,
		logger: logger,
	}
}

// GetNonce returns the next valid nonce for (signer, channelId). Fetch it right before signing
// and never reuse it: a successful relay call increments the on-chain counter by one.
func (n *NonceChannel) GetNonce(ctx context.Context, keyManager common.Address, signer common.Address, channelId *big.Int) (*uint256.Int, error) {
	if err := ValidateChannelId(channelId); err != nil {
		return nil, err
	}
	km, err := ILSP6KeyManager.NewILSP6KeyManagerCaller(keyManager, n.reader)
	if err != nil {
		return nil, relayErrors.Wrap(relayErrors.Unknown, err, "failed to bind key manager")
	}

	nonce, err := km.GetNonce(&bind.CallOpts{Context: ctx}, signer, channelId)
	if err != nil {
		return nil, relayErrors.NewNetworkError(err, "failed to fetch nonce").
			WithDetail("keyManager", keyManager.Hex()).
			WithDetail("signer", signer.Hex()).
			WithDetail("channelId", channelId.String())
	}
	value, overflow := uint256.FromBig(nonce)
	if overflow {
		return nil, relayErrors.NewNetworkError(nil, "key manager returned an out of range nonce")
	}

	n.logger.Sugar().Debugw("Fetched relay nonce",
		"keyManager", keyManager.Hex(),
		"signer", signer.Hex(),
		"channelId", channelId.String(),
		"nonce", value.Dec(),
	)
	return value, nil
}
