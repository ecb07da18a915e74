package relaySigner

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"go.uber.org/zap"
)

// IRelaySigner signs relay digests for a single controller key.
type IRelaySigner interface {
	Address() common.Address
	SignDigest(ctx context.Context, digest common.Hash) ([]byte, error)
}

type inMemoryRelaySigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
	logger     *zap.Logger
}

var _ IRelaySigner = (*inMemoryRelaySigner)(nil)

// NewInMemoryRelaySigner wraps a decoded secp256k1 private key.
func NewInMemoryRelaySigner(privateKey *ecdsa.PrivateKey, logger *zap.Logger) (IRelaySigner, error) {
	if privateKey == nil {
		return nil, relayErrors.NewInvalidInput("private key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inMemoryRelaySigner{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		logger:     logger,
	}, nil
}

// NewPrivateKeyRelaySigner parses a hex private key with an optional 0x prefix.
func NewPrivateKeyRelaySigner(privateKeyHex string, logger *zap.Logger) (IRelaySigner, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, relayErrors.NewInvalidInput("invalid private key: %v", err)
	}
	return NewInMemoryRelaySigner(key, logger)
}

// NewKeystoreRelaySigner decrypts a Web3 Secret Storage file. A wrong password or corrupted file
// fails with KeyDecryptFailed.
func NewKeystoreRelaySigner(path string, password string, logger *zap.Logger) (IRelaySigner, error) {
	key, err := ReadKeystore(path, password)
	if err != nil {
		return nil, err
	}
	return NewInMemoryRelaySigner(key, logger)
}

// NewKeystoreJsonRelaySigner is NewKeystoreRelaySigner over file contents.
func NewKeystoreJsonRelaySigner(keyJson []byte, password string, logger *zap.Logger) (IRelaySigner, error) {
	key, err := DecryptKeystore(keyJson, password)
	if err != nil {
		return nil, err
	}
	return NewInMemoryRelaySigner(key, logger)
}

// ReadKeystore reads and decrypts a keystore file.
func ReadKeystore(path string, password string) (*ecdsa.PrivateKey, error) {
	keyJson, err := os.ReadFile(path)
	if err != nil {
		return nil, relayErrors.NewInvalidInput("failed to read keystore file %s: %v", path, err)
	}
	return DecryptKeystore(keyJson, password)
}

// DecryptKeystore decrypts Web3 Secret Storage JSON.
func DecryptKeystore(keyJson []byte, password string) (*ecdsa.PrivateKey, error) {
	key, err := keystore.DecryptKey(keyJson, password)
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, relayErrors.NewKeyDecryptFailed(err, "wrong keystore password")
		}
		return nil, relayErrors.NewKeyDecryptFailed(err, "failed to decrypt keystore")
	}
	return key.PrivateKey, nil
}

func (s *inMemoryRelaySigner) Address() common.Address {
	return s.address
}

func (s *inMemoryRelaySigner) SignDigest(ctx context.Context, digest common.Hash) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sig, err := Sign(s.privateKey, digest)
	if err != nil {
		return nil, err
	}
	s.logger.Sugar().Debugw("Signed relay digest",
		"signer", s.address.Hex(),
		"digest", digest.Hex(),
	)
	return sig, nil
}
