package relaySigner

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayMessage"
)

// SignatureLength is r ‖ s ‖ v.
const SignatureLength = 65

// ComputeDigest is the EIP-191 version 0x00 ("intended validator") hash:
// keccak256(0x19 ‖ 0x00 ‖ validator ‖ message).
//
// It is not interchangeable with accounts.TextHash, which prefixes "\x19Ethereum Signed Message:\n<len>".
func ComputeDigest(validator common.Address, message []byte) common.Hash {
	return crypto.Keccak256Hash([]byte{0x19, 0x00}, validator.Bytes(), message)
}

// Sign signs the 32-byte digest and returns a 65-byte signature with v in {27, 28}.
func Sign(privateKey *ecdsa.PrivateKey, digest common.Hash) ([]byte, error) {
	if privateKey == nil {
		return nil, relayErrors.NewInvalidInput("private key is required")
	}
	sig, err := crypto.Sign(digest.Bytes(), privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

// Recover returns the address that produced sig over digest. v may be 0, 1, 27 or 28.
func Recover(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != SignatureLength {
		return common.Address{}, relayErrors.NewInvalidInput("signature must be %d bytes, got %d", SignatureLength, len(sig))
	}
	normalized := make([]byte, SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	if normalized[crypto.RecoveryIDOffset] > 1 {
		return common.Address{}, relayErrors.NewInvalidSignature(fmt.Sprintf("unsupported recovery id %d", sig[crypto.RecoveryIDOffset]))
	}

	pub, err := crypto.SigToPub(digest.Bytes(), normalized)
	if err != nil {
		return common.Address{}, relayErrors.Wrap(relayErrors.InvalidSignature, err, "failed to recover signer")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verify checks that sig over digest was produced by expected.
func Verify(digest common.Hash, sig []byte, expected common.Address) error {
	recovered, err := Recover(digest, sig)
	if err != nil {
		return err
	}
	if recovered != expected {
		return relayErrors.NewInvalidSignature("recovered signer does not match").
			WithDetail("expected", expected.Hex()).
			WithDetail("recovered", recovered.Hex())
	}
	return nil
}

// SignedMessage is a relay message together with everything derived from it while signing.
type SignedMessage struct {
	Message    *relayMessage.Message
	KeyManager common.Address
	Encoded    []byte
	Digest     common.Hash
	Signature  []byte
	Signer     common.Address
}

// SignRelayMessage encodes msg, computes the digest for keyManager and signs it with signer.
func SignRelayMessage(ctx context.Context, signer IRelaySigner, keyManager common.Address, msg *relayMessage.Message) (*SignedMessage, error) {
	if signer == nil {
		return nil, relayErrors.NewInvalidInput("relay signer is required")
	}
	if keyManager == (common.Address{}) {
		return nil, relayErrors.NewInvalidInput("key manager address is required")
	}
	encoded, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	digest := ComputeDigest(keyManager, encoded)
	sig, err := signer.SignDigest(ctx, digest)
	if err != nil {
		return nil, err
	}
	if len(sig) != SignatureLength {
		return nil, relayErrors.NewInvalidSignature(fmt.Sprintf("signer returned %d byte signature", len(sig)))
	}
	return &SignedMessage{
		Message:    msg,
		KeyManager: keyManager,
		Encoded:    encoded,
		Digest:     digest,
		Signature:  sig,
		Signer:     signer.Address(),
	}, nil
}

// Verify recomputes the digest from the message and checks the signature against Signer.
func (s *SignedMessage) Verify() error {
	encoded, err := s.Message.Encode()
	if err != nil {
		return err
	}
	digest := ComputeDigest(s.KeyManager, encoded)
	if digest != s.Digest {
		return relayErrors.NewInvalidSignature("digest does not match message")
	}
	return Verify(digest, s.Signature, s.Signer)
}
