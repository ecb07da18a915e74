package relayMessage

import (
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
)

// Version is the LSP25 relay call version prefixed to every signed message.
const Version uint64 = 25

// Message is the set of fields a controller signs to authorize a relayed call.
type Message struct {
	Version            *uint256.Int
	ChainId            *uint256.Int
	Nonce              *uint256.Int
	ValidityTimestamps ValidityTimestamps
	Value              *uint256.Int
	Payload            []byte
}

// NewMessage fills Version with the LSP25 constant.
func NewMessage(chainId, nonce *uint256.Int, validity ValidityTimestamps, value *uint256.Int, payload []byte) *Message {
	return &Message{
		Version:            uint256.NewInt(Version),
		ChainId:            chainId,
		Nonce:              nonce,
		ValidityTimestamps: validity,
		Value:              value,
		Payload:            payload,
	}
}

// Encode returns the canonical byte sequence for m.
func (m *Message) Encode() ([]byte, error) {
	if m == nil {
		return nil, relayErrors.NewInvalidInput("relay message is nil")
	}
	if m.ChainId == nil || m.ChainId.IsZero() {
		return nil, relayErrors.NewInvalidInput("relay message chain id is required")
	}
	if m.Nonce == nil {
		return nil, relayErrors.NewInvalidInput("relay message nonce is required")
	}
	version := m.Version
	if version == nil {
		version = uint256.NewInt(Version)
	}
	return BuildCanonicalMessage(version, m.ChainId, m.Nonce, m.ValidityTimestamps.Uint256(), m.Value, m.Payload), nil
}

// BuildCanonicalMessage packs version, chainId, nonce, validityTimestamps and value as 32-byte
// big-endian words, in that order, followed by the raw payload. Nil words encode as zero.
func BuildCanonicalMessage(version, chainId, nonce, validityTimestamps, value *uint256.Int, payload []byte) []byte {
	out := make([]byte, 0, 5*32+len(payload))
	for _, word := range []*uint256.Int{version, chainId, nonce, validityTimestamps, value} {
		var buf [32]byte
		if word != nil {
			buf = word.Bytes32()
		}
		out = append(out, buf[:]...)
	}
	return append(out, payload...)
}
