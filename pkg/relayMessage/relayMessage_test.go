package relayMessage

import (
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(hexTail string) string {
	return strings.Repeat("0", 64-len(hexTail)) + hexTail
}

func TestBuildCanonicalMessage_Layout(t *testing.T) {
	payload := common.FromHex("0x44c028fe")
	validity := NewValidityTimestamps(0x10, 0x20)

	msg := BuildCanonicalMessage(
		uint256.NewInt(Version),
		uint256.NewInt(4201),
		uint256.NewInt(7),
		validity.Uint256(),
		uint256.NewInt(1000),
		payload,
	)

	expected := "0x" +
		word("19") +
		word("1069") +
		word("07") +
		word("10"+strings.Repeat("0", 30)+"20") +
		word("03e8") +
		"44c028fe"
	assert.Equal(t, common.FromHex(expected), msg)
	assert.Len(t, msg, 5*32+4)
}

func TestBuildCanonicalMessage_NilWordsAreZero(t *testing.T) {
	msg := BuildCanonicalMessage(uint256.NewInt(Version), uint256.NewInt(42), uint256.NewInt(0), nil, nil, nil)
	require.Len(t, msg, 160)
	assert.Equal(t, make([]byte, 64), msg[96:160])
}

func TestMessage_Encode(t *testing.T) {
	m := NewMessage(uint256.NewInt(42), uint256.NewInt(3), Indefinite(), uint256.NewInt(0), []byte{0xaa})
	encoded, err := m.Encode()
	require.NoError(t, err)
	assert.Equal(t, BuildCanonicalMessage(uint256.NewInt(25), uint256.NewInt(42), uint256.NewInt(3), uint256.NewInt(0), uint256.NewInt(0), []byte{0xaa}), encoded)

	tests := []struct {
		name string
		msg  *Message
	}{
		{"nil message", nil},
		{"missing chain id", &Message{Nonce: uint256.NewInt(0)}},
		{"zero chain id", &Message{ChainId: uint256.NewInt(0), Nonce: uint256.NewInt(0)}},
		{"missing nonce", &Message{ChainId: uint256.NewInt(42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.msg.Encode()
			require.Error(t, err)
			assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
		})
	}
}

func TestCreateValidityTimestamps(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	v, err := CreateValidityTimestamps(now, 0, 3600)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_700_000_000), v.Start())
	assert.Equal(t, uint64(1_700_003_600), v.End())

	expected := new(uint256.Int).Lsh(uint256.NewInt(1_700_000_000), 128)
	expected.Or(expected, uint256.NewInt(1_700_003_600))
	assert.True(t, expected.Eq(v.Uint256()))

	v, err = CreateValidityTimestamps(now, 60, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_700_000_060), v.Start())
	assert.Equal(t, uint64(1_700_000_070), v.End())

	_, err = CreateValidityTimestamps(now, 0, -5)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

func TestCreateValidityTimestamps_WallClock(t *testing.T) {
	before := time.Now().Unix()
	v, err := CreateValidityTimestamps(time.Now(), 0, 3600)
	require.NoError(t, err)
	after := time.Now().Unix()

	assert.GreaterOrEqual(t, int64(v.Start()), before)
	assert.LessOrEqual(t, int64(v.Start()), after)
	assert.Equal(t, v.Start()+3600, v.End())
}

func TestIndefiniteSentinel(t *testing.T) {
	v, err := CreateValidityTimestamps(time.Now(), 100, IndefiniteDuration)
	require.NoError(t, err)
	assert.True(t, v.IsIndefinite())
	assert.Equal(t, "0", v.Decimal())
	assert.True(t, v.Uint256().IsZero())

	assert.NoError(t, v.CheckAt(time.Unix(0, 0)))
	assert.NoError(t, v.CheckAt(time.Now().Add(100*365*24*time.Hour)))
}

func TestValidityTimestamps_CheckAt(t *testing.T) {
	tests := []struct {
		name     string
		validity ValidityTimestamps
		at       int64
		expected error
	}{
		{"inside window", NewValidityTimestamps(100, 200), 150, nil},
		{"at start", NewValidityTimestamps(100, 200), 100, nil},
		{"at end", NewValidityTimestamps(100, 200), 200, nil},
		{"before start", NewValidityTimestamps(100, 200), 99, ErrNotYetActive},
		{"after end", NewValidityTimestamps(100, 200), 201, ErrExpired},
		{"start only", NewValidityTimestamps(100, 0), 1_000_000, nil},
		{"start only, early", NewValidityTimestamps(100, 0), 50, ErrNotYetActive},
		{"end only", NewValidityTimestamps(0, 200), 201, ErrExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validity.CheckAt(time.Unix(tt.at, 0))
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestParseValidityTimestamps(t *testing.T) {
	packed := NewValidityTimestamps(1, 2)

	v, err := ParseValidityTimestamps(packed.Decimal())
	require.NoError(t, err)
	assert.Equal(t, packed, v)

	v, err = ParseValidityTimestamps("0x0000000000000000000000000000000100000000000000000000000000000002")
	require.NoError(t, err)
	assert.Equal(t, packed, v)

	v, err = ParseValidityTimestamps("")
	require.NoError(t, err)
	assert.True(t, v.IsIndefinite())

	_, err = ParseValidityTimestamps("-1")
	assert.Error(t, err)
	_, err = ParseValidityTimestamps("soon")
	assert.Error(t, err)
}
