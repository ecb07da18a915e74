package scope

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTarget    = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testTarget2   = common.HexToAddress("0x2222222222222222222222222222222222222222")
	lsp7Interface = [4]byte{0xc5, 0x2d, 0x6e, 0xf8}
	transferSel   = [4]byte{0x76, 0x0d, 0x9b, 0xba}
)

func TestEncodeAllowedCalls_Empty(t *testing.T) {
	encoded, err := EncodeAllowedCalls(&AllowedCallsConfig{})
	require.NoError(t, err)
	assert.Empty(t, encoded)
	assert.NotNil(t, encoded)

	encoded, err = EncodeAllowedCalls(nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)
}

func TestEncodeAllowedCalls_SingleEntry(t *testing.T) {
	encoded, err := EncodeAllowedCalls(&AllowedCallsConfig{
		CallTypes:         []CallType{CallTypeValue | CallTypeCall},
		Addresses:         []common.Address{testTarget},
		InterfaceIds:      [][4]byte{lsp7Interface},
		FunctionSelectors: [][4]byte{transferSel},
	})
	require.NoError(t, err)
	require.Len(t, encoded, 34)

	expected := common.FromHex("0x0020" + "00000003" + "1111111111111111111111111111111111111111" + "c52d6ef8" + "760d9bba")
	assert.Equal(t, expected, encoded)
}

func TestEncodeAllowedCalls_CartesianProduct(t *testing.T) {
	cfg := &AllowedCallsConfig{
		CallTypes: []CallType{CallTypeCall, CallTypeStaticCall},
		Addresses: []common.Address{testTarget, testTarget2},
	}
	encoded, err := EncodeAllowedCalls(cfg)
	require.NoError(t, err)
	assert.Len(t, encoded, 4*34)

	calls, err := DecodeAllowedCalls(encoded)
	require.NoError(t, err)
	require.Len(t, calls, 4)

	assert.Equal(t, CallTypeCall, calls[0].CallType)
	assert.Equal(t, testTarget, calls[0].Address)
	assert.Equal(t, testTarget2, calls[1].Address)
	assert.Equal(t, CallTypeStaticCall, calls[2].CallType)
	for _, c := range calls {
		assert.Equal(t, WildcardInterfaceId, c.InterfaceId)
		assert.Equal(t, WildcardSelector, c.Selector)
		assert.False(t, c.IsWildcardAddress())
	}
}

func TestEncodeAllowedCalls_WildcardAddress(t *testing.T) {
	encoded, err := EncodeAllowedCalls(&AllowedCallsConfig{
		CallTypes:         []CallType{CallTypeCall},
		FunctionSelectors: [][4]byte{transferSel},
	})
	require.NoError(t, err)

	calls, err := DecodeAllowedCalls(encoded)
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.True(t, calls[0].IsWildcardAddress())
	assert.Equal(t, transferSel, calls[0].Selector)
}

func TestEncodeAllowedCalls_InvalidCallTypes(t *testing.T) {
	tests := []struct {
		name      string
		callTypes []CallType
	}{
		{"missing", nil},
		{"zero", []CallType{0}},
		{"unknown flag", []CallType{0x10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeAllowedCalls(&AllowedCallsConfig{
				CallTypes: tt.callTypes,
				Addresses: []common.Address{testTarget},
			})
			require.Error(t, err)
			assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
		})
	}
}

func TestDecodeAllowedCalls_RejectsWrongEntryLength(t *testing.T) {
	_, err := DecodeAllowedCalls(common.FromHex("0x0004deadbeef"))
	require.Error(t, err)
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

func TestAllowedDataKeys(t *testing.T) {
	prefixes := [][]byte{
		common.FromHex("0xcafe"),
		common.FromHex("0x4b80742de2bf82acb3630000"),
	}
	encoded, err := EncodeAllowedDataKeys(prefixes)
	require.NoError(t, err)
	assert.Equal(t, common.FromHex("0x0002cafe000c4b80742de2bf82acb3630000"), encoded)

	decoded, err := DecodeAllowedDataKeys(encoded)
	require.NoError(t, err)
	assert.Equal(t, prefixes, decoded)

	assert.True(t, AllowsDataKey(decoded, common.HexToHash("0xcafe000000000000000000000000000000000000000000000000000000000001")))
	assert.False(t, AllowsDataKey(decoded, common.HexToHash("0xbeef000000000000000000000000000000000000000000000000000000000001")))

	empty, err := EncodeAllowedDataKeys(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = EncodeAllowedDataKeys([][]byte{{}})
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))

	_, err = EncodeAllowedDataKeys([][]byte{make([]byte, 33)})
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

func TestCompactBytesArray(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		entries   int
		shouldErr bool
	}{
		{"empty", []byte{}, 0, false},
		{"zero length entry", common.FromHex("0x0000"), 1, false},
		{"two entries", common.FromHex("0x0001aa0002bbcc"), 2, false},
		{"truncated prefix", common.FromHex("0x00"), 0, true},
		{"truncated entry", common.FromHex("0x0003aabb"), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := DecodeCompactBytesArray(tt.input)
			if tt.shouldErr {
				require.Error(t, err)
				assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Len(t, entries, tt.entries)

			reencoded, err := EncodeCompactBytesArray(entries)
			require.NoError(t, err)
			assert.Equal(t, tt.input, reencoded)
		})
	}

	_, err := EncodeCompactBytesArray([][]byte{make([]byte, MaxCompactEntryLength+1)})
	assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
}

func TestParseAllowedCallsInput(t *testing.T) {
	cfg, err := ParseAllowedCallsInput(AllowedCallsInput{
		CallTypes:         []string{"call", "0x1"},
		Addresses:         []string{"0x1111111111111111111111111111111111111111"},
		InterfaceIds:      []string{"0xc52d6ef8"},
		FunctionSelectors: []string{"760d9bba"},
	})
	require.NoError(t, err)
	assert.Equal(t, []CallType{CallTypeCall, CallTypeValue}, cfg.CallTypes)
	assert.Equal(t, []common.Address{testTarget}, cfg.Addresses)
	assert.Equal(t, [][4]byte{lsp7Interface}, cfg.InterfaceIds)
	assert.Equal(t, [][4]byte{transferSel}, cfg.FunctionSelectors)

	tests := []struct {
		name  string
		input AllowedCallsInput
	}{
		{"short address", AllowedCallsInput{CallTypes: []string{"CALL"}, Addresses: []string{"0x1234"}}},
		{"long selector", AllowedCallsInput{CallTypes: []string{"CALL"}, FunctionSelectors: []string{"0x760d9bba00"}}},
		{"bad interface hex", AllowedCallsInput{CallTypes: []string{"CALL"}, InterfaceIds: []string{"0xzzzzzzzz"}}},
		{"unknown call type", AllowedCallsInput{CallTypes: []string{"SELFDESTRUCT"}}},
		{"call type out of range", AllowedCallsInput{CallTypes: []string{"0x30"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAllowedCallsInput(tt.input)
			require.Error(t, err)
			assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
		})
	}
}

func TestParseDataKeyPrefix(t *testing.T) {
	prefix, err := ParseDataKeyPrefix("0xcafe")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xca, 0xfe}, prefix)

	_, err = ParseDataKeyPrefix("0x")
	assert.Error(t, err)
}

func TestHexParsing(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		shouldErr bool
	}{
		{"prefixed", "0x1111111111111111111111111111111111111111", false},
		{"upper prefix", "0X1111111111111111111111111111111111111111", false},
		{"no prefix", "1111111111111111111111111111111111111111", false},
		{"padded", "  0x1111111111111111111111111111111111111111 ", false},
		{"not hex", "0x11111111111111111111111111111111111111zz", true},
		{"short", "0x11", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if tt.shouldErr {
				require.Error(t, err)
				assert.True(t, relayErrors.IsKind(err, relayErrors.InvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testTarget, addr)
		})
	}

	// odd-length input is left-padded with a zero nibble
	_, err := ParseBytes4("0x6ef8c52d6")
	require.Error(t, err, "nine nibbles pad to five bytes")
	prefix, err := ParseDataKeyPrefix("0xafe")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xfe}, prefix)
}
