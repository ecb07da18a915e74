package scope

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
)

// CallType is the 4-byte restriction flag of an AllowedCalls entry.
type CallType uint32

const (
	CallTypeValue        CallType = 0x1
	CallTypeCall         CallType = 0x2
	CallTypeStaticCall   CallType = 0x4
	CallTypeDelegateCall CallType = 0x8
)

const allCallTypes = CallTypeValue | CallTypeCall | CallTypeStaticCall | CallTypeDelegateCall

// AllowedCallEntryLength is the packed size of one AllowedCalls record.
const AllowedCallEntryLength = 32

// MaxDataKeyPrefixLength bounds an AllowedERC725YDataKeys entry.
const MaxDataKeyPrefixLength = 32

var (
	WildcardAddress     = common.HexToAddress("0xffffffffffffffffffffffffffffffffffffffff")
	WildcardInterfaceId = [4]byte{0xff, 0xff, 0xff, 0xff}
	WildcardSelector    = [4]byte{0xff, 0xff, 0xff, 0xff}
)

// AllowedCallsConfig describes a set of scoped call restrictions. Empty address, interface id or
// selector lists expand to the matching wildcard.
type AllowedCallsConfig struct {
	CallTypes         []CallType
	Addresses         []common.Address
	InterfaceIds      [][4]byte
	FunctionSelectors [][4]byte
}

// IsEmpty is true when no address, interface id or selector is configured.
func (c *AllowedCallsConfig) IsEmpty() bool {
	return c == nil || (len(c.Addresses) == 0 && len(c.InterfaceIds) == 0 && len(c.FunctionSelectors) == 0)
}

// AllowedCall is one decoded AllowedCalls record.
type AllowedCall struct {
	CallType    CallType
	Address     common.Address
	InterfaceId [4]byte
	Selector    [4]byte
}

// Pack lays the record out as callType ‖ address ‖ interfaceId ‖ selector.
func (a AllowedCall) Pack() []byte {
	out := make([]byte, 0, AllowedCallEntryLength)
	out = binary.BigEndian.AppendUint32(out, uint32(a.CallType))
	out = append(out, a.Address.Bytes()...)
	out = append(out, a.InterfaceId[:]...)
	out = append(out, a.Selector[:]...)
	return out
}

func (a AllowedCall) String() string {
	return fmt.Sprintf("%#010x %s %#x %#x", uint32(a.CallType), a.Address.Hex(), a.InterfaceId, a.Selector)
}

// IsWildcardAddress reports whether the record accepts any target.
func (a AllowedCall) IsWildcardAddress() bool {
	return a.Address == WildcardAddress
}

// Expand returns the Cartesian product of call types, addresses, interface ids and selectors,
// in that nesting order.
func (c *AllowedCallsConfig) Expand() ([]AllowedCall, error) {
	if c.IsEmpty() {
		return []AllowedCall{}, nil
	}
	if len(c.CallTypes) == 0 {
		return nil, relayErrors.NewInvalidInput("allowed calls require at least one call type")
	}
	for _, ct := range c.CallTypes {
		if ct == 0 || ct&^allCallTypes != 0 {
			return nil, relayErrors.NewInvalidInput("invalid call type %#x", uint32(ct))
		}
	}

	addresses := c.Addresses
	if len(addresses) == 0 {
		addresses = []common.Address{WildcardAddress}
	}
	interfaceIds := c.InterfaceIds
	if len(interfaceIds) == 0 {
		interfaceIds = [][4]byte{WildcardInterfaceId}
	}
	selectors := c.FunctionSelectors
	if len(selectors) == 0 {
		selectors = [][4]byte{WildcardSelector}
	}

	out := make([]AllowedCall, 0, len(c.CallTypes)*len(addresses)*len(interfaceIds)*len(selectors))
	for _, ct := range c.CallTypes {
		for _, addr := range addresses {
			for _, iid := range interfaceIds {
				for _, sel := range selectors {
					out = append(out, AllowedCall{CallType: ct, Address: addr, InterfaceId: iid, Selector: sel})
				}
			}
		}
	}
	return out, nil
}

// EncodeAllowedCalls serializes the expanded configuration as a CompactBytesArray.
//
// An empty configuration yields an empty byte string. Whether the Key Manager reads an empty
// value as "no restriction" or "no calls allowed" is left to the caller.
func EncodeAllowedCalls(config *AllowedCallsConfig) ([]byte, error) {
	calls, err := config.Expand()
	if err != nil {
		return nil, err
	}
	return EncodeAllowedCallEntries(calls)
}

// EncodeAllowedCallEntries serializes already expanded records.
func EncodeAllowedCallEntries(calls []AllowedCall) ([]byte, error) {
	if len(calls) == 0 {
		return []byte{}, nil
	}
	entries := make([][]byte, len(calls))
	for i, call := range calls {
		entries[i] = call.Pack()
	}
	return EncodeCompactBytesArray(entries)
}

// DecodeAllowedCalls parses an AllowedCalls CompactBytesArray.
func DecodeAllowedCalls(data []byte) ([]AllowedCall, error) {
	entries, err := DecodeCompactBytesArray(data)
	if err != nil {
		return nil, err
	}
	out := make([]AllowedCall, 0, len(entries))
	for i, e := range entries {
		if len(e) != AllowedCallEntryLength {
			return nil, relayErrors.NewInvalidInput("allowed calls entry %d is %d bytes, expected %d", i, len(e), AllowedCallEntryLength)
		}
		var call AllowedCall
		call.CallType = CallType(binary.BigEndian.Uint32(e[0:4]))
		call.Address = common.BytesToAddress(e[4:24])
		copy(call.InterfaceId[:], e[24:28])
		copy(call.Selector[:], e[28:32])
		out = append(out, call)
	}
	return out, nil
}

// EncodeAllowedDataKeys serializes data key prefixes (1 to 32 bytes each) as a CompactBytesArray.
// An empty list yields an empty byte string.
func EncodeAllowedDataKeys(prefixes [][]byte) ([]byte, error) {
	for i, p := range prefixes {
		if len(p) == 0 || len(p) > MaxDataKeyPrefixLength {
			return nil, relayErrors.NewInvalidInput("data key prefix %d must be 1 to %d bytes, got %d", i, MaxDataKeyPrefixLength, len(p))
		}
	}
	if len(prefixes) == 0 {
		return []byte{}, nil
	}
	return EncodeCompactBytesArray(prefixes)
}

// DecodeAllowedDataKeys parses an AllowedERC725YDataKeys CompactBytesArray.
func DecodeAllowedDataKeys(data []byte) ([][]byte, error) {
	entries, err := DecodeCompactBytesArray(data)
	if err != nil {
		return nil, err
	}
	for i, e := range entries {
		if len(e) == 0 || len(e) > MaxDataKeyPrefixLength {
			return nil, relayErrors.NewInvalidInput("data key prefix %d must be 1 to %d bytes, got %d", i, MaxDataKeyPrefixLength, len(e))
		}
	}
	return entries, nil
}

// AllowsDataKey reports whether key is covered by one of the prefixes.
func AllowsDataKey(prefixes [][]byte, key common.Hash) bool {
	for _, p := range prefixes {
		if bytes.HasPrefix(key.Bytes(), p) {
			return true
		}
	}
	return false
}

// AllowedCallsInput is the string form of AllowedCallsConfig, as read from flags or JSON.
type AllowedCallsInput struct {
	CallTypes         []string `json:"callTypes"`
	Addresses         []string `json:"addresses"`
	InterfaceIds      []string `json:"interfaceIds"`
	FunctionSelectors []string `json:"functionSelectors"`
}

var callTypeNames = map[string]CallType{
	"VALUE":        CallTypeValue,
	"CALL":         CallTypeCall,
	"STATICCALL":   CallTypeStaticCall,
	"DELEGATECALL": CallTypeDelegateCall,
}

// ParseCallType accepts a flag name (CALL, VALUE, ...) or a hex value such as 0x3.
func ParseCallType(s string) (CallType, error) {
	trimmed := strings.TrimSpace(s)
	if ct, ok := callTypeNames[strings.ToUpper(trimmed)]; ok {
		return ct, nil
	}
	raw, err := parseHex(trimmed)
	if err != nil || len(raw) == 0 || len(raw) > 4 {
		return 0, relayErrors.NewInvalidInput("invalid call type %q", s)
	}
	var buf [4]byte
	copy(buf[4-len(raw):], raw)
	ct := CallType(binary.BigEndian.Uint32(buf[:]))
	if ct == 0 || ct&^allCallTypes != 0 {
		return 0, relayErrors.NewInvalidInput("invalid call type %q", s)
	}
	return ct, nil
}

// ParseAddress parses a 20-byte hex address.
func ParseAddress(s string) (common.Address, error) {
	raw, err := parseHex(s)
	if err != nil || len(raw) != common.AddressLength {
		return common.Address{}, relayErrors.NewInvalidInput("invalid address %q: expected %d bytes of hex", s, common.AddressLength)
	}
	return common.BytesToAddress(raw), nil
}

// ParseBytes4 parses a 4-byte hex identifier (interface id or function selector).
func ParseBytes4(s string) ([4]byte, error) {
	var out [4]byte
	raw, err := parseHex(s)
	if err != nil || len(raw) != 4 {
		return out, relayErrors.NewInvalidInput("invalid 4-byte identifier %q", s)
	}
	copy(out[:], raw)
	return out, nil
}

// ParseDataKeyPrefix parses a 1 to 32 byte hex data key prefix.
func ParseDataKeyPrefix(s string) ([]byte, error) {
	raw, err := parseHex(s)
	if err != nil || len(raw) == 0 || len(raw) > MaxDataKeyPrefixLength {
		return nil, relayErrors.NewInvalidInput("invalid data key prefix %q: expected 1 to %d bytes of hex", s, MaxDataKeyPrefixLength)
	}
	return raw, nil
}

// ParseAllowedCallsInput validates the string form and converts it to an AllowedCallsConfig.
func ParseAllowedCallsInput(in AllowedCallsInput) (*AllowedCallsConfig, error) {
	cfg := &AllowedCallsConfig{}
	for _, s := range in.CallTypes {
		ct, err := ParseCallType(s)
		if err != nil {
			return nil, err
		}
		cfg.CallTypes = append(cfg.CallTypes, ct)
	}
	for _, s := range in.Addresses {
		addr, err := ParseAddress(s)
		if err != nil {
			return nil, err
		}
		cfg.Addresses = append(cfg.Addresses, addr)
	}
	for _, s := range in.InterfaceIds {
		id, err := ParseBytes4(s)
		if err != nil {
			return nil, err
		}
		cfg.InterfaceIds = append(cfg.InterfaceIds, id)
	}
	for _, s := range in.FunctionSelectors {
		sel, err := ParseBytes4(s)
		if err != nil {
			return nil, err
		}
		cfg.FunctionSelectors = append(cfg.FunctionSelectors, sel)
	}
	return cfg, nil
}

func parseHex(s string) ([]byte, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "0x"), "0X")
	if len(raw)%2 == 1 {
		raw = "0" + raw
	}
	return hexutil.Decode("0x" + raw)
}
