package permissions

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
)

// Permission is the bit position of a named LSP6 capability.
type Permission uint8

const (
	ChangeOwner Permission = iota
	AddController
	EditPermissions
	AddExtensions
	ChangeExtensions
	AddUniversalReceiverDelegate
	ChangeUniversalReceiverDelegate
	Reentrancy
	SuperTransferValue
	TransferValue
	SuperCall
	Call
	SuperStaticCall
	StaticCall
	SuperDelegateCall
	DelegateCall
	Deploy
	SuperSetData
	SetData
	Encrypt
	Decrypt
	Sign
	ExecuteRelayCall
)

type riskTier uint8

const (
	tierNone riskTier = iota
	tierWarning
	tierRisk
)

type catalogEntry struct {
	permission Permission
	name       string
	tier       riskTier
	impact     string
}

// catalog is ordered by bit position; Decode reports names in this order.
var catalog = [...]catalogEntry{
	{ChangeOwner, "CHANGEOWNER", tierRisk, "can transfer ownership of the account"},
	{AddController, "ADDCONTROLLER", tierRisk, "can grant permissions to new controllers"},
	{EditPermissions, "EDITPERMISSIONS", tierRisk, "can change the permissions of existing controllers"},
	{AddExtensions, "ADDEXTENSIONS", tierWarning, "can register new extension contracts"},
	{ChangeExtensions, "CHANGEEXTENSIONS", tierWarning, "can replace existing extension contracts"},
	{AddUniversalReceiverDelegate, "ADDUNIVERSALRECEIVERDELEGATE", tierWarning, "can add universal receiver delegates"},
	{ChangeUniversalReceiverDelegate, "CHANGEUNIVERSALRECEIVERDELEGATE", tierWarning, "can replace universal receiver delegates"},
	{Reentrancy, "REENTRANCY", tierWarning, "can re-enter the key manager during execution"},
	{SuperTransferValue, "SUPER_TRANSFERVALUE", tierWarning, "can transfer native value to any address"},
	{TransferValue, "TRANSFERVALUE", tierNone, ""},
	{SuperCall, "SUPER_CALL", tierWarning, "can call any contract and function"},
	{Call, "CALL", tierNone, ""},
	{SuperStaticCall, "SUPER_STATICCALL", tierWarning, "can static-call any contract"},
	{StaticCall, "STATICCALL", tierNone, ""},
	{SuperDelegateCall, "SUPER_DELEGATECALL", tierRisk, "can execute arbitrary code in the account context"},
	{DelegateCall, "DELEGATECALL", tierRisk, "can execute foreign code in the account context"},
	{Deploy, "DEPLOY", tierWarning, "can deploy contracts from the account"},
	{SuperSetData, "SUPER_SETDATA", tierWarning, "can write any data key on the account"},
	{SetData, "SETDATA", tierNone, ""},
	{Encrypt, "ENCRYPT", tierNone, ""},
	{Decrypt, "DECRYPT", tierNone, ""},
	{Sign, "SIGN", tierWarning, "can sign messages on behalf of the account"},
	{ExecuteRelayCall, "EXECUTE_RELAY_CALL", tierNone, ""},
}

// AllPermissionsBits is every catalog permission except REENTRANCY, SUPER_DELEGATECALL and DELEGATECALL.
const AllPermissionsBits uint64 = 0x7f3f7f

// Catalog returns the known permissions in bit order.
func Catalog() []Permission {
	out := make([]Permission, len(catalog))
	for i, e := range catalog {
		out[i] = e.permission
	}
	return out
}

// IsKnown reports whether p is part of the catalog.
func (p Permission) IsKnown() bool {
	return int(p) < len(catalog)
}

func (p Permission) String() string {
	if !p.IsKnown() {
		return "UNKNOWN"
	}
	return catalog[p].name
}

// Bit returns the single-bit mask for p.
func (p Permission) Bit() Bitmask {
	var b Bitmask
	b.value.Lsh(uint256.NewInt(1), uint(p))
	return b
}

// ParseName resolves a catalog name such as "SUPER_SETDATA". Matching is case-insensitive.
func ParseName(name string) (Permission, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for _, e := range catalog {
		if e.name == normalized {
			return e.permission, nil
		}
	}
	return 0, relayErrors.NewInvalidInput("unknown permission name %q", name)
}

// Bitmask is the 256-bit LSP6 permission value, encoded on chain as 32 bytes big-endian.
type Bitmask struct {
	value uint256.Int
}

// NewBitmask copies v into a Bitmask.
func NewBitmask(v *uint256.Int) Bitmask {
	var b Bitmask
	if v != nil {
		b.value.Set(v)
	}
	return b
}

// BitmaskFromUint64 builds a Bitmask from the low 64 bits.
func BitmaskFromUint64(v uint64) Bitmask {
	var b Bitmask
	b.value.SetUint64(v)
	return b
}

// BitmaskFromBytes reads a big-endian value of at most 32 bytes.
func BitmaskFromBytes(buf []byte) (Bitmask, error) {
	var b Bitmask
	if len(buf) > 32 {
		return b, relayErrors.NewInvalidInput("permission bitmask must be at most 32 bytes, got %d", len(buf))
	}
	b.value.SetBytes(buf)
	return b, nil
}

// ParseBitmask parses a hex bitmask with an optional 0x prefix.
func ParseBitmask(s string) (Bitmask, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if raw == "" {
		return Bitmask{}, relayErrors.NewInvalidInput("permission bitmask is empty")
	}
	if len(raw)%2 == 1 {
		raw = "0" + raw
	}
	buf, err := hexutil.Decode("0x" + raw)
	if err != nil {
		return Bitmask{}, relayErrors.NewInvalidInput("permission bitmask %q is not valid hex", s)
	}
	return BitmaskFromBytes(buf)
}

// AllPermissions returns the ALL_PERMISSIONS preset.
func AllPermissions() Bitmask {
	return BitmaskFromUint64(AllPermissionsBits)
}

func (b Bitmask) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&b.value)
}

func (b Bitmask) Bytes32() [32]byte {
	return b.value.Bytes32()
}

// Hex returns the 0x-prefixed 32-byte big-endian representation.
func (b Bitmask) Hex() string {
	raw := b.value.Bytes32()
	return hexutil.Encode(raw[:])
}

func (b Bitmask) String() string {
	return b.Hex()
}

func (b Bitmask) IsZero() bool {
	return b.value.IsZero()
}

func (b Bitmask) Equal(o Bitmask) bool {
	return b.value.Eq(&o.value)
}

func (b Bitmask) Or(o Bitmask) Bitmask {
	var out Bitmask
	out.value.Or(&b.value, &o.value)
	return out
}

func (b Bitmask) And(o Bitmask) Bitmask {
	var out Bitmask
	out.value.And(&b.value, &o.value)
	return out
}

func (b Bitmask) isSet(bit uint) bool {
	var shifted uint256.Int
	shifted.Rsh(&b.value, bit)
	return shifted.Uint64()&1 == 1
}

// knownMask has every catalog bit set.
func knownMask() Bitmask {
	var out Bitmask
	for _, e := range catalog {
		out = out.Or(e.permission.Bit())
	}
	return out
}

// Combine ORs the bits of the given permissions. Permissions outside the catalog are rejected.
func Combine(perms ...Permission) (Bitmask, error) {
	var out Bitmask
	for _, p := range perms {
		if !p.IsKnown() {
			return Bitmask{}, relayErrors.NewInvalidInput("unknown permission bit %d", uint8(p))
		}
		out = out.Or(p.Bit())
	}
	return out, nil
}

// CombineNames resolves and combines catalog names.
func CombineNames(names ...string) (Bitmask, error) {
	perms := make([]Permission, 0, len(names))
	for _, name := range names {
		p, err := ParseName(name)
		if err != nil {
			return Bitmask{}, err
		}
		perms = append(perms, p)
	}
	return Combine(perms...)
}

// Decode lists the catalog permissions set in mask, in bit order.
// Bits outside the catalog are not reported; see UnknownBits and DecodeStrict.
func Decode(mask Bitmask) []Permission {
	out := make([]Permission, 0)
	for _, e := range catalog {
		if mask.isSet(uint(e.permission)) {
			out = append(out, e.permission)
		}
	}
	return out
}

// DecodeNames is Decode returning catalog names.
func DecodeNames(mask Bitmask) []string {
	perms := Decode(mask)
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = p.String()
	}
	return out
}

// UnknownBits returns the bits of mask that no catalog entry covers.
func UnknownBits(mask Bitmask) Bitmask {
	var notKnown uint256.Int
	known := knownMask()
	notKnown.Not(&known.value)
	var out Bitmask
	out.value.And(&mask.value, &notKnown)
	return out
}

// DecodeStrict is Decode but fails when mask carries bits outside the catalog.
func DecodeStrict(mask Bitmask) ([]Permission, error) {
	unknown := UnknownBits(mask)
	if !unknown.IsZero() {
		return nil, relayErrors.NewInvalidInput("permission bitmask has unrecognized bits %s", unknown.Hex())
	}
	return Decode(mask), nil
}

// HasPermission tests the bit for p. Permissions outside the catalog are never set.
func HasPermission(mask Bitmask, p Permission) bool {
	if !p.IsKnown() {
		return false
	}
	return mask.isSet(uint(p))
}

// RiskReport classifies high-impact bits of a bitmask.
type RiskReport struct {
	// Valid is false iff at least one risk-tier permission is set.
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Risks    []string `json:"risks"`
}

// ClassifyRisk sorts the high-impact bits of mask into risks, which should block automated consent,
// and warnings, which should be shown to a human.
func ClassifyRisk(mask Bitmask) RiskReport {
	report := RiskReport{
		Warnings: make([]string, 0),
		Risks:    make([]string, 0),
	}
	for _, e := range catalog {
		if !mask.isSet(uint(e.permission)) {
			continue
		}
		switch e.tier {
		case tierRisk:
			report.Risks = append(report.Risks, e.name+": "+e.impact)
		case tierWarning:
			report.Warnings = append(report.Warnings, e.name+": "+e.impact)
		}
	}
	if unknown := UnknownBits(mask); !unknown.IsZero() {
		report.Warnings = append(report.Warnings, "UNKNOWN: unrecognized permission bits "+unknown.Hex())
	}
	report.Valid = len(report.Risks) == 0
	return report
}
