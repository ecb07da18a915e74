package relayMessage

import (
	"math"
	"math/big"
	"time"

	"github.com/holiman/uint256"
	"github.com/lsp-relay/lsp-relay-go/pkg/relayErrors"
)

// IndefiniteDuration passed to CreateValidityTimestamps yields the all-zero sentinel.
const IndefiniteDuration int64 = -1

var (
	// ErrNotYetActive and ErrExpired mirror the Key Manager's validity checks.
	ErrNotYetActive = relayErrors.NewInvalidInput("relay call is not active yet")
	ErrExpired      = relayErrors.NewInvalidInput("relay call has expired")
)

// ValidityTimestamps packs a start (high 128 bits) and end (low 128 bits) unix timestamp.
// The zero value is the indefinite sentinel: valid from now on, with no end.
type ValidityTimestamps struct {
	value uint256.Int
}

// Indefinite returns the all-zero sentinel.
func Indefinite() ValidityTimestamps {
	return ValidityTimestamps{}
}

// NewValidityTimestamps packs start and end seconds.
func NewValidityTimestamps(start, end uint64) ValidityTimestamps {
	var v ValidityTimestamps
	v.value.Lsh(uint256.NewInt(start), 128)
	v.value.Or(&v.value, uint256.NewInt(end))
	return v
}

// ValidityTimestampsFromUint256 wraps a packed value read from elsewhere.
func ValidityTimestampsFromUint256(packed *uint256.Int) ValidityTimestamps {
	var v ValidityTimestamps
	if packed != nil {
		v.value.Set(packed)
	}
	return v
}

// ParseValidityTimestamps reads a decimal or 0x-prefixed packed value.
func ParseValidityTimestamps(s string) (ValidityTimestamps, error) {
	if s == "" {
		return Indefinite(), nil
	}
	parsed, ok := new(big.Int).SetString(s, 0)
	if !ok || parsed.Sign() < 0 {
		return ValidityTimestamps{}, relayErrors.NewInvalidInput("invalid validity timestamps %q", s)
	}
	packed, overflow := uint256.FromBig(parsed)
	if overflow {
		return ValidityTimestamps{}, relayErrors.NewInvalidInput("validity timestamps %q exceed 256 bits", s)
	}
	return ValidityTimestampsFromUint256(packed), nil
}

// CreateValidityTimestamps computes start = now + startOffsetSeconds and end = start + durationSeconds.
// Passing IndefiniteDuration returns the zero sentinel without reading the clock.
func CreateValidityTimestamps(now time.Time, startOffsetSeconds, durationSeconds int64) (ValidityTimestamps, error) {
	if durationSeconds == IndefiniteDuration {
		return Indefinite(), nil
	}
	if durationSeconds < 0 {
		return ValidityTimestamps{}, relayErrors.NewInvalidInput("validity duration must not be negative")
	}
	start := now.Unix() + startOffsetSeconds
	if start < 0 {
		return ValidityTimestamps{}, relayErrors.NewInvalidInput("validity window starts before the unix epoch")
	}
	if durationSeconds > math.MaxInt64-start {
		return ValidityTimestamps{}, relayErrors.NewInvalidInput("validity window end overflows")
	}
	return NewValidityTimestamps(uint64(start), uint64(start+durationSeconds)), nil
}

func (v ValidityTimestamps) Uint256() *uint256.Int {
	return new(uint256.Int).Set(&v.value)
}

// Start is the high 128 bits. Values above 64 bits saturate.
func (v ValidityTimestamps) Start() uint64 {
	var hi uint256.Int
	hi.Rsh(&v.value, 128)
	if !hi.IsUint64() {
		return math.MaxUint64
	}
	return hi.Uint64()
}

// End is the low 128 bits. Values above 64 bits saturate.
func (v ValidityTimestamps) End() uint64 {
	if v.value[1] != 0 {
		return math.MaxUint64
	}
	return v.value[0]
}

func (v ValidityTimestamps) IsIndefinite() bool {
	return v.value.IsZero()
}

// CheckAt applies the Key Manager rule: fail when t is before start, or when end is non-zero and t is after it.
func (v ValidityTimestamps) CheckAt(t time.Time) error {
	if v.IsIndefinite() {
		return nil
	}
	now := uint64(0)
	if t.Unix() > 0 {
		now = uint64(t.Unix())
	}
	if now < v.Start() {
		return ErrNotYetActive
	}
	if end := v.End(); end != 0 && now > end {
		return ErrExpired
	}
	return nil
}

// Decimal is the form the relay service expects.
func (v ValidityTimestamps) Decimal() string {
	return v.value.Dec()
}

func (v ValidityTimestamps) String() string {
	return v.Decimal()
}
