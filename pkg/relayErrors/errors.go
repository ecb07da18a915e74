package relayErrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies every failure surfaced by the authorization and relay pipeline.
type ErrorKind int

const (
	Unknown ErrorKind = iota
	// InvalidInput covers malformed addresses, selectors, bitmasks and oversized encodings.
	// It is always raised before any network or crypto work.
	InvalidInput
	// KeyDecryptFailed is returned by key-storage collaborators (wrong password, corrupted key material).
	KeyDecryptFailed
	// NetworkError means the chain RPC could not be reached (nonce, chain id, reads).
	NetworkError
	// RelayFailed is a non-2xx or malformed response from the relay service.
	RelayFailed
	// TransactionFailed means a direct transaction could not be built, signed or broadcast.
	TransactionFailed
	// Reverted means on-chain execution failed after submission (or during simulation).
	Reverted
	// InvalidSignature means a recovered signer does not match the expected one.
	InvalidSignature
)

var kindCodes = map[ErrorKind]string{
	Unknown:           "unknown",
	InvalidInput:      "invalid_input",
	KeyDecryptFailed:  "key_decrypt_failed",
	NetworkError:      "network_error",
	RelayFailed:       "relay_failed",
	TransactionFailed: "transaction_failed",
	Reverted:          "reverted",
	InvalidSignature:  "invalid_signature",
}

// Code returns the stable string code for the kind.
func (k ErrorKind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[Unknown]
}

func (k ErrorKind) String() string {
	return k.Code()
}

// Error is the tagged error type carried through the pipeline.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]string

	// StatusCode and Body are set for RelayFailed errors.
	StatusCode int
	Body       string

	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Code())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, e.Details[k]))
		}
		sb.WriteString(" [")
		sb.WriteString(strings.Join(parts, " "))
		sb.WriteString("]")
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail returns the error with an additional detail entry.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates an Error of the given kind.
func New(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an Error of the given kind around a cause.
func Wrap(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewInvalidInput(format string, args ...interface{}) *Error {
	return New(InvalidInput, fmt.Sprintf(format, args...))
}

func NewKeyDecryptFailed(err error, message string) *Error {
	return Wrap(KeyDecryptFailed, err, message)
}

func NewNetworkError(err error, message string) *Error {
	return Wrap(NetworkError, err, message)
}

// NewRelayFailed records the relay's HTTP status and raw body.
func NewRelayFailed(statusCode int, body string, message string) *Error {
	return &Error{Kind: RelayFailed, Message: message, StatusCode: statusCode, Body: body}
}

func NewTransactionFailed(err error, message string) *Error {
	return Wrap(TransactionFailed, err, message)
}

func NewReverted(err error, message string) *Error {
	return Wrap(Reverted, err, message)
}

func NewInvalidSignature(message string) *Error {
	return New(InvalidSignature, message)
}

// KindOf returns the kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// Ensure wraps err with the given kind unless it already carries one.
func Ensure(kind ErrorKind, err error, message string) error {
	if err == nil {
		return nil
	}
	if KindOf(err) != Unknown {
		return err
	}
	return Wrap(kind, err, message)
}
