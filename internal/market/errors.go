package market

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure.
type Kind int

const (
	// KindNetwork covers transport failures and non-2xx responses.
	KindNetwork Kind = iota
	// KindParse covers malformed or unexpected upstream payloads.
	KindParse
	// KindEmpty means the upstream answered but had no data to offer.
	KindEmpty
	// KindCredential means the crumb handshake failed.
	KindCredential
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindEmpty:
		return "empty"
	case KindCredential:
		return "credential"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrEmptyHistory is wrapped by History fetches that return zero points.
var ErrEmptyHistory = errors.New("history data is empty")

// Error is the error type returned by every fetch in this package.
type Error struct {
	Kind   Kind
	Op     string // "quote", "history", "details", "search", "market", "crumb"
	Symbol string // may be empty
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

func newError(kind Kind, op, symbol string, err error) *Error {
	return &Error{Kind: kind, Op: op, Symbol: symbol, Err: err}
}
