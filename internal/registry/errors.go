package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors raised by registry operations. A rejected operation never
// mutates registry state.
var (
	// ErrAlreadyRegistered is returned by Register when the name already has an owner
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalidName is returned when a name fails the validity rule
	ErrInvalidName = errors.New("invalid name")

	// ErrInsufficientPayment is returned by Register when the payment is below the price
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrUnauthorized is returned when the caller lacks the privilege for the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotRegistered is returned when an operation needs a registered name
	ErrNotRegistered = errors.New("not registered")
)

// OpError records the operation and domain name that produced an error.
type OpError struct {
	Op   string
	Name string
	Err  error
}

func (e *OpError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Kind is the stable, user-facing name of a registry failure.
type Kind string

const (
	KindAlreadyRegistered   Kind = "AlreadyRegistered"
	KindInvalidName         Kind = "InvalidName"
	KindInsufficientPayment Kind = "InsufficientPayment"
	KindUnauthorized        Kind = "Unauthorized"
	KindNotRegistered       Kind = "NotRegistered"
)

var kinds = []struct {
	kind Kind
	err  error
}{
	{KindAlreadyRegistered, ErrAlreadyRegistered},
	{KindInvalidName, ErrInvalidName},
	{KindInsufficientPayment, ErrInsufficientPayment},
	{KindUnauthorized, ErrUnauthorized},
	{KindNotRegistered, ErrNotRegistered},
}

// KindOf classifies err. It returns the empty Kind for errors that did not
// originate from a registry rule.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return ""
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(string(k.kind), strings.TrimSpace(s)) {
			return k.kind, nil
		}
	}
	return "", fmt.Errorf("unknown error kind %q", s)
}

// Err returns the sentinel error for a kind.
func (k Kind) Err() error {
	for _, entry := range kinds {
		if entry.kind == k {
			return entry.err
		}
	}
	return nil
}
