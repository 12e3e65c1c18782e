package ledger

import (
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/storage"
)

// Kind classifies ledger errors so the transport layer can map them to status codes.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindInvalidReference
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInvalidReference:
		return "invalid_reference"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is returned by every ledger operation that fails.
type Error struct {
	Kind    Kind
	Op      string // Operation that failed, e.g. "record expense"
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Message
	if e.Err != nil && e.Kind == KindStorage {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a ledger Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == kind
}

func validationError(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

func referenceError(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidReference, Op: op, Message: fmt.Sprintf(format, args...)}
}

// fromStorage translates a store error into a ledger Error.
func fromStorage(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidReference):
		return &Error{Kind: KindInvalidReference, Op: op, Message: err.Error(), Err: err}
	case errors.Is(err, storage.ErrConflict), errors.Is(err, storage.ErrInvalidState):
		return &Error{Kind: KindValidation, Op: op, Message: err.Error(), Err: err}
	default:
		return &Error{Kind: KindStorage, Op: op, Message: "storage failure", Err: err}
	}
}
