package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	errNotMember = errors.New("caller is not a member of this group")
	errNotAuthed = errors.New("no authenticated user in context")
)

// toConnectError maps ledger and storage errors to Connect status codes.
// A raw storage error gets the same code as the ledger kind it would map to,
// except conflicts, which surface as AlreadyExists. Storage failures are
// reported without their cause.
func toConnectError(err error) error {
	var le *ledger.Error
	if errors.As(err, &le) {
		switch le.Kind {
		case ledger.KindValidation:
			return connect.NewError(connect.CodeInvalidArgument, errors.New(le.Error()))
		case ledger.KindInvalidReference:
			return connect.NewError(connect.CodeNotFound, errors.New(le.Error()))
		default:
			return connect.NewError(connect.CodeInternal, fmt.Errorf("%s: storage failure", le.Op))
		}
	}

	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidReference):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrInvalidState):
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}
