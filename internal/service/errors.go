package service

import (
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/apacheta/apacheta/internal/settlement"
	"github.com/apacheta/apacheta/internal/storage"
)

// toConnectError maps domain and storage errors onto connect codes.
func toConnectError(err error) *connect.Error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return connect.NewError(connect.CodeInvalidArgument, describeValidation(validationErrs))
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, settlement.ErrInvalidAmount),
		errors.Is(err, settlement.ErrInvalidParticipant),
		errors.Is(err, settlement.ErrDuplicateParticipant),
		errors.Is(err, settlement.ErrUnknownParticipant),
		errors.Is(err, settlement.ErrInvalidPayment):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func describeValidation(errs validator.ValidationErrors) error {
	fields := make([]string, len(errs))
	for i, fe := range errs {
		fields[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid request: %s", strings.Join(fields, "; "))
}
