package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/models"
)

// errInternal hides storage details from clients.
var errInternal = errors.New("internal error")

// connectError maps ledger errors to Connect codes. Unclassified errors are
// logged and returned as CodeInternal without their message.
func connectError(logger *slog.Logger, msg string, err error, attrs ...any) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	var code connect.Code
	switch {
	case errors.Is(err, models.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, models.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, models.ErrForbidden):
		code = connect.CodePermissionDenied
	case errors.Is(err, models.ErrUnauthenticated):
		code = connect.CodeUnauthenticated
	default:
		logger.Error(msg, append(attrs, "error", err)...)
		return connect.NewError(connect.CodeInternal, errInternal)
	}

	logger.Warn(msg, append(attrs, "error", err)...)
	return connect.NewError(code, err)
}
