package api

import (
	"errors"
	"net/http"

	"chainart-registry-go/internal/approval"
	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/store"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the JSON error envelope returned on every failed request.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mapError translates the error taxonomy into an HTTP status and a stable
// error code. Ledger outcomes keep their classification visible: a 502 with
// LEDGER_UNREACHABLE means the submission outcome is unknown, not rejected.
func mapError(err error) (int, ErrorBody) {
	var classified *ledger.ClassifiedError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, ErrorBody{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, store.ErrAlreadyApproved):
		return http.StatusConflict, ErrorBody{Code: "ALREADY_APPROVED", Message: err.Error()}
	case errors.Is(err, approval.ErrNotAuthorized):
		return http.StatusForbidden, ErrorBody{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, approval.ErrNotCreator):
		return http.StatusForbidden, ErrorBody{Code: "NOT_CREATOR", Message: err.Error()}
	case errors.Is(err, approval.ErrInvalidWallet):
		return http.StatusUnprocessableEntity, ErrorBody{Code: "INVALID_WALLET", Message: err.Error()}
	case errors.As(err, &classified):
		switch classified.Kind {
		case ledger.KindUnknownRevert:
			return http.StatusBadGateway, ErrorBody{Code: "LEDGER_REJECTED", Message: classified.Error()}
		default:
			return http.StatusBadGateway, ErrorBody{Code: "LEDGER_UNREACHABLE", Message: classified.Error()}
		}
	default:
		return http.StatusInternalServerError, ErrorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}
	}
}

func newValidationError(message string) *fiber.Error {
	return fiber.NewError(http.StatusBadRequest, message)
}
