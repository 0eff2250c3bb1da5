package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"chainart-registry-go/internal/approval"
	"chainart-registry-go/internal/ledger"
	"chainart-registry-go/internal/store"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found",
			err:        fmt.Errorf("account abc: %w", store.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "duplicate",
			err:        store.ErrDuplicate,
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "already approved",
			err:        store.ErrAlreadyApproved,
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_APPROVED",
		},
		{
			name:       "not authorized",
			err:        approval.ErrNotAuthorized,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "not creator",
			err:        approval.ErrNotCreator,
			wantStatus: http.StatusForbidden,
			wantCode:   "NOT_CREATOR",
		},
		{
			name:       "invalid wallet",
			err:        approval.ErrInvalidWallet,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_WALLET",
		},
		{
			name:       "ledger rejected",
			err:        ledger.Classify(errors.New("execution reverted: registry paused")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "LEDGER_REJECTED",
		},
		{
			name:       "ledger unreachable",
			err:        ledger.Classify(errors.New("dial tcp: connection refused")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "LEDGER_UNREACHABLE",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := mapError(tt.err)
			if status != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, status)
			}
			if body.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, body.Code)
			}
		})
	}
}
