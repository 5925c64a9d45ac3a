package handlers

import (
	"errors"
	"net/http"
	"testing"

	"medrequest_xpto/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", usecase.ErrReasonRequired, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unauthorized", usecase.ErrVerificationFailed, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", usecase.ErrNotOwner, http.StatusForbidden, "FORBIDDEN"},
		{"not found", usecase.ErrRequestNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"invalid state", usecase.ErrIllegalTransition, http.StatusConflict, "INVALID_STATE"},
		{"already processed", usecase.ErrPaymentAlreadyActive, http.StatusConflict, "PAYMENT_ALREADY_PROCESSED"},
		{"external", errors.Join(usecase.ErrGatewayUnavailable, errors.New("timeout")), http.StatusBadGateway, "UPSTREAM_FAILURE"},
		{"price missing", usecase.ErrPriceNotConfigured, http.StatusUnprocessableEntity, "PRICE_NOT_CONFIGURED"},
		{"fatal", usecase.ErrGatewayNotConfigured, http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := mapError(tt.err)
			if appErr.HTTPStatus != tt.status || appErr.Code != tt.code {
				t.Fatalf("expected %d %s, got %d %s", tt.status, tt.code, appErr.HTTPStatus, appErr.Code)
			}
		})
	}
}
