package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NewNotFoundError("GL account", 7), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load charge: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"category", &apperrors.InvalidAccountCategoryError{Parameter: "loanPortfolioAccountId"}, http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: header account", apperrors.ErrValidation), http.StatusBadRequest},
		{"duplicate", &apperrors.DuplicateBindingError{Slot: "FUND_SOURCE"}, http.StatusConflict},
		{"configuration missing", &apperrors.ConfigurationMissingError{Activity: "CASH_AT_MAIN_VAULT"}, http.StatusUnprocessableEntity},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{"app error code", apperrors.NewAppError(http.StatusServiceUnavailable, "db down", nil), http.StatusServiceUnavailable},
		{"app error out of range", apperrors.NewAppError(42, "odd", nil), http.StatusInternalServerError},
		{"sentinel beats code", apperrors.NewAppError(500, "lookup", apperrors.ErrNotFound), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
