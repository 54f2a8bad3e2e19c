package repositories

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// ReferenceDataReader exposes the reference data owned by neighbouring subsystems.
type ReferenceDataReader interface {
	// FindPaymentTypeByID retrieves a payment type. Returns apperrors.ErrNotFound when missing.
	FindPaymentTypeByID(ctx context.Context, id int64) (*domain.PaymentType, error)

	// FindChargeByID retrieves a charge. Returns apperrors.ErrNotFound when missing.
	FindChargeByID(ctx context.Context, id int64) (*domain.Charge, error)

	// FindAccountForActivity retrieves the GL account configured for a financial activity.
	// Returns apperrors.ErrNotFound when the activity has no account.
	FindAccountForActivity(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error)
}
