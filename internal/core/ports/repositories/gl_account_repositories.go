package repositories

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// GLAccountReader defines read operations over the chart of accounts.
type GLAccountReader interface {
	// FindGLAccountByID retrieves a GL account. Returns apperrors.ErrNotFound when missing.
	FindGLAccountByID(ctx context.Context, id int64) (*domain.GLAccount, error)

	// FindGLAccountsByIDs retrieves several GL accounts keyed by id. Missing ids are absent from the map.
	FindGLAccountsByIDs(ctx context.Context, ids []int64) (map[int64]domain.GLAccount, error)
}
