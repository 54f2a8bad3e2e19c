package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
	"github.com/SscSPs/coa_ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReferenceRepository reads chart-of-accounts and other reference data.
type PgxReferenceRepository struct {
	BaseRepository
}

func newPgxReferenceRepository(pool *pgxpool.Pool) *PgxReferenceRepository {
	return &PgxReferenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.GLAccountReader     = (*PgxReferenceRepository)(nil)
	_ portsrepo.ReferenceDataReader = (*PgxReferenceRepository)(nil)
)

const selectGLAccountFields = `id, name, gl_code, account_type, account_usage, disabled`

func scanGLAccount(row pgx.Row) (models.GLAccount, error) {
	var m models.GLAccount
	err := row.Scan(&m.ID, &m.Name, &m.GLCode, &m.AccountType, &m.Usage, &m.Disabled)
	return m, err
}

// FindGLAccountByID retrieves a GL account by id.
func (r *PgxReferenceRepository) FindGLAccountByID(ctx context.Context, id int64) (*domain.GLAccount, error) {
	query := `SELECT ` + selectGLAccountFields + ` FROM gl_accounts WHERE id = $1`
	m, err := scanGLAccount(r.db(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("GL account", id)
		}
		return nil, apperrors.NewAppError(500, "failed to find GL account", err)
	}
	a := mapping.ToDomainGLAccount(m)
	return &a, nil
}

// FindGLAccountsByIDs retrieves several GL accounts keyed by id.
func (r *PgxReferenceRepository) FindGLAccountsByIDs(ctx context.Context, ids []int64) (map[int64]domain.GLAccount, error) {
	out := make(map[int64]domain.GLAccount, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + selectGLAccountFields + ` FROM gl_accounts WHERE id = ANY($1)`
	rows, err := r.db(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query GL accounts", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanGLAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan GL account row", err)
		}
		out[m.ID] = mapping.ToDomainGLAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating GL account rows", err)
	}
	return out, nil
}

// FindPaymentTypeByID retrieves a payment type by id.
func (r *PgxReferenceRepository) FindPaymentTypeByID(ctx context.Context, id int64) (*domain.PaymentType, error) {
	query := `SELECT id, name, description, is_cash_payment FROM payment_types WHERE id = $1`
	var m models.PaymentType
	err := r.db(ctx).QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Description, &m.IsCashPayment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment type", id)
		}
		return nil, apperrors.NewAppError(500, "failed to find payment type", err)
	}
	p := mapping.ToDomainPaymentType(m)
	return &p, nil
}

// FindChargeByID retrieves a charge by id.
func (r *PgxReferenceRepository) FindChargeByID(ctx context.Context, id int64) (*domain.Charge, error) {
	query := `SELECT id, name, currency_code, is_penalty, is_active FROM charges WHERE id = $1`
	var m models.Charge
	err := r.db(ctx).QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.CurrencyCode, &m.IsPenalty, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("charge", id)
		}
		return nil, apperrors.NewAppError(500, "failed to find charge", err)
	}
	c := mapping.ToDomainCharge(m)
	return &c, nil
}

// FindAccountForActivity retrieves the GL account mapped to a financial activity.
func (r *PgxReferenceRepository) FindAccountForActivity(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	query := `
		SELECT g.id, g.name, g.gl_code, g.account_type, g.account_usage, g.disabled
		FROM financial_activity_accounts f
		JOIN gl_accounts g ON g.id = f.gl_account_id
		WHERE f.financial_activity_type = $1`
	m, err := scanGLAccount(r.db(ctx).QueryRow(ctx, query, int(activity)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("financial activity account", activity)
		}
		return nil, apperrors.NewAppError(500, "failed to find account for financial activity "+activity.String(), err)
	}
	a := mapping.ToDomainGLAccount(m)
	return &a, nil
}
