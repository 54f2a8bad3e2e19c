package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
	"github.com/SscSPs/coa_ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/coa_ledger_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultCashierPageSize = 20

type PgxCashierRepository struct {
	BaseRepository
}

func newPgxCashierRepository(pool *pgxpool.Pool) *PgxCashierRepository {
	return &PgxCashierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashierRepositoryFacade = (*PgxCashierRepository)(nil)

// FindCashierByID retrieves a cashier by id.
func (r *PgxCashierRepository) FindCashierByID(ctx context.Context, id int64) (*domain.Cashier, error) {
	query := `SELECT id, teller_id, office_id, staff_name, is_active FROM cashiers WHERE id = $1`
	var m models.Cashier
	err := r.db(ctx).QueryRow(ctx, query, id).Scan(&m.ID, &m.TellerID, &m.OfficeID, &m.StaffName, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cashier", id)
		}
		return nil, apperrors.NewAppError(500, "failed to find cashier", err)
	}
	c := mapping.ToDomainCashier(m)
	return &c, nil
}

// SaveCashierTransaction inserts a cashier transaction and returns it with its generated id.
func (r *PgxCashierRepository) SaveCashierTransaction(ctx context.Context, txn domain.CashierTransaction) (*domain.CashierTransaction, error) {
	m := mapping.ToModelCashierTransaction(txn)
	query := `
		INSERT INTO cashier_transactions (cashier_id, txn_type, txn_amount, currency_code, txn_date, txn_note, office_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.db(ctx).QueryRow(ctx, query,
		m.CashierID,
		m.TxnType,
		m.Amount,
		m.CurrencyCode,
		m.TxnDate,
		m.Note,
		m.OfficeID,
		m.CreatedAt,
		m.CreatedBy,
	).Scan(&m.ID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to save cashier transaction for cashier %d", m.CashierID), translateError(err))
	}
	saved := mapping.ToDomainCashierTransaction(m)
	return &saved, nil
}

// ListCashierTransactions returns one page of a cashier's history, newest first, and the token for the next page.
func (r *PgxCashierRepository) ListCashierTransactions(ctx context.Context, cashierID int64, limit int, nextToken *string) ([]domain.CashierTransaction, *string, error) {
	if limit <= 0 {
		limit = defaultCashierPageSize
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT id, cashier_id, txn_type, txn_amount, currency_code, txn_date, txn_note, office_id, created_at, created_by
		FROM cashier_transactions
		WHERE cashier_id = $1`
	orderByClause := `ORDER BY txn_date DESC, id DESC`
	args := []any{cashierID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", errors.Join(apperrors.ErrValidation, err))
		}
		query += ` AND (txn_date, id) < ($2, $3)`
		args = append(args, lastDate, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1)
	args = append(args, fetchLimit)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query transactions for cashier %d", cashierID), err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CashierTransaction, error) {
		var t models.CashierTransaction
		err := row.Scan(&t.ID, &t.CashierID, &t.TxnType, &t.Amount, &t.CurrencyCode, &t.TxnDate, &t.Note, &t.OfficeID, &t.CreatedAt, &t.CreatedBy)
		return t, err
	})
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, fmt.Sprintf("failed to scan transactions for cashier %d", cashierID), err)
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.TxnDate, last.ID)
		next = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainCashierTransactionSlice(ms), next, nil
}
