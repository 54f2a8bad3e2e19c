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

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveJournalEntries inserts the legs of a posting in one batch and returns their ids in order.
// It must run inside WithinTx so that a failing leg discards the others.
func (r *PgxJournalRepository) SaveJournalEntries(ctx context.Context, entries []domain.JournalEntry) ([]int64, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entries (office_id, gl_account_id, currency_code, transaction_id, entry_type, amount, entry_date, description, entity_type, entity_id, reversed, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	for _, e := range entries {
		m := mapping.ToModelJournalEntry(e)
		batch.Queue(query,
			m.OfficeID,
			m.GLAccountID,
			m.CurrencyCode,
			m.TransactionID,
			m.EntryType,
			m.Amount,
			m.EntryDate,
			m.Description,
			m.EntityType,
			m.EntityID,
			m.Reversed,
			m.CreatedAt,
			m.CreatedBy,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	ids := make([]int64, 0, len(entries))
	for range entries {
		var id int64
		if err := br.QueryRow().Scan(&id); err != nil {
			_ = br.Close()
			return nil, r.saveError(entries[0].TransactionID, err)
		}
		ids = append(ids, id)
	}
	if err := br.Close(); err != nil {
		return nil, r.saveError(entries[0].TransactionID, err)
	}
	return ids, nil
}

func (r *PgxJournalRepository) saveError(transactionID string, err error) error {
	translated := translateError(err)
	if errors.Is(translated, apperrors.ErrDuplicate) {
		return apperrors.NewAppError(409, "journal entry already posted for transaction "+transactionID, translated)
	}
	return apperrors.NewAppError(500, "failed to save journal entries for transaction "+transactionID, translated)
}

// FindJournalEntriesByTransactionID returns the legs of a posting, debit first.
func (r *PgxJournalRepository) FindJournalEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT id, office_id, gl_account_id, currency_code, transaction_id, entry_type, amount, entry_date,
		       description, entity_type, entity_id, reversed, created_at, created_by
		FROM journal_entries
		WHERE transaction_id = $1
		ORDER BY CASE entry_type WHEN 'DEBIT' THEN 0 ELSE 1 END, id`
	rows, err := r.db(ctx).Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries for transaction "+transactionID, err)
	}
	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntry, error) {
		var e models.JournalEntry
		err := row.Scan(&e.ID, &e.OfficeID, &e.GLAccountID, &e.CurrencyCode, &e.TransactionID, &e.EntryType, &e.Amount, &e.EntryDate,
			&e.Description, &e.EntityType, &e.EntityID, &e.Reversed, &e.CreatedAt, &e.CreatedBy)
		return e, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan journal entries for transaction "+transactionID, err)
	}
	return mapping.ToDomainJournalEntrySlice(ms), nil
}
