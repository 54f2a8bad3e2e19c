package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/SscSPs/coa_ledger_engine/internal/utils/pagination"
)

const defaultPageSize = 20

func (s *Store) FindCashierByID(ctx context.Context, id int64) (*domain.Cashier, error) {
	var (
		c  domain.Cashier
		ok bool
	)
	s.read(ctx, func(st *state) { c, ok = st.cashiers[id] })
	if !ok {
		return nil, apperrors.NewNotFoundError("cashier", id)
	}
	return &c, nil
}

func (s *Store) SaveCashierTransaction(ctx context.Context, txn domain.CashierTransaction) (*domain.CashierTransaction, error) {
	err := s.write(ctx, func(st *state) error {
		if _, ok := st.cashiers[txn.CashierID]; !ok {
			return apperrors.NewNotFoundError("cashier", txn.CashierID)
		}
		txn.ID = st.newID()
		st.cashierTxns[txn.ID] = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *Store) ListCashierTransactions(ctx context.Context, cashierID int64, limit int, nextToken *string) ([]domain.CashierTransaction, *string, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}

	var all []domain.CashierTransaction
	s.read(ctx, func(st *state) {
		for _, t := range st.cashierTxns {
			if t.CashierID == cashierID {
				all = append(all, t)
			}
		}
	})
	slices.SortFunc(all, func(a, b domain.CashierTransaction) int {
		if c := b.TxnDate.Compare(a.TxnDate); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		all = slices.DeleteFunc(all, func(t domain.CashierTransaction) bool {
			return !pagination.After(t.TxnDate, t.ID, cursorDate, cursorID)
		})
	}

	if len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[limit-1]
	token := pagination.EncodeToken(last.TxnDate, last.ID)
	return page, &token, nil
}

func (s *Store) SaveJournalEntries(ctx context.Context, entries []domain.JournalEntry) ([]int64, error) {
	ids := make([]int64, 0, len(entries))
	err := s.write(ctx, func(st *state) error {
		for _, e := range entries {
			for _, existing := range st.entries {
				if existing.TransactionID == e.TransactionID && existing.EntryType == e.EntryType {
					return apperrors.NewAppError(409, "journal entry "+e.TransactionID+"/"+string(e.EntryType)+" already exists", apperrors.ErrDuplicate)
				}
			}
			e.ID = st.newID()
			st.entries[e.ID] = e
			ids = append(ids, e.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) FindJournalEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	s.read(ctx, func(st *state) {
		for _, e := range st.entries {
			if e.TransactionID == transactionID {
				out = append(out, e)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.JournalEntry) int {
		if a.EntryType != b.EntryType {
			// DEBIT before CREDIT
			return cmp.Compare(b.EntryType, a.EntryType)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
