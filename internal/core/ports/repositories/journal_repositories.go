package repositories

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindJournalEntriesByTransactionID retrieves every leg sharing a transaction id, debit first.
	FindJournalEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries. Entries are append-only.
type JournalWriter interface {
	// SaveJournalEntries persists the entries in order and returns their assigned ids.
	SaveJournalEntries(ctx context.Context, entries []domain.JournalEntry) ([]int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
