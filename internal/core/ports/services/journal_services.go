package services

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/dto"
)

// TellerPosterSvc posts cash-drawer events.
type TellerPosterSvc interface {
	// PostCashierEvent records the cashier transaction and, for ALLOCATE and SETTLE,
	// a balanced journal pair in the same unit of work.
	PostCashierEvent(ctx context.Context, req dto.PostCashierEventRequest, userID string) (*dto.CashierPostingResult, error)
}

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntries returns the legs sharing a transaction id and whether they balance.
	GetJournalEntries(ctx context.Context, transactionID string) (*dto.GetJournalEntriesResponse, error)
}

// CashierReaderSvc defines read operations for cashier history.
type CashierReaderSvc interface {
	// ListCashierTransactions returns a page of a cashier's transactions, newest first.
	ListCashierTransactions(ctx context.Context, cashierID int64, params dto.ListCashierTransactionsParams) (*dto.ListCashierTransactionsResponse, error)
}

// TellerLedgerSvcFacade combines all teller and journal service interfaces
// This is a facade for clients that need access to all operations
type TellerLedgerSvcFacade interface {
	TellerPosterSvc
	JournalReaderSvc
	CashierReaderSvc
}
