package dto

import (
	"time"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryResponse defines the data returned for one journal leg.
type JournalEntryResponse struct {
	ID           int64           `json:"id"`
	OfficeID     int64           `json:"officeId"`
	GLAccountID  int64           `json:"glAccountId"`
	CurrencyCode string          `json:"currencyCode"`
	EntryType    string          `json:"type"` // DEBIT or CREDIT
	Amount       decimal.Decimal `json:"amount"`
	EntryDate    time.Time       `json:"entryDate"`
	Description  string          `json:"description"`
	Reversed     bool            `json:"reversed"`
	// Effect is the signed change this leg makes to its account's balance.
	Effect *decimal.Decimal `json:"effect,omitempty"`
}

// GetJournalEntriesResponse groups the legs of one transaction id.
type GetJournalEntriesResponse struct {
	TransactionID string                 `json:"transactionId"`
	Balanced      bool                   `json:"balanced"`
	Entries       []JournalEntryResponse `json:"entries"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:           e.ID,
		OfficeID:     e.OfficeID,
		GLAccountID:  e.GLAccountID,
		CurrencyCode: e.CurrencyCode,
		EntryType:    string(e.EntryType),
		Amount:       e.Amount,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		Reversed:     e.Reversed,
	}
}

// ToJournalEntryResponses converts a slice of journal entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}
