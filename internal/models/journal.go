package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry represents one leg of a posting in the journal_entries table.
type JournalEntry struct {
	ID            int64           `db:"id"`
	OfficeID      int64           `db:"office_id"`
	GLAccountID   int64           `db:"gl_account_id"`
	CurrencyCode  string          `db:"currency_code"`
	TransactionID string          `db:"transaction_id"`
	EntryType     EntryType       `db:"entry_type"`
	Amount        decimal.Decimal `db:"amount"` // Positive value
	EntryDate     time.Time       `db:"entry_date"`
	Description   string          `db:"description"`
	EntityType    *string         `db:"entity_type"` // Nullable
	EntityID      *int64          `db:"entity_id"`   // Nullable
	Reversed      bool            `db:"reversed"`
	AuditFields
}
