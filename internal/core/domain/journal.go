package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a journal entry is a Debit or a Credit leg.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// JournalEntry is one leg of a balanced posting. Legs of the same posting share TransactionID.
type JournalEntry struct {
	ID            int64           `json:"id"`
	OfficeID      int64           `json:"officeId"`
	GLAccountID   int64           `json:"glAccountId"`
	CurrencyCode  string          `json:"currencyCode"`
	TransactionID string          `json:"transactionId"`
	EntryType     EntryType       `json:"entryType"`
	Amount        decimal.Decimal `json:"amount"` // Positive value
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	EntityType    string          `json:"entityType,omitempty"` // Originating domain record, e.g. CASHIER_TRANSACTION
	EntityID      *int64          `json:"entityId,omitempty"`
	Reversed      bool            `json:"reversed"` // Set only by the external reversal workflow
	AuditFields
}
