package dto

import (
	"time"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostCashierEventRequest defines the data needed to post a cash-drawer event.
type PostCashierEventRequest struct {
	CashierID    int64                 `json:"-"`
	Type         domain.CashierTxnType `json:"txnType" binding:"required,cashier_txn_type"`
	Amount       decimal.Decimal       `json:"txnAmount"`
	CurrencyCode string                `json:"currencyCode" binding:"required,len=3"`
	TxnDate      *time.Time            `json:"txnDate"` // Optional, defaults to now
	Note         string                `json:"txnNote" binding:"max=500"`
}

// CashierPostingResult is returned after a cash-drawer event is posted.
type CashierPostingResult struct {
	CashierTransactionID int64   `json:"cashierTransactionId"`
	TransactionID        string  `json:"transactionId,omitempty"` // Empty when the event posts no journal pair
	JournalEntryIDs      []int64 `json:"journalEntryIds"`
}

// ListCashierTransactionsParams defines the query parameters for cashier history.
type ListCashierTransactionsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// CashierTransactionResponse defines the data returned for a cashier transaction.
type CashierTransactionResponse struct {
	ID           int64           `json:"id"`
	CashierID    int64           `json:"cashierId"`
	Type         string          `json:"txnType"`
	Amount       decimal.Decimal `json:"txnAmount"`
	CurrencyCode string          `json:"currencyCode"`
	TxnDate      time.Time       `json:"txnDate"`
	Note         string          `json:"txnNote"`
	OfficeID     int64           `json:"officeId"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    string          `json:"createdBy"`
}

// ListCashierTransactionsResponse is one page of cashier history.
type ListCashierTransactionsResponse struct {
	Transactions []CashierTransactionResponse `json:"transactions"`
	NextToken    *string                      `json:"nextToken,omitempty"`
}

// ToCashierTransactionResponse converts a domain.CashierTransaction to its response DTO.
func ToCashierTransactionResponse(txn *domain.CashierTransaction) CashierTransactionResponse {
	return CashierTransactionResponse{
		ID:           txn.ID,
		CashierID:    txn.CashierID,
		Type:         string(txn.Type),
		Amount:       txn.Amount,
		CurrencyCode: txn.CurrencyCode,
		TxnDate:      txn.TxnDate,
		Note:         txn.Note,
		OfficeID:     txn.OfficeID,
		CreatedAt:    txn.CreatedAt,
		CreatedBy:    txn.CreatedBy,
	}
}

// ToCashierTransactionResponses converts a slice of cashier transactions.
func ToCashierTransactionResponses(txns []domain.CashierTransaction) []CashierTransactionResponse {
	responses := make([]CashierTransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToCashierTransactionResponse(&txns[i])
	}
	return responses
}
