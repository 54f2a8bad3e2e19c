package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cashier represents a row of the cashiers table.
type Cashier struct {
	ID        int64  `db:"id"`
	TellerID  int64  `db:"teller_id"`
	OfficeID  int64  `db:"office_id"`
	StaffName string `db:"staff_name"`
	IsActive  bool   `db:"is_active"`
}

// CashierTransaction represents a row of the cashier_transactions table.
type CashierTransaction struct {
	ID           int64           `db:"id"`
	CashierID    int64           `db:"cashier_id"`
	TxnType      string          `db:"txn_type"`
	Amount       decimal.Decimal `db:"txn_amount"`
	CurrencyCode string          `db:"currency_code"`
	TxnDate      time.Time       `db:"txn_date"`
	Note         string          `db:"txn_note"`
	OfficeID     int64           `db:"office_id"`
	AuditFields
}
