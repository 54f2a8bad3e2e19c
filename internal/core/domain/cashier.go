package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// CashierTxnType is the kind of cash-drawer event.
type CashierTxnType string

const (
	Allocate    CashierTxnType = "ALLOCATE"
	Settle      CashierTxnType = "SETTLE"
	InwardCash  CashierTxnType = "INWARD_CASH"
	OutwardCash CashierTxnType = "OUTWARD_CASH"
)

// IsValid reports whether t is a known cashier transaction type.
func (t CashierTxnType) IsValid() bool {
	switch t {
	case Allocate, Settle, InwardCash, OutwardCash:
		return true
	}
	return false
}

// PostsJournal reports whether the event moves cash between vault and teller
// and therefore produces a journal pair.
func (t CashierTxnType) PostsJournal() bool {
	return t == Allocate || t == Settle
}

// Cashier is a staff member assigned to a teller in an office.
type Cashier struct {
	ID        int64  `json:"id"`
	TellerID  int64  `json:"tellerId"`
	OfficeID  int64  `json:"officeId"`
	StaffName string `json:"staffName"`
	IsActive  bool   `json:"isActive"`
}

// CashierTransaction records one cash-drawer event. Immutable once posted.
type CashierTransaction struct {
	ID           int64           `json:"id"`
	CashierID    int64           `json:"cashierId"`
	Type         CashierTxnType  `json:"txnType"`
	Amount       decimal.Decimal `json:"txnAmount"`
	CurrencyCode string          `json:"currencyCode"`
	TxnDate      time.Time       `json:"txnDate"`
	Note         string          `json:"txnNote"`
	OfficeID     int64           `json:"officeId"`
	AuditFields
}

// FinancialActivity identifies an organisation-wide accounting role with one configured GL account.
type FinancialActivity int

const (
	CashAtMainVault FinancialActivity = 101
	CashAtTeller    FinancialActivity = 102
)

func (a FinancialActivity) String() string {
	switch a {
	case CashAtMainVault:
		return "CASH_AT_MAINVAULT"
	case CashAtTeller:
		return "CASH_AT_TELLER"
	}
	return "FINANCIAL_ACTIVITY_" + strconv.Itoa(int(a))
}
