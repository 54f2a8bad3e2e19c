package domain

import "strings"

// ProductType identifies the product family a mapping belongs to.
type ProductType string

const (
	LoanProduct    ProductType = "LOAN"
	SavingsProduct ProductType = "SAVINGS"
	SharesProduct  ProductType = "SHARES"
)

// ParseProductType accepts the canonical upper-case names as well as the
// lower-case singular/plural forms used in URLs ("loan", "loans").
func ParseProductType(s string) (ProductType, bool) {
	switch strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "S") {
	case "LOAN":
		return LoanProduct, true
	case "SAVING":
		return SavingsProduct, true
	case "SHARE":
		return SharesProduct, true
	}
	return "", false
}

// AccountingMode is the bookkeeping method that governs which slots exist for a product.
type AccountingMode string

const (
	ModeNone            AccountingMode = "NONE"
	ModeCash            AccountingMode = "CASH"
	ModeAccrualPeriodic AccountingMode = "ACCRUAL_PERIODIC"
	ModeAccrualUpfront  AccountingMode = "ACCRUAL_UPFRONT"
)

// ParseAccountingMode parses a mode name, case-insensitively.
func ParseAccountingMode(s string) (AccountingMode, bool) {
	m := AccountingMode(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case ModeNone, ModeCash, ModeAccrualPeriodic, ModeAccrualUpfront:
		return m, true
	}
	return "", false
}

// IsAccrual reports whether the mode is one of the accrual variants.
func (m AccountingMode) IsAccrual() bool {
	return m == ModeAccrualPeriodic || m == ModeAccrualUpfront
}
