package accounting

import (
	"fmt"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the correct sign to an entry amount based on account type and entry type.
func CalculateSignedAmount(entry domain.JournalEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	signedAmount := entry.Amount
	isDebit := entry.EntryType == domain.Debit

	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/INCOME -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/INCOME -> Positive (+)
	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			signedAmount = signedAmount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			signedAmount = signedAmount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for GL account %d", accountType, entry.GLAccountID)
	}
	return signedAmount, nil
}

// ValidateBalancedPair checks that entries form one double-entry posting:
// exactly one debit and one credit, same transaction id, same currency, equal positive amounts.
func ValidateBalancedPair(entries []domain.JournalEntry) error {
	if len(entries) != 2 {
		return fmt.Errorf("a posting must have exactly two entries, got %d", len(entries))
	}

	var debit, credit *domain.JournalEntry
	for i := range entries {
		e := &entries[i]
		if !e.Amount.IsPositive() {
			return fmt.Errorf("entry amount must be positive for GL account %d", e.GLAccountID)
		}
		switch e.EntryType {
		case domain.Debit:
			debit = e
		case domain.Credit:
			credit = e
		default:
			return fmt.Errorf("unknown entry type '%s'", e.EntryType)
		}
	}

	if debit == nil || credit == nil {
		return fmt.Errorf("a posting needs one debit and one credit entry")
	}
	if debit.TransactionID == "" || debit.TransactionID != credit.TransactionID {
		return fmt.Errorf("entries must share one transaction id")
	}
	if debit.CurrencyCode != credit.CurrencyCode {
		return fmt.Errorf("currency mismatch: debit %s, credit %s", debit.CurrencyCode, credit.CurrencyCode)
	}
	if !debit.Amount.Equal(credit.Amount) {
		return fmt.Errorf("entries do not balance: debit %s, credit %s", debit.Amount, credit.Amount)
	}
	if debit.GLAccountID == credit.GLAccountID {
		return fmt.Errorf("debit and credit post to the same GL account %d", debit.GLAccountID)
	}
	return nil
}

// IsBalanced reports whether debit and credit totals match in every currency.
func IsBalanced(entries []domain.JournalEntry) bool {
	if len(entries) == 0 {
		return false
	}
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		switch e.EntryType {
		case domain.Debit:
			totals[e.CurrencyCode] = totals[e.CurrencyCode].Add(e.Amount)
		case domain.Credit:
			totals[e.CurrencyCode] = totals[e.CurrencyCode].Sub(e.Amount)
		default:
			return false
		}
	}
	for _, sum := range totals {
		if !sum.IsZero() {
			return false
		}
	}
	return true
}
