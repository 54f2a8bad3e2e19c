package catalog

import (
	"slices"

	d "github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// Slot names shared across product types.
const (
	FundSource          = "FUND_SOURCE"
	LoanPortfolio       = "LOAN_PORTFOLIO"
	InterestOnLoans     = "INTEREST_ON_LOANS"
	IncomeFromFees      = "INCOME_FROM_FEES"
	IncomeFromPenalties = "INCOME_FROM_PENALTIES"
	LossesWrittenOff    = "LOSSES_WRITTEN_OFF"
	InterestReceivable  = "INTEREST_RECEIVABLE"
	FeesReceivable      = "FEES_RECEIVABLE"
	PenaltiesReceivable = "PENALTIES_RECEIVABLE"
	Overpayment         = "OVERPAYMENT"
	TransfersSuspense   = "TRANSFERS_SUSPENSE"
	IncomeFromRecovery  = "INCOME_FROM_RECOVERY"
	GoodwillCredit      = "GOODWILL_CREDIT"
	ChargeOffInterest   = "INCOME_FROM_CHARGE_OFF_INTEREST"
	ChargeOffExpense    = "CHARGE_OFF_EXPENSE"

	SavingsReference          = "SAVINGS_REFERENCE"
	SavingsControl            = "SAVINGS_CONTROL"
	InterestOnSavings         = "INTEREST_ON_SAVINGS"
	OverdraftPortfolioControl = "OVERDRAFT_PORTFOLIO_CONTROL"
	IncomeFromInterest        = "INCOME_FROM_INTEREST"
	EscheatLiability          = "ESCHEAT_LIABILITY"
	InterestPayable           = "INTEREST_PAYABLE"

	SharesReference = "SHARES_REFERENCE"
	SharesSuspense  = "SHARES_SUSPENSE"
	SharesEquity    = "SHARES_EQUITY"
)

func cats(t ...d.AccountType) []d.AccountType { return t }

func required(code d.SlotCode, name string, allowed []d.AccountType) SlotDefinition {
	return SlotDefinition{Code: code, Name: name, Allowed: allowed, Discriminator: d.DiscriminatorNone, Required: true}
}

func optional(code d.SlotCode, name string, allowed []d.AccountType, deleteWhenAbsent bool) SlotDefinition {
	return SlotDefinition{Code: code, Name: name, Allowed: allowed, Discriminator: d.DiscriminatorNone, DeleteWhenAbsent: deleteWhenAbsent}
}

func keyed(s SlotDefinition, kind d.DiscriminatorKind) SlotDefinition {
	s.Discriminator = kind
	return s
}

var loanCash = []SlotDefinition{
	keyed(required(1, FundSource, cats(d.Asset, d.Liability)), d.DiscriminatorPaymentType),
	required(2, LoanPortfolio, cats(d.Asset)),
	required(3, InterestOnLoans, cats(d.Income)),
	keyed(required(4, IncomeFromFees, cats(d.Income, d.Liability)), d.DiscriminatorCharge),
	keyed(required(5, IncomeFromPenalties, cats(d.Income)), d.DiscriminatorCharge),
	required(6, LossesWrittenOff, cats(d.Expense)),
	required(10, Overpayment, cats(d.Liability)),
	required(11, TransfersSuspense, cats(d.Asset)),
	required(12, IncomeFromRecovery, cats(d.Income)),
	optional(13, GoodwillCredit, cats(d.Expense), false),
	optional(14, ChargeOffInterest, cats(d.Income), true),
	optional(15, ChargeOffExpense, cats(d.Expense), true),
}

var loanAccrualExtras = []SlotDefinition{
	required(7, InterestReceivable, cats(d.Asset)),
	required(8, FeesReceivable, cats(d.Asset)),
	required(9, PenaltiesReceivable, cats(d.Asset)),
}

var savingsCash = []SlotDefinition{
	keyed(required(1, SavingsReference, cats(d.Asset)), d.DiscriminatorPaymentType),
	required(2, SavingsControl, cats(d.Liability)),
	required(3, InterestOnSavings, cats(d.Expense)),
	keyed(required(4, IncomeFromFees, cats(d.Income)), d.DiscriminatorCharge),
	keyed(required(5, IncomeFromPenalties, cats(d.Income)), d.DiscriminatorCharge),
	required(10, TransfersSuspense, cats(d.Liability)),
	optional(11, OverdraftPortfolioControl, cats(d.Asset), false),
	optional(12, IncomeFromInterest, cats(d.Income), false),
	optional(13, LossesWrittenOff, cats(d.Expense), false),
	optional(14, EscheatLiability, cats(d.Liability), true),
}

var savingsAccrualExtras = []SlotDefinition{
	required(15, InterestPayable, cats(d.Liability)),
	optional(16, InterestReceivable, cats(d.Asset), false),
	required(17, FeesReceivable, cats(d.Asset)),
	required(18, PenaltiesReceivable, cats(d.Asset)),
}

var sharesCash = []SlotDefinition{
	required(1, SharesReference, cats(d.Asset)),
	required(2, SharesSuspense, cats(d.Liability)),
	keyed(required(3, IncomeFromFees, cats(d.Income)), d.DiscriminatorCharge),
	required(4, SharesEquity, cats(d.Equity)),
}

// withExtras returns base followed by extras, ordered by code.
func withExtras(base, extras []SlotDefinition) []SlotDefinition {
	out := slices.Concat(base, extras)
	slices.SortFunc(out, func(a, b SlotDefinition) int { return int(a.Code) - int(b.Code) })
	return out
}

// DefaultTables returns the slot tables for loan, savings and share products.
func DefaultTables() map[d.ProductType]map[d.AccountingMode][]SlotDefinition {
	loanAccrual := withExtras(loanCash, loanAccrualExtras)
	return map[d.ProductType]map[d.AccountingMode][]SlotDefinition{
		d.LoanProduct: {
			d.ModeCash:            loanCash,
			d.ModeAccrualPeriodic: loanAccrual,
			d.ModeAccrualUpfront:  loanAccrual,
		},
		d.SavingsProduct: {
			d.ModeCash:            savingsCash,
			d.ModeAccrualPeriodic: withExtras(savingsCash, savingsAccrualExtras),
		},
		d.SharesProduct: {
			d.ModeCash: sharesCash,
		},
	}
}

// Default returns a catalog over DefaultTables.
func Default() *Catalog {
	return New(DefaultTables())
}
