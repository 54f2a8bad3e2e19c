package domain

// AccountType defines the fundamental accounting category of a GL account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five chart-of-accounts categories.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// AccountUsage distinguishes postable detail accounts from grouping header accounts.
type AccountUsage string

const (
	DetailUsage AccountUsage = "DETAIL"
	HeaderUsage AccountUsage = "HEADER"
)

// GLAccount is a chart-of-accounts ledger account. Reference data, read-only to this engine.
type GLAccount struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	GLCode      string       `json:"glCode"`
	AccountType AccountType  `json:"accountType"`
	Usage       AccountUsage `json:"usage"`
	Disabled    bool         `json:"disabled"`
}

// GLAccountSummary is the trimmed view of a GLAccount used in accounting responses.
type GLAccountSummary struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	GLCode string `json:"glCode"`
}

// Summary returns the summary view of the account.
func (a GLAccount) Summary() GLAccountSummary {
	return GLAccountSummary{ID: a.ID, Name: a.Name, GLCode: a.GLCode}
}
