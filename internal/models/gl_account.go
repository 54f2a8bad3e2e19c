package models

// GLAccount represents a row of the gl_accounts table.
type GLAccount struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	GLCode      string `db:"gl_code"`
	AccountType string `db:"account_type"`
	Usage       string `db:"account_usage"`
	Disabled    bool   `db:"disabled"`
}

// PaymentType represents a row of the payment_types table.
type PaymentType struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	IsCashPayment bool   `db:"is_cash_payment"`
}

// Charge represents a row of the charges table.
type Charge struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	IsPenalty    bool   `db:"is_penalty"`
	IsActive     bool   `db:"is_active"`
}
