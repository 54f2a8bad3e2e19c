package models

// ProductAccountMapping represents a row of product_account_mappings.
// PaymentTypeID and ChargeID are nullable; at most one of them is set.
type ProductAccountMapping struct {
	ID                   int64  `db:"id"`
	ProductID            int64  `db:"product_id"`
	ProductType          string `db:"product_type"`
	FinancialAccountType int    `db:"financial_account_type"`
	GLAccountID          int64  `db:"gl_account_id"`
	PaymentTypeID        *int64 `db:"payment_type_id"`
	ChargeID             *int64 `db:"charge_id"`
}
