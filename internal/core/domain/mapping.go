package domain

// ProductAccountMapping binds one slot of a product (optionally discriminated by a
// payment type or a charge) to a GL account.
// (ProductID, ProductType, SlotCode, PaymentTypeID, ChargeID) is unique.
type ProductAccountMapping struct {
	ID            int64       `json:"id"`
	ProductID     int64       `json:"productId"`
	ProductType   ProductType `json:"productType"`
	SlotCode      SlotCode    `json:"financialAccountType"`
	GLAccountID   int64       `json:"glAccountId"`
	PaymentTypeID *int64      `json:"paymentTypeId,omitempty"`
	ChargeID      *int64      `json:"chargeId,omitempty"`
}

// IsDiscriminated reports whether the row is keyed by a payment type or a charge.
func (m ProductAccountMapping) IsDiscriminated() bool {
	return m.PaymentTypeID != nil || m.ChargeID != nil
}

// DiscriminatorKey returns the payment type or charge id keying the row.
func (m ProductAccountMapping) DiscriminatorKey() (int64, bool) {
	if m.PaymentTypeID != nil {
		return *m.PaymentTypeID, true
	}
	if m.ChargeID != nil {
		return *m.ChargeID, true
	}
	return 0, false
}

// PaymentType is a payment channel (cash, cheque, transfer...). Reference data.
type PaymentType struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsCashPayment bool   `json:"isCashPayment"`
}

// Charge is a fee or penalty definition. Reference data.
type Charge struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	IsPenalty    bool   `json:"penalty"`
	IsActive     bool   `json:"active"`
}

// PaymentChannelMapping is the read view of a payment-type -> fund-source binding.
type PaymentChannelMapping struct {
	PaymentType PaymentType      `json:"paymentType"`
	FundSource  GLAccountSummary `json:"fundSourceAccount"`
}

// ChargeIncomeMapping is the read view of a charge -> income-account binding.
type ChargeIncomeMapping struct {
	Charge        Charge           `json:"charge"`
	IncomeAccount GLAccountSummary `json:"incomeAccount"`
}

// ProductAccounting is the accounting view of one product under its mode.
type ProductAccounting struct {
	ProductID               int64                       `json:"productId"`
	ProductType             ProductType                 `json:"productType"`
	Mode                    AccountingMode              `json:"accountingMode"`
	Accounts                map[string]GLAccountSummary `json:"accountingMappings"`
	PaymentChannelMappings  []PaymentChannelMapping     `json:"paymentChannelToFundSourceMappings"`
	FeeToIncomeMappings     []ChargeIncomeMapping       `json:"feeToIncomeAccountMappings"`
	PenaltyToIncomeMappings []ChargeIncomeMapping       `json:"penaltyToIncomeAccountMappings"`
}
