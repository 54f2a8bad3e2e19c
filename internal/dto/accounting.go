package dto

import (
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// Binding is one discriminated target: a payment type or charge id bound to a GL account.
type Binding struct {
	Key       int64 `json:"key" binding:"required,gt=0"`
	AccountID int64 `json:"glAccountId" binding:"required,gt=0"`
}

// PaymentChannelBinding maps a payment type to its fund source account.
type PaymentChannelBinding struct {
	PaymentTypeID       int64 `json:"paymentTypeId" binding:"required,gt=0"`
	FundSourceAccountID int64 `json:"fundSourceAccountId" binding:"required,gt=0"`
}

// ChargeBinding maps a fee or penalty charge to its income account.
type ChargeBinding struct {
	ChargeID        int64 `json:"chargeId" binding:"required,gt=0"`
	IncomeAccountID int64 `json:"incomeAccountId" binding:"required,gt=0"`
}

// ReconcileRequest carries the target bindings of one slot family.
// ProductID, ProductType and Family come from the request path.
type ReconcileRequest struct {
	ProductID    int64                 `json:"-"`
	ProductType  domain.ProductType    `json:"-"`
	Family       domain.SlotFamily     `json:"-"`
	Mode         domain.AccountingMode `json:"accountingMode" binding:"required,accounting_mode"`
	CurrencyCode string                `json:"currencyCode" binding:"omitempty,len=3"`
	// Accounts is used by the ACCOUNTS family. A key with a null value unbinds the slot.
	Accounts map[string]*int64 `json:"accounts"`
	// Bindings is used by the discriminated families. An empty list removes every binding of the family.
	Bindings []Binding `json:"bindings" binding:"omitempty,dive"`
}

// SaveAccountingRequest is the full accounting configuration of a product.
// A nil discriminated list leaves that family untouched; an empty list clears it.
type SaveAccountingRequest struct {
	ProductID               int64                   `json:"-"`
	ProductType             domain.ProductType      `json:"-"`
	Mode                    domain.AccountingMode   `json:"accountingMode" binding:"required,accounting_mode"`
	CurrencyCode            string                  `json:"currencyCode" binding:"omitempty,len=3"`
	Accounts                map[string]*int64       `json:"accountingMappings"`
	PaymentChannelMappings  []PaymentChannelBinding `json:"paymentChannelToFundSourceMappings" binding:"omitempty,dive"`
	FeeToIncomeMappings     []ChargeBinding         `json:"feeToIncomeAccountMappings" binding:"omitempty,dive"`
	PenaltyToIncomeMappings []ChargeBinding         `json:"penaltyToIncomeAccountMappings" binding:"omitempty,dive"`
}

// PaymentChannelsToBindings converts payment channel mappings into generic bindings, keeping nil as nil.
func PaymentChannelsToBindings(in []PaymentChannelBinding) []Binding {
	if in == nil {
		return nil
	}
	out := make([]Binding, len(in))
	for i, b := range in {
		out[i] = Binding{Key: b.PaymentTypeID, AccountID: b.FundSourceAccountID}
	}
	return out
}

// ChargesToBindings converts charge mappings into generic bindings, keeping nil as nil.
func ChargesToBindings(in []ChargeBinding) []Binding {
	if in == nil {
		return nil
	}
	out := make([]Binding, len(in))
	for i, b := range in {
		out[i] = Binding{Key: b.ChargeID, AccountID: b.IncomeAccountID}
	}
	return out
}

// ChangeSetResponse wraps a reconciliation outcome.
type ChangeSetResponse struct {
	ProductID   int64              `json:"productId"`
	ProductType domain.ProductType `json:"productType"`
	Changes     domain.ChangeSet   `json:"changes"`
}

// ListChargeMappingsParams filters charge mappings by penalty flag. Nil returns both kinds.
type ListChargeMappingsParams struct {
	Penalty *bool `form:"penalty"`
}
