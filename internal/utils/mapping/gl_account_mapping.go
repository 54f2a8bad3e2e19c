package mapping

import (
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
)

// ToDomainGLAccount converts a model GLAccount to a domain GLAccount
func ToDomainGLAccount(m models.GLAccount) domain.GLAccount {
	return domain.GLAccount{
		ID:          m.ID,
		Name:        m.Name,
		GLCode:      m.GLCode,
		AccountType: domain.AccountType(m.AccountType),
		Usage:       domain.AccountUsage(m.Usage),
		Disabled:    m.Disabled,
	}
}

// ToDomainPaymentType converts a model PaymentType to a domain PaymentType
func ToDomainPaymentType(m models.PaymentType) domain.PaymentType {
	return domain.PaymentType{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		IsCashPayment: m.IsCashPayment,
	}
}

// ToDomainCharge converts a model Charge to a domain Charge
func ToDomainCharge(m models.Charge) domain.Charge {
	return domain.Charge{
		ID:           m.ID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		IsPenalty:    m.IsPenalty,
		IsActive:     m.IsActive,
	}
}
