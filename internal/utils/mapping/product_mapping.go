package mapping

import (
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
)

// ToModelProductAccountMapping converts a domain mapping to its row model
func ToModelProductAccountMapping(d domain.ProductAccountMapping) models.ProductAccountMapping {
	return models.ProductAccountMapping{
		ID:                   d.ID,
		ProductID:            d.ProductID,
		ProductType:          string(d.ProductType),
		FinancialAccountType: int(d.SlotCode),
		GLAccountID:          d.GLAccountID,
		PaymentTypeID:        d.PaymentTypeID,
		ChargeID:             d.ChargeID,
	}
}

// ToDomainProductAccountMapping converts a row model to a domain mapping
func ToDomainProductAccountMapping(m models.ProductAccountMapping) domain.ProductAccountMapping {
	return domain.ProductAccountMapping{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductType:   domain.ProductType(m.ProductType),
		SlotCode:      domain.SlotCode(m.FinancialAccountType),
		GLAccountID:   m.GLAccountID,
		PaymentTypeID: m.PaymentTypeID,
		ChargeID:      m.ChargeID,
	}
}

// ToDomainProductAccountMappingSlice converts a slice of row models
func ToDomainProductAccountMappingSlice(ms []models.ProductAccountMapping) []domain.ProductAccountMapping {
	if ms == nil {
		return nil
	}
	ds := make([]domain.ProductAccountMapping, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProductAccountMapping(m)
	}
	return ds
}
