package mapping

import (
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
)

// ToDomainCashier converts a model Cashier to a domain Cashier
func ToDomainCashier(m models.Cashier) domain.Cashier {
	return domain.Cashier{
		ID:        m.ID,
		TellerID:  m.TellerID,
		OfficeID:  m.OfficeID,
		StaffName: m.StaffName,
		IsActive:  m.IsActive,
	}
}

// ToModelCashierTransaction converts a domain CashierTransaction to a model CashierTransaction
func ToModelCashierTransaction(d domain.CashierTransaction) models.CashierTransaction {
	return models.CashierTransaction{
		ID:           d.ID,
		CashierID:    d.CashierID,
		TxnType:      string(d.Type),
		Amount:       d.Amount,
		CurrencyCode: d.CurrencyCode,
		TxnDate:      d.TxnDate,
		Note:         d.Note,
		OfficeID:     d.OfficeID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashierTransaction converts a model CashierTransaction to a domain CashierTransaction
func ToDomainCashierTransaction(m models.CashierTransaction) domain.CashierTransaction {
	return domain.CashierTransaction{
		ID:           m.ID,
		CashierID:    m.CashierID,
		Type:         domain.CashierTxnType(m.TxnType),
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		TxnDate:      m.TxnDate,
		Note:         m.Note,
		OfficeID:     m.OfficeID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCashierTransactionSlice converts a slice of model CashierTransaction
func ToDomainCashierTransactionSlice(ms []models.CashierTransaction) []domain.CashierTransaction {
	ds := make([]domain.CashierTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCashierTransaction(m)
	}
	return ds
}
