package mapping

import (
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	var entityType *string
	if d.EntityType != "" {
		et := d.EntityType
		entityType = &et
	}
	return models.JournalEntry{
		ID:            d.ID,
		OfficeID:      d.OfficeID,
		GLAccountID:   d.GLAccountID,
		CurrencyCode:  d.CurrencyCode,
		TransactionID: d.TransactionID,
		EntryType:     models.EntryType(d.EntryType),
		Amount:        d.Amount,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		EntityType:    entityType,
		EntityID:      d.EntityID,
		Reversed:      d.Reversed,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	var entityType string
	if m.EntityType != nil {
		entityType = *m.EntityType
	}
	return domain.JournalEntry{
		ID:            m.ID,
		OfficeID:      m.OfficeID,
		GLAccountID:   m.GLAccountID,
		CurrencyCode:  m.CurrencyCode,
		TransactionID: m.TransactionID,
		EntryType:     domain.EntryType(m.EntryType),
		Amount:        m.Amount,
		EntryDate:     m.EntryDate,
		Description:   m.Description,
		EntityType:    entityType,
		EntityID:      m.EntityID,
		Reversed:      m.Reversed,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntry to domain JournalEntry
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	if ms == nil {
		return nil
	}
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
