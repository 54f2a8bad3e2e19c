package services

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
)

// GLAccountDirectorySvc validates GL accounts against slot rules.
type GLAccountDirectorySvc interface {
	// ResolveForSlot loads the account and checks that it may be bound to slot.
	// parameter names the request field for error messages.
	ResolveForSlot(ctx context.Context, parameter string, accountID int64, slot catalog.SlotDefinition) (*domain.GLAccount, error)
}

// MappingWriterSvc reconciles product account mappings.
type MappingWriterSvc interface {
	// Reconcile applies the target bindings of one slot family and returns the change set.
	Reconcile(ctx context.Context, req dto.ReconcileRequest) (domain.ChangeSet, error)

	// SaveProductAccounting reconciles every family of a product in one transaction.
	SaveProductAccounting(ctx context.Context, req dto.SaveAccountingRequest) (domain.ChangeSet, error)

	// DeleteAllMappings removes every mapping of a product.
	DeleteAllMappings(ctx context.Context, productID int64, productType domain.ProductType) (domain.ChangeSet, error)
}

// MappingSvcFacade combines all mapping-related service interfaces
type MappingSvcFacade interface {
	MappingWriterSvc
}

// AccountingReaderSvc builds accounting views of a product.
type AccountingReaderSvc interface {
	// ReadAccounting returns the slot name to GL account map and discriminated listings for mode.
	ReadAccounting(ctx context.Context, productID int64, productType domain.ProductType, mode domain.AccountingMode) (*domain.ProductAccounting, error)

	// ListPaymentChannelMappings lists the payment type to fund source bindings.
	ListPaymentChannelMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.PaymentChannelMapping, error)

	// ListChargeIncomeMappings lists charge to income account bindings, filtered by penalty flag when set.
	ListChargeIncomeMappings(ctx context.Context, productID int64, productType domain.ProductType, penalty *bool) ([]domain.ChargeIncomeMapping, error)
}

// AccountingReaderSvcFacade combines the accounting read interfaces.
type AccountingReaderSvcFacade interface {
	AccountingReaderSvc
}
