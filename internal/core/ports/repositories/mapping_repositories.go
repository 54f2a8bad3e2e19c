package repositories

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// ProductMappingReader defines read operations for product account mappings.
type ProductMappingReader interface {
	// FindMapping retrieves the non-discriminated mapping of one slot. Returns nil, nil when unbound.
	FindMapping(ctx context.Context, productID int64, productType domain.ProductType, slot domain.SlotCode) (*domain.ProductAccountMapping, error)

	// FindAccountMappings retrieves every non-discriminated mapping of a product.
	FindAccountMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error)

	// FindAllMappings retrieves every mapping of a product, discriminated or not.
	FindAllMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error)

	// FindPaymentTypeMappings retrieves the payment-type keyed mappings of a product.
	FindPaymentTypeMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error)

	// FindChargeMappings retrieves the charge keyed mappings of a product bound under slot.
	// Rows are selected by slot, not by the charge's current penalty flag, which may change.
	FindChargeMappings(ctx context.Context, productID int64, productType domain.ProductType, slot domain.SlotCode) ([]domain.ProductAccountMapping, error)
}

// ProductMappingWriter defines write operations for product account mappings.
type ProductMappingWriter interface {
	// UpsertMapping inserts the mapping when its ID is zero, otherwise rebinds the
	// existing row to mapping.GLAccountID. Returns the stored mapping.
	UpsertMapping(ctx context.Context, mapping domain.ProductAccountMapping) (*domain.ProductAccountMapping, error)

	// DeleteMappings removes the mappings with the given ids.
	DeleteMappings(ctx context.Context, ids []int64) error

	// DeleteMappingsForProduct removes every mapping of a product and returns the removed rows.
	DeleteMappingsForProduct(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error)
}

// ProductMappingRepositoryFacade combines the mapping store interfaces.
type ProductMappingRepositoryFacade interface {
	ProductMappingReader
	ProductMappingWriter
}
