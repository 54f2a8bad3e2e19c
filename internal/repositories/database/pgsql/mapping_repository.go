package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/coa_ledger_engine/internal/models"
	"github.com/SscSPs/coa_ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMappingRepository stores product account mappings.
type PgxMappingRepository struct {
	BaseRepository
}

func newPgxMappingRepository(pool *pgxpool.Pool) *PgxMappingRepository {
	return &PgxMappingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductMappingRepositoryFacade = (*PgxMappingRepository)(nil)

const (
	selectMappingFields = `m.id, m.product_id, m.product_type, m.financial_account_type, m.gl_account_id, m.payment_type_id, m.charge_id`

	productMappingsFilter = `m.product_id = $1 AND m.product_type = $2`
)

func (r *PgxMappingRepository) queryMappings(ctx context.Context, query string, args ...any) ([]domain.ProductAccountMapping, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query product account mappings", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ProductAccountMapping])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan product account mappings", err)
	}
	return mapping.ToDomainProductAccountMappingSlice(ms), nil
}

// FindMapping retrieves the non-discriminated mapping of a slot, or nil.
func (r *PgxMappingRepository) FindMapping(ctx context.Context, productID int64, productType domain.ProductType, slot domain.SlotCode) (*domain.ProductAccountMapping, error) {
	query := `SELECT ` + selectMappingFields + ` FROM product_account_mappings m
		WHERE ` + productMappingsFilter + ` AND m.financial_account_type = $3
		AND m.payment_type_id IS NULL AND m.charge_id IS NULL`

	rows, err := r.db(ctx).Query(ctx, query, productID, string(productType), int(slot))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query product account mapping", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[models.ProductAccountMapping])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to scan product account mapping", err)
	}
	d := mapping.ToDomainProductAccountMapping(m)
	return &d, nil
}

// FindAccountMappings retrieves the non-discriminated mappings of a product.
func (r *PgxMappingRepository) FindAccountMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	query := `SELECT ` + selectMappingFields + ` FROM product_account_mappings m
		WHERE ` + productMappingsFilter + ` AND m.payment_type_id IS NULL AND m.charge_id IS NULL
		ORDER BY m.id`
	return r.queryMappings(ctx, query, productID, string(productType))
}

// FindAllMappings retrieves every mapping of a product.
func (r *PgxMappingRepository) FindAllMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	query := `SELECT ` + selectMappingFields + ` FROM product_account_mappings m
		WHERE ` + productMappingsFilter + ` ORDER BY m.id`
	return r.queryMappings(ctx, query, productID, string(productType))
}

// FindPaymentTypeMappings retrieves the payment-type keyed mappings of a product.
func (r *PgxMappingRepository) FindPaymentTypeMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	query := `SELECT ` + selectMappingFields + ` FROM product_account_mappings m
		WHERE ` + productMappingsFilter + ` AND m.payment_type_id IS NOT NULL
		ORDER BY m.id`
	return r.queryMappings(ctx, query, productID, string(productType))
}

// FindChargeMappings retrieves the charge keyed mappings of a product bound under slot.
func (r *PgxMappingRepository) FindChargeMappings(ctx context.Context, productID int64, productType domain.ProductType, slot domain.SlotCode) ([]domain.ProductAccountMapping, error) {
	query := `SELECT ` + selectMappingFields + ` FROM product_account_mappings m
		WHERE ` + productMappingsFilter + ` AND m.financial_account_type = $3 AND m.charge_id IS NOT NULL
		ORDER BY m.id`
	return r.queryMappings(ctx, query, productID, string(productType), int(slot))
}

// UpsertMapping inserts a new mapping (ID == 0) or rebinds an existing one.
func (r *PgxMappingRepository) UpsertMapping(ctx context.Context, pm domain.ProductAccountMapping) (*domain.ProductAccountMapping, error) {
	m := mapping.ToModelProductAccountMapping(pm)

	var row pgx.Row
	if m.ID == 0 {
		query := `
			INSERT INTO product_account_mappings (product_id, product_type, financial_account_type, gl_account_id, payment_type_id, charge_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, product_id, product_type, financial_account_type, gl_account_id, payment_type_id, charge_id`
		row = r.db(ctx).QueryRow(ctx, query, m.ProductID, m.ProductType, m.FinancialAccountType, m.GLAccountID, m.PaymentTypeID, m.ChargeID)
	} else {
		query := `
			UPDATE product_account_mappings SET gl_account_id = $2 WHERE id = $1
			RETURNING id, product_id, product_type, financial_account_type, gl_account_id, payment_type_id, charge_id`
		row = r.db(ctx).QueryRow(ctx, query, m.ID, m.GLAccountID)
	}

	var out models.ProductAccountMapping
	err := row.Scan(&out.ID, &out.ProductID, &out.ProductType, &out.FinancialAccountType, &out.GLAccountID, &out.PaymentTypeID, &out.ChargeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product account mapping", m.ID)
		}
		if translated := translateMappingError(err, m.ProductID, m.ProductType, m.FinancialAccountType); translated != err {
			return nil, translated
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to save mapping for %s product %d", m.ProductType, m.ProductID), err)
	}
	d := mapping.ToDomainProductAccountMapping(out)
	return &d, nil
}

// DeleteMappings removes mappings by id.
func (r *PgxMappingRepository) DeleteMappings(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.db(ctx).Exec(ctx, `DELETE FROM product_account_mappings WHERE id = ANY($1)`, ids); err != nil {
		return apperrors.NewAppError(500, "failed to delete product account mappings", err)
	}
	return nil
}

// DeleteMappingsForProduct removes every mapping of a product and returns the removed rows.
func (r *PgxMappingRepository) DeleteMappingsForProduct(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	query := `DELETE FROM product_account_mappings m WHERE ` + productMappingsFilter + `
		RETURNING ` + selectMappingFields
	return r.queryMappings(ctx, query, productID, string(productType))
}
