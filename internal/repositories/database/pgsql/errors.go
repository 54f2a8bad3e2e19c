package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"

	mappingUniqueConstraint = "uq_product_account_mapping"
)

// translateError maps driver errors onto the apperrors taxonomy.
// Errors it does not recognise are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: constraint %s: %s", apperrors.ErrDuplicate, pgErr.ConstraintName, pgErr.Detail)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: constraint %s: %s", apperrors.ErrNotFound, pgErr.ConstraintName, pgErr.Detail)
	case pgCheckViolation:
		return fmt.Errorf("%w: constraint %s", apperrors.ErrValidation, pgErr.ConstraintName)
	}
	return err
}

// translateMappingError is translateError with unique violations on the mapping
// index reported as a DuplicateBindingError naming the product and slot.
func translateMappingError(err error, productID int64, productType string, slot int) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == mappingUniqueConstraint {
		return &apperrors.DuplicateBindingError{
			ProductID:   productID,
			ProductType: productType,
			Slot:        fmt.Sprint(slot),
			Constraint:  pgErr.ConstraintName,
		}
	}
	return translateError(err)
}
