package memory

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

const mappingConstraint = "uq_product_account_mapping"

type mappingKey struct {
	productID   int64
	productType domain.ProductType
	slot        domain.SlotCode
	paymentType int64
	charge      int64
}

func keyOf(m domain.ProductAccountMapping) mappingKey {
	k := mappingKey{productID: m.ProductID, productType: m.ProductType, slot: m.SlotCode}
	if m.PaymentTypeID != nil {
		k.paymentType = *m.PaymentTypeID
	}
	if m.ChargeID != nil {
		k.charge = *m.ChargeID
	}
	return k
}

// selectMappings returns the product's rows accepted by keep, ordered by id.
func (s *Store) selectMappings(ctx context.Context, productID int64, productType domain.ProductType, keep func(st *state, m domain.ProductAccountMapping) bool) []domain.ProductAccountMapping {
	var out []domain.ProductAccountMapping
	s.read(ctx, func(st *state) {
		for _, m := range st.mappings {
			if m.ProductID == productID && m.ProductType == productType && keep(st, m) {
				out = append(out, m)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.ProductAccountMapping) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Store) FindMapping(ctx context.Context, productID int64, productType domain.ProductType, slot domain.SlotCode) (*domain.ProductAccountMapping, error) {
	rows := s.selectMappings(ctx, productID, productType, func(_ *state, m domain.ProductAccountMapping) bool {
		return m.SlotCode == slot && !m.IsDiscriminated()
	})
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (s *Store) FindAccountMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	return s.selectMappings(ctx, productID, productType, func(_ *state, m domain.ProductAccountMapping) bool {
		return !m.IsDiscriminated()
	}), nil
}

func (s *Store) FindAllMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	return s.selectMappings(ctx, productID, productType, func(*state, domain.ProductAccountMapping) bool { return true }), nil
}

func (s *Store) FindPaymentTypeMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	return s.selectMappings(ctx, productID, productType, func(_ *state, m domain.ProductAccountMapping) bool {
		return m.PaymentTypeID != nil
	}), nil
}

func (s *Store) FindChargeMappings(ctx context.Context, productID int64, productType domain.ProductType, slot domain.SlotCode) ([]domain.ProductAccountMapping, error) {
	return s.selectMappings(ctx, productID, productType, func(_ *state, m domain.ProductAccountMapping) bool {
		return m.ChargeID != nil && m.SlotCode == slot
	}), nil
}

func (s *Store) UpsertMapping(ctx context.Context, mapping domain.ProductAccountMapping) (*domain.ProductAccountMapping, error) {
	err := s.write(ctx, func(st *state) error {
		if _, ok := st.glAccounts[mapping.GLAccountID]; !ok {
			return apperrors.NewNotFoundError("GL account", mapping.GLAccountID)
		}
		if mapping.ID == 0 {
			key := keyOf(mapping)
			for _, m := range st.mappings {
				if keyOf(m) == key {
					return &apperrors.DuplicateBindingError{
						ProductID:   mapping.ProductID,
						ProductType: string(mapping.ProductType),
						Slot:        strconv.Itoa(int(mapping.SlotCode)),
						Constraint:  mappingConstraint,
					}
				}
			}
			mapping.ID = st.newID()
			st.mappings[mapping.ID] = mapping
			return nil
		}

		existing, ok := st.mappings[mapping.ID]
		if !ok {
			return apperrors.NewNotFoundError("product account mapping", mapping.ID)
		}
		existing.GLAccountID = mapping.GLAccountID
		st.mappings[mapping.ID] = existing
		mapping = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (s *Store) DeleteMappings(ctx context.Context, ids []int64) error {
	return s.write(ctx, func(st *state) error {
		for _, id := range ids {
			delete(st.mappings, id)
		}
		return nil
	})
}

func (s *Store) DeleteMappingsForProduct(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.ProductAccountMapping, error) {
	var removed []domain.ProductAccountMapping
	err := s.write(ctx, func(st *state) error {
		for id, m := range st.mappings {
			if m.ProductID == productID && m.ProductType == productType {
				removed = append(removed, m)
				delete(st.mappings, id)
			}
		}
		return nil
	})
	slices.SortFunc(removed, func(a, b domain.ProductAccountMapping) int { return cmp.Compare(a.ID, b.ID) })
	return removed, err
}
