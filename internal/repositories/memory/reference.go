package memory

import (
	"context"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

func (s *Store) FindGLAccountByID(ctx context.Context, id int64) (*domain.GLAccount, error) {
	var (
		a  domain.GLAccount
		ok bool
	)
	s.read(ctx, func(st *state) { a, ok = st.glAccounts[id] })
	if !ok {
		return nil, apperrors.NewNotFoundError("GL account", id)
	}
	return &a, nil
}

func (s *Store) FindGLAccountsByIDs(ctx context.Context, ids []int64) (map[int64]domain.GLAccount, error) {
	out := make(map[int64]domain.GLAccount, len(ids))
	s.read(ctx, func(st *state) {
		for _, id := range ids {
			if a, ok := st.glAccounts[id]; ok {
				out[id] = a
			}
		}
	})
	return out, nil
}

func (s *Store) FindPaymentTypeByID(ctx context.Context, id int64) (*domain.PaymentType, error) {
	var (
		p  domain.PaymentType
		ok bool
	)
	s.read(ctx, func(st *state) { p, ok = st.paymentTypes[id] })
	if !ok {
		return nil, apperrors.NewNotFoundError("payment type", id)
	}
	return &p, nil
}

func (s *Store) FindChargeByID(ctx context.Context, id int64) (*domain.Charge, error) {
	var (
		c  domain.Charge
		ok bool
	)
	s.read(ctx, func(st *state) { c, ok = st.charges[id] })
	if !ok {
		return nil, apperrors.NewNotFoundError("charge", id)
	}
	return &c, nil
}

func (s *Store) FindAccountForActivity(ctx context.Context, activity domain.FinancialActivity) (*domain.GLAccount, error) {
	var (
		a  domain.GLAccount
		ok bool
	)
	s.read(ctx, func(st *state) {
		var id int64
		if id, ok = st.activities[activity]; ok {
			a, ok = st.glAccounts[id]
		}
	})
	if !ok {
		return nil, apperrors.NewNotFoundError("financial activity account", activity)
	}
	return &a, nil
}
