// Package memory is an in-memory implementation of every storage port.
// Transactions are serialised under one lock and rolled back from a snapshot.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
)

type txKey struct{}

type readOnlyKey struct{}

type state struct {
	glAccounts   map[int64]domain.GLAccount
	paymentTypes map[int64]domain.PaymentType
	charges      map[int64]domain.Charge
	activities   map[domain.FinancialActivity]int64
	cashiers     map[int64]domain.Cashier
	mappings     map[int64]domain.ProductAccountMapping
	cashierTxns  map[int64]domain.CashierTransaction
	entries      map[int64]domain.JournalEntry
	nextID       int64
}

func (s state) clone() state {
	return state{
		glAccounts:   maps.Clone(s.glAccounts),
		paymentTypes: maps.Clone(s.paymentTypes),
		charges:      maps.Clone(s.charges),
		activities:   maps.Clone(s.activities),
		cashiers:     maps.Clone(s.cashiers),
		mappings:     maps.Clone(s.mappings),
		cashierTxns:  maps.Clone(s.cashierTxns),
		entries:      maps.Clone(s.entries),
		nextID:       s.nextID,
	}
}

// Store keeps all tables in memory.
type Store struct {
	mu sync.RWMutex
	st state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{st: state{
		glAccounts:   make(map[int64]domain.GLAccount),
		paymentTypes: make(map[int64]domain.PaymentType),
		charges:      make(map[int64]domain.Charge),
		activities:   make(map[domain.FinancialActivity]int64),
		cashiers:     make(map[int64]domain.Cashier),
		mappings:     make(map[int64]domain.ProductAccountMapping),
		cashierTxns:  make(map[int64]domain.CashierTransaction),
		entries:      make(map[int64]domain.JournalEntry),
	}}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     s,
		GLAccountRepo: s,
		MappingRepo:   s,
		ReferenceRepo: s,
		CashierRepo:   s,
		JournalRepo:   s,
	}
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// read runs fn under the read lock, unless ctx already holds the transaction lock.
func (s *Store) read(ctx context.Context, fn func(st *state)) {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	fn(&s.st)
}

// write runs fn under the write lock, unless ctx already holds the transaction lock.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if readOnly, _ := ctx.Value(readOnlyKey{}).(bool); readOnly && s.inTx(ctx) {
		return apperrors.NewAppError(500, "cannot write in a read-only transaction", apperrors.ErrInternal)
	}
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(&s.st)
}

func (st *state) newID() int64 {
	st.nextID++
	return st.nextID
}

// WithinTx runs fn holding the store lock and restores the prior state if fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// WithinReadTx runs fn holding the read lock, so it sees one state. Writes through its ctx fail.
func (s *Store) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx = context.WithValue(ctx, txKey{}, s)
	return fn(context.WithValue(ctx, readOnlyKey{}, true))
}

// --- seeding helpers for reference data owned by other subsystems ---

// AddGLAccount stores a GL account.
func (s *Store) AddGLAccount(a domain.GLAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.glAccounts[a.ID] = a
}

// AddPaymentType stores a payment type.
func (s *Store) AddPaymentType(p domain.PaymentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.paymentTypes[p.ID] = p
}

// AddCharge stores a charge.
func (s *Store) AddCharge(c domain.Charge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.charges[c.ID] = c
}

// AddCashier stores a cashier.
func (s *Store) AddCashier(c domain.Cashier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.cashiers[c.ID] = c
}

// SetActivityAccount maps a financial activity to a GL account id.
func (s *Store) SetActivityAccount(activity domain.FinancialActivity, glAccountID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.activities[activity] = glAccountID
}

var (
	_ portsrepo.TransactionManager             = (*Store)(nil)
	_ portsrepo.GLAccountReader                = (*Store)(nil)
	_ portsrepo.ProductMappingRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReferenceDataReader            = (*Store)(nil)
	_ portsrepo.CashierRepositoryFacade        = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade        = (*Store)(nil)
)
