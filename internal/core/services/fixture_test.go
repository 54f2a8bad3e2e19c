package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/core/services"
	"github.com/SscSPs/coa_ledger_engine/internal/repositories/memory"
	"github.com/stretchr/testify/require"
)

// GL accounts seeded into every fixture, one or more per category.
const (
	cashAcct       int64 = 100
	bankAcct       int64 = 101
	portfolioAcct  int64 = 102
	vaultAcct      int64 = 103
	tellerAcct     int64 = 104
	overpayAcct    int64 = 200
	suspenseLiab   int64 = 201
	interestAcct   int64 = 300
	feeIncomeAcct  int64 = 301
	penaltyAcct    int64 = 302
	writeOffAcct   int64 = 400
	equityAcct     int64 = 500
	headerAcct     int64 = 600
	disabledAcct   int64 = 601
	activeCashier  int64 = 7
	retiredCashier int64 = 8
	loanID         int64 = 42
)

var errInjected = errors.New("injected failure")

type fixture struct {
	store *memory.Store
	repos portsrepo.RepositoryProvider
	cat   *catalog.Catalog
	svc   *portssvc.ServiceContainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()

	for _, a := range []domain.GLAccount{
		{ID: cashAcct, Name: "Cash in hand", GLCode: "1000", AccountType: domain.Asset},
		{ID: bankAcct, Name: "Bank", GLCode: "1010", AccountType: domain.Asset},
		{ID: portfolioAcct, Name: "Loan portfolio", GLCode: "1200", AccountType: domain.Asset},
		{ID: vaultAcct, Name: "Main vault", GLCode: "1001", AccountType: domain.Asset},
		{ID: tellerAcct, Name: "Teller cash", GLCode: "1002", AccountType: domain.Asset},
		{ID: overpayAcct, Name: "Overpayments", GLCode: "2000", AccountType: domain.Liability},
		{ID: suspenseLiab, Name: "Transfers in suspense", GLCode: "2100", AccountType: domain.Liability},
		{ID: interestAcct, Name: "Interest income", GLCode: "4000", AccountType: domain.Income},
		{ID: feeIncomeAcct, Name: "Fee income", GLCode: "4100", AccountType: domain.Income},
		{ID: penaltyAcct, Name: "Penalty income", GLCode: "4200", AccountType: domain.Income},
		{ID: writeOffAcct, Name: "Write-offs", GLCode: "5000", AccountType: domain.Expense},
		{ID: equityAcct, Name: "Share capital", GLCode: "3000", AccountType: domain.Equity},
		{ID: headerAcct, Name: "Assets", GLCode: "1", AccountType: domain.Asset, Usage: domain.HeaderUsage},
		{ID: disabledAcct, Name: "Old bank", GLCode: "1099", AccountType: domain.Asset, Disabled: true},
	} {
		if a.Usage == "" {
			a.Usage = domain.DetailUsage
		}
		s.AddGLAccount(a)
	}
	for id := int64(1); id <= 3; id++ {
		s.AddPaymentType(domain.PaymentType{ID: id, Name: "channel"})
	}
	s.AddCharge(domain.Charge{ID: 1, Name: "Processing fee", CurrencyCode: "USD", IsActive: true})
	s.AddCharge(domain.Charge{ID: 2, Name: "Service fee", CurrencyCode: "USD", IsActive: true})
	s.AddCharge(domain.Charge{ID: 3, Name: "Euro fee", CurrencyCode: "EUR", IsActive: true})
	s.AddCharge(domain.Charge{ID: 4, Name: "Late penalty", CurrencyCode: "USD", IsPenalty: true, IsActive: true})
	s.AddCharge(domain.Charge{ID: 5, Name: "Bounce penalty", CurrencyCode: "USD", IsPenalty: true, IsActive: true})
	s.AddCharge(domain.Charge{ID: 6, Name: "Default penalty", CurrencyCode: "USD", IsPenalty: true, IsActive: true})
	s.AddCashier(domain.Cashier{ID: activeCashier, TellerID: 1, OfficeID: 1, StaffName: "A. Teller", IsActive: true})
	s.AddCashier(domain.Cashier{ID: retiredCashier, TellerID: 1, OfficeID: 1, StaffName: "B. Teller"})
	s.SetActivityAccount(domain.CashAtMainVault, vaultAcct)
	s.SetActivityAccount(domain.CashAtTeller, tellerAcct)

	f := &fixture{store: s, repos: memory.NewRepositoryProvider(s), cat: catalog.Default()}
	f.svc = services.NewServiceContainer(f.repos, f.cat)
	return f
}

// withRepos rebuilds the services over modified repositories.
func (f *fixture) withRepos(modify func(r *portsrepo.RepositoryProvider)) *portssvc.ServiceContainer {
	repos := f.repos
	modify(&repos)
	return services.NewServiceContainer(repos, f.cat)
}

func (f *fixture) mappings(t *testing.T, productID int64, productType domain.ProductType) []domain.ProductAccountMapping {
	t.Helper()
	all, err := f.store.FindAllMappings(context.Background(), productID, productType)
	require.NoError(t, err)
	return all
}

func id(v int64) *int64 { return &v }

// loanCashAccounts binds every required loan slot of cash mode.
func loanCashAccounts() map[string]*int64 {
	return map[string]*int64{
		catalog.FundSource:          id(cashAcct),
		catalog.LoanPortfolio:       id(portfolioAcct),
		catalog.InterestOnLoans:     id(interestAcct),
		catalog.IncomeFromFees:      id(feeIncomeAcct),
		catalog.IncomeFromPenalties: id(penaltyAcct),
		catalog.LossesWrittenOff:    id(writeOffAcct),
		catalog.Overpayment:         id(overpayAcct),
		catalog.TransfersSuspense:   id(bankAcct),
		catalog.IncomeFromRecovery:  id(interestAcct),
	}
}

// failingMappingRepo fails UpsertMapping once failAfter upserts have succeeded.
type failingMappingRepo struct {
	portsrepo.ProductMappingRepositoryFacade
	failAfter int
	calls     int
}

func (r *failingMappingRepo) UpsertMapping(ctx context.Context, m domain.ProductAccountMapping) (*domain.ProductAccountMapping, error) {
	r.calls++
	if r.calls > r.failAfter {
		return nil, errInjected
	}
	return r.ProductMappingRepositoryFacade.UpsertMapping(ctx, m)
}

// failingJournalRepo rejects every write.
type failingJournalRepo struct {
	portsrepo.JournalRepositoryFacade
}

func (failingJournalRepo) SaveJournalEntries(context.Context, []domain.JournalEntry) ([]int64, error) {
	return nil, errInjected
}
