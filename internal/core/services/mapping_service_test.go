package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
	"github.com/stretchr/testify/suite"
)

type MappingServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	f   *fixture
}

func TestMappingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MappingServiceTestSuite))
}

func (suite *MappingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.f = newFixture(suite.T())
}

func (suite *MappingServiceTestSuite) fullLoanSave() dto.SaveAccountingRequest {
	return dto.SaveAccountingRequest{
		ProductID:               loanID,
		ProductType:             domain.LoanProduct,
		Mode:                    domain.ModeCash,
		CurrencyCode:            "USD",
		Accounts:                loanCashAccounts(),
		PaymentChannelMappings:  []dto.PaymentChannelBinding{{PaymentTypeID: 1, FundSourceAccountID: cashAcct}},
		FeeToIncomeMappings:     []dto.ChargeBinding{{ChargeID: 1, IncomeAccountID: feeIncomeAcct}},
		PenaltyToIncomeMappings: []dto.ChargeBinding{{ChargeID: 4, IncomeAccountID: penaltyAcct}},
	}
}

func (suite *MappingServiceTestSuite) reconcile(family domain.SlotFamily, bindings ...dto.Binding) (domain.ChangeSet, error) {
	return suite.f.svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
		ProductID:   loanID,
		ProductType: domain.LoanProduct,
		Family:      family,
		Mode:        domain.ModeCash,
		Bindings:    bindings,
	})
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_CreatesThenIsIdempotent() {
	changes, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)
	suite.Len(changes.Created, 12)
	suite.Empty(changes.Updated)
	suite.Empty(changes.Deleted)
	suite.Len(suite.f.mappings(suite.T(), loanID, domain.LoanProduct), 12)

	again, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)
	suite.True(again.IsEmpty(), "second identical save must not write: %+v", again)
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_MissingRequiredSlot() {
	req := suite.fullLoanSave()
	delete(req.Accounts, catalog.LoanPortfolio)

	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorContains(err, catalog.LoanPortfolio)
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_NullAndAbsentSemantics() {
	req := suite.fullLoanSave()
	req.Accounts[catalog.GoodwillCredit] = id(writeOffAcct)
	req.Accounts[catalog.ChargeOffInterest] = id(interestAcct)
	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, req)
	suite.Require().NoError(err)

	// Absent: GOODWILL_CREDIT stays, the charge-off slot is removed.
	changes, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)
	suite.Require().Len(changes.Deleted, 1)
	suite.Equal(catalog.ChargeOffInterest, changes.Deleted[0].Slot)
	suite.Equal(interestAcct, *changes.Deleted[0].PreviousAccountID)

	// Explicit null on an optional slot unbinds it.
	req = suite.fullLoanSave()
	req.Accounts[catalog.GoodwillCredit] = nil
	changes, err = suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, req)
	suite.Require().NoError(err)
	suite.Require().Len(changes.Deleted, 1)
	suite.Equal(catalog.GoodwillCredit, changes.Deleted[0].Slot)

	// Explicit null on a required slot is rejected.
	req = suite.fullLoanSave()
	req.Accounts[catalog.LoanPortfolio] = nil
	_, err = suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_NilListLeavesFamilyUntouched() {
	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)

	req := suite.fullLoanSave()
	req.PaymentChannelMappings = nil
	req.FeeToIncomeMappings = []dto.ChargeBinding{}
	changes, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, req)
	suite.Require().NoError(err)

	suite.Empty(changes.Created)
	suite.Empty(changes.Updated)
	suite.Require().Len(changes.Deleted, 1)
	suite.Equal(int64(1), *changes.Deleted[0].ChargeID)

	channels, err := suite.f.store.FindPaymentTypeMappings(suite.ctx, loanID, domain.LoanProduct)
	suite.Require().NoError(err)
	suite.Len(channels, 1)
}

func (suite *MappingServiceTestSuite) TestScenario_FundSourceRebinding() {
	_, err := suite.reconcile(domain.FamilyPaymentChannels, dto.Binding{Key: 1, AccountID: cashAcct})
	suite.Require().NoError(err)

	changes, err := suite.reconcile(domain.FamilyPaymentChannels,
		dto.Binding{Key: 1, AccountID: bankAcct},
		dto.Binding{Key: 2, AccountID: portfolioAcct},
	)
	suite.Require().NoError(err)

	suite.Require().Len(changes.Updated, 1)
	suite.Equal(int64(1), *changes.Updated[0].PaymentTypeID)
	suite.Equal(cashAcct, *changes.Updated[0].PreviousAccountID)
	suite.Equal(bankAcct, *changes.Updated[0].AccountID)
	suite.Equal(catalog.FundSource, changes.Updated[0].Slot)

	suite.Require().Len(changes.Created, 1)
	suite.Equal(int64(2), *changes.Created[0].PaymentTypeID)
	suite.Equal(portfolioAcct, *changes.Created[0].AccountID)
	suite.Empty(changes.Deleted)

	again, err := suite.reconcile(domain.FamilyPaymentChannels,
		dto.Binding{Key: 1, AccountID: bankAcct},
		dto.Binding{Key: 2, AccountID: portfolioAcct},
	)
	suite.Require().NoError(err)
	suite.True(again.IsEmpty())
}

func (suite *MappingServiceTestSuite) TestScenario_DisablingChargeFamily() {
	_, err := suite.reconcile(domain.FamilyPenaltyCharges,
		dto.Binding{Key: 4, AccountID: penaltyAcct},
		dto.Binding{Key: 5, AccountID: penaltyAcct},
		dto.Binding{Key: 6, AccountID: interestAcct},
	)
	suite.Require().NoError(err)

	changes, err := suite.reconcile(domain.FamilyPenaltyCharges)
	suite.Require().NoError(err)
	suite.Len(changes.Deleted, 3)
	suite.Empty(changes.Created)
	suite.Empty(changes.Updated)
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestScenario_ChargePenaltyFlagChangedAfterBinding() {
	_, err := suite.reconcile(domain.FamilyFeeCharges, dto.Binding{Key: 1, AccountID: feeIncomeAcct})
	suite.Require().NoError(err)

	// the charge is reclassified in reference data after it was bound as a fee
	suite.f.store.AddCharge(domain.Charge{ID: 1, Name: "Processing fee", CurrencyCode: "USD", IsPenalty: true, IsActive: true})

	changes, err := suite.reconcile(domain.FamilyPenaltyCharges)
	suite.Require().NoError(err)
	suite.True(changes.IsEmpty(), "the row is stored under the fee slot")
	suite.Len(suite.f.mappings(suite.T(), loanID, domain.LoanProduct), 1)

	_, err = suite.reconcile(domain.FamilyFeeCharges, dto.Binding{Key: 1, AccountID: feeIncomeAcct})
	suite.ErrorIs(err, apperrors.ErrValidation, "new fee bindings still require a fee charge")

	changes, err = suite.reconcile(domain.FamilyFeeCharges)
	suite.Require().NoError(err)
	suite.Require().Len(changes.Deleted, 1)
	suite.Equal(catalog.IncomeFromFees, changes.Deleted[0].Slot)
	suite.Equal(int64(1), *changes.Deleted[0].ChargeID)
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestScenario_CategoryViolationLeavesRowsUntouched() {
	_, err := suite.reconcile(domain.FamilyPaymentChannels, dto.Binding{Key: 1, AccountID: cashAcct})
	suite.Require().NoError(err)
	before := suite.f.mappings(suite.T(), loanID, domain.LoanProduct)

	_, err = suite.reconcile(domain.FamilyPaymentChannels,
		dto.Binding{Key: 1, AccountID: bankAcct},
		dto.Binding{Key: 2, AccountID: interestAcct},
	)

	var catErr *apperrors.InvalidAccountCategoryError
	suite.Require().ErrorAs(err, &catErr)
	suite.Equal(interestAcct, catErr.AccountID)
	suite.Equal("fundSourceAccountId[1]", catErr.Parameter)
	suite.Equal(string(domain.Income), catErr.Actual)
	suite.ElementsMatch([]string{"ASSET", "LIABILITY"}, catErr.Expected)
	suite.Equal(before, suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestCategoryEnforcement_AllSlotsAllCategories() {
	byCategory := map[domain.AccountType]int64{
		domain.Asset:     cashAcct,
		domain.Liability: overpayAcct,
		domain.Income:    interestAcct,
		domain.Expense:   writeOffAcct,
		domain.Equity:    equityAcct,
	}
	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)

	for productType, modes := range catalog.DefaultTables() {
		for mode, slots := range modes {
			for _, slot := range slots {
				for category, account := range byCategory {
					if slot.Allows(category) {
						continue
					}
					before := suite.f.mappings(suite.T(), loanID, productType)
					_, err := suite.f.svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
						ProductID:   loanID,
						ProductType: productType,
						Family:      domain.FamilyAccounts,
						Mode:        mode,
						Accounts:    map[string]*int64{slot.Name: id(account)},
					})
					suite.ErrorIs(err, apperrors.ErrInvalidAccountCategory, "%s/%s/%s with %s", productType, mode, slot.Name, category)
					suite.Equal(before, suite.f.mappings(suite.T(), loanID, productType))
				}
			}
		}
	}
}

func (suite *MappingServiceTestSuite) TestReconcile_RejectsBadTargets() {
	tests := []struct {
		name     string
		family   domain.SlotFamily
		currency string
		bindings []dto.Binding
		want     error
	}{
		{"duplicate key", domain.FamilyFeeCharges, "", []dto.Binding{{Key: 1, AccountID: feeIncomeAcct}, {Key: 1, AccountID: interestAcct}}, apperrors.ErrValidation},
		{"penalty in fee family", domain.FamilyFeeCharges, "", []dto.Binding{{Key: 4, AccountID: feeIncomeAcct}}, apperrors.ErrValidation},
		{"fee in penalty family", domain.FamilyPenaltyCharges, "", []dto.Binding{{Key: 1, AccountID: penaltyAcct}}, apperrors.ErrValidation},
		{"currency mismatch", domain.FamilyFeeCharges, "USD", []dto.Binding{{Key: 3, AccountID: feeIncomeAcct}}, apperrors.ErrValidation},
		{"unknown charge", domain.FamilyFeeCharges, "", []dto.Binding{{Key: 99, AccountID: feeIncomeAcct}}, apperrors.ErrNotFound},
		{"unknown payment type", domain.FamilyPaymentChannels, "", []dto.Binding{{Key: 99, AccountID: cashAcct}}, apperrors.ErrNotFound},
		{"unknown account", domain.FamilyPaymentChannels, "", []dto.Binding{{Key: 1, AccountID: 9999}}, apperrors.ErrNotFound},
		{"header account", domain.FamilyPaymentChannels, "", []dto.Binding{{Key: 1, AccountID: headerAcct}}, apperrors.ErrValidation},
		{"disabled account", domain.FamilyPaymentChannels, "", []dto.Binding{{Key: 1, AccountID: disabledAcct}}, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.f.svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
				ProductID:    loanID,
				ProductType:  domain.LoanProduct,
				Family:       tt.family,
				Mode:         domain.ModeCash,
				CurrencyCode: tt.currency,
				Bindings:     tt.bindings,
			})
			suite.ErrorIs(err, tt.want)
			suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
		})
	}
}

func (suite *MappingServiceTestSuite) TestReconcile_UnknownSlotAndFamily() {
	_, err := suite.f.svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
		ProductID: loanID, ProductType: domain.LoanProduct, Family: domain.FamilyAccounts, Mode: domain.ModeCash,
		Accounts: map[string]*int64{"INTEREST_PAYABLE": id(overpayAcct)},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
		ProductID: loanID, ProductType: domain.SharesProduct, Family: domain.FamilyPaymentChannels, Mode: domain.ModeCash,
		Bindings: []dto.Binding{{Key: 1, AccountID: cashAcct}},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.f.svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
		ProductID: loanID, ProductType: domain.SavingsProduct, Family: domain.FamilyFeeCharges, Mode: domain.ModeAccrualUpfront,
	})
	suite.ErrorIs(err, apperrors.ErrValidation, "savings products have no upfront accrual")
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_ModeSwitchPrunesAccrualSlots() {
	req := suite.fullLoanSave()
	req.Mode = domain.ModeAccrualPeriodic
	req.Accounts[catalog.InterestReceivable] = id(bankAcct)
	req.Accounts[catalog.FeesReceivable] = id(bankAcct)
	req.Accounts[catalog.PenaltiesReceivable] = id(bankAcct)
	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, req)
	suite.Require().NoError(err)
	suite.Len(suite.f.mappings(suite.T(), loanID, domain.LoanProduct), 15)

	changes, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)

	var deleted []string
	for _, c := range changes.Deleted {
		deleted = append(deleted, c.Slot)
	}
	suite.ElementsMatch([]string{catalog.InterestReceivable, catalog.FeesReceivable, catalog.PenaltiesReceivable}, deleted)
	suite.Len(suite.f.mappings(suite.T(), loanID, domain.LoanProduct), 12)
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_ModeNone() {
	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)

	_, err = suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, dto.SaveAccountingRequest{
		ProductID: loanID, ProductType: domain.LoanProduct, Mode: domain.ModeNone,
		Accounts: map[string]*int64{catalog.LoanPortfolio: id(portfolioAcct)},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	changes, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, dto.SaveAccountingRequest{
		ProductID: loanID, ProductType: domain.LoanProduct, Mode: domain.ModeNone,
	})
	suite.Require().NoError(err)
	suite.Len(changes.Deleted, 12)
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestSaveProductAccounting_Shares() {
	changes, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, dto.SaveAccountingRequest{
		ProductID:   loanID,
		ProductType: domain.SharesProduct,
		Mode:        domain.ModeCash,
		Accounts: map[string]*int64{
			catalog.SharesReference: id(cashAcct),
			catalog.SharesSuspense:  id(suspenseLiab),
			catalog.IncomeFromFees:  id(feeIncomeAcct),
			catalog.SharesEquity:    id(equityAcct),
		},
		FeeToIncomeMappings:    []dto.ChargeBinding{{ChargeID: 2, IncomeAccountID: feeIncomeAcct}},
		PaymentChannelMappings: []dto.PaymentChannelBinding{},
	})
	suite.Require().NoError(err)
	suite.Len(changes.Created, 5)

	// A loan with the same id is a different product.
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestDeleteAllMappings() {
	_, err := suite.f.svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.Require().NoError(err)

	changes, err := suite.f.svc.Mapping.DeleteAllMappings(suite.ctx, loanID, domain.LoanProduct)
	suite.Require().NoError(err)
	suite.Len(changes.Deleted, 12)
	for _, c := range changes.Deleted {
		suite.NotEmpty(c.Slot)
		suite.NotNil(c.PreviousAccountID)
	}
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))

	again, err := suite.f.svc.Mapping.DeleteAllMappings(suite.ctx, loanID, domain.LoanProduct)
	suite.Require().NoError(err)
	suite.True(again.IsEmpty())
}

func (suite *MappingServiceTestSuite) TestFailureMidApplyRollsBackEverything() {
	failing := &failingMappingRepo{ProductMappingRepositoryFacade: suite.f.store, failAfter: 5}
	svc := suite.f.withRepos(func(r *portsrepo.RepositoryProvider) { r.MappingRepo = failing })

	_, err := svc.Mapping.SaveProductAccounting(suite.ctx, suite.fullLoanSave())
	suite.ErrorIs(err, errInjected)
	suite.Equal(6, failing.calls)
	suite.Empty(suite.f.mappings(suite.T(), loanID, domain.LoanProduct))
}

func (suite *MappingServiceTestSuite) TestDuplicateBindingNamesSlot() {
	conflict := &conflictingMappingRepo{ProductMappingRepositoryFacade: suite.f.store}
	svc := suite.f.withRepos(func(r *portsrepo.RepositoryProvider) { r.MappingRepo = conflict })

	_, err := svc.Mapping.Reconcile(suite.ctx, dto.ReconcileRequest{
		ProductID: loanID, ProductType: domain.LoanProduct, Family: domain.FamilyFeeCharges, Mode: domain.ModeCash,
		Bindings: []dto.Binding{{Key: 1, AccountID: feeIncomeAcct}},
	})

	var dup *apperrors.DuplicateBindingError
	suite.Require().ErrorAs(err, &dup)
	suite.Equal(catalog.IncomeFromFees, dup.Slot)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// conflictingMappingRepo behaves as if a concurrent writer inserted the same row first.
type conflictingMappingRepo struct {
	portsrepo.ProductMappingRepositoryFacade
}

func (conflictingMappingRepo) UpsertMapping(_ context.Context, m domain.ProductAccountMapping) (*domain.ProductAccountMapping, error) {
	return nil, &apperrors.DuplicateBindingError{
		ProductID:   m.ProductID,
		ProductType: string(m.ProductType),
		Slot:        "4",
		Constraint:  "uq_product_account_mapping",
	}
}
