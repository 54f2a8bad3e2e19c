package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
)

// accountingReaderService builds the mode-aware accounting view of a product.
type accountingReaderService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	mappingRepo   portsrepo.ProductMappingReader
	glRepo        portsrepo.GLAccountReader
	referenceRepo portsrepo.ReferenceDataReader
	catalog       *catalog.Catalog
}

// NewAccountingReaderService creates a new AccountingReaderSvcFacade.
func NewAccountingReaderService(
	txManager portsrepo.TransactionManager,
	mappingRepo portsrepo.ProductMappingReader,
	glRepo portsrepo.GLAccountReader,
	referenceRepo portsrepo.ReferenceDataReader,
	cat *catalog.Catalog,
) portssvc.AccountingReaderSvcFacade {
	return &accountingReaderService{
		txManager:     txManager,
		mappingRepo:   mappingRepo,
		glRepo:        glRepo,
		referenceRepo: referenceRepo,
		catalog:       cat,
	}
}

var _ portssvc.AccountingReaderSvcFacade = (*accountingReaderService)(nil)

// ReadAccounting resolves every stored slot code through the table of mode.
// Codes that do not exist under mode are logged and skipped.
func (s *accountingReaderService) ReadAccounting(ctx context.Context, productID int64, productType domain.ProductType, mode domain.AccountingMode) (*domain.ProductAccounting, error) {
	if _, err := s.catalog.Slots(productType, mode); err != nil {
		return nil, err
	}
	families, err := familiesFor(productType)
	if err != nil {
		return nil, err
	}

	result := &domain.ProductAccounting{
		ProductID:               productID,
		ProductType:             productType,
		Mode:                    mode,
		Accounts:                map[string]domain.GLAccountSummary{},
		PaymentChannelMappings:  []domain.PaymentChannelMapping{},
		FeeToIncomeMappings:     []domain.ChargeIncomeMapping{},
		PenaltyToIncomeMappings: []domain.ChargeIncomeMapping{},
	}
	if mode == domain.ModeNone {
		return result, nil
	}

	// One snapshot so the view never mixes states of a concurrent reconciliation.
	err = s.txManager.WithinReadTx(ctx, func(ctx context.Context) error {
		rows, err := s.mappingRepo.FindAccountMappings(ctx, productID, productType)
		if err != nil {
			return err
		}
		accounts, err := s.glRepo.FindGLAccountsByIDs(ctx, accountIDs(rows))
		if err != nil {
			return err
		}
		for _, row := range rows {
			slot, ok := s.catalog.Lookup(productType, mode, row.SlotCode)
			if !ok {
				s.LogWarn(ctx, "Skipping mapping with slot code unknown to accounting mode",
					slog.Int64("product_id", productID),
					slog.String("product_type", string(productType)),
					slog.String("accounting_mode", string(mode)),
					slog.Int("slot", int(row.SlotCode)))
				continue
			}
			account, ok := accounts[row.GLAccountID]
			if !ok {
				s.LogWarn(ctx, "Skipping mapping bound to unknown GL account",
					slog.Int64("product_id", productID),
					slog.String("slot", slot.Name),
					slog.Int64("gl_account_id", row.GLAccountID))
				continue
			}
			result.Accounts[slot.Name] = account.Summary()
		}

		if s.familyInMode(families, productType, mode, domain.FamilyPaymentChannels) {
			if result.PaymentChannelMappings, err = s.ListPaymentChannelMappings(ctx, productID, productType); err != nil {
				return err
			}
		}
		if s.familyInMode(families, productType, mode, domain.FamilyFeeCharges) {
			if result.FeeToIncomeMappings, err = s.listCharges(ctx, productID, productType, families, domain.FamilyFeeCharges); err != nil {
				return err
			}
		}
		if s.familyInMode(families, productType, mode, domain.FamilyPenaltyCharges) {
			if result.PenaltyToIncomeMappings, err = s.listCharges(ctx, productID, productType, families, domain.FamilyPenaltyCharges); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to read product accounting",
			slog.Int64("product_id", productID),
			slog.String("product_type", string(productType)))
		return nil, err
	}
	return result, nil
}

func (s *accountingReaderService) familyInMode(families productFamilies, productType domain.ProductType, mode domain.AccountingMode, family domain.SlotFamily) bool {
	slot, ok := families.slot(s.catalog, productType, family)
	if !ok {
		return false
	}
	_, ok = s.catalog.Lookup(productType, mode, slot.Code)
	return ok
}

// ListPaymentChannelMappings lists the payment type to fund source bindings.
// Bindings to unknown GL accounts are logged and skipped.
func (s *accountingReaderService) ListPaymentChannelMappings(ctx context.Context, productID int64, productType domain.ProductType) ([]domain.PaymentChannelMapping, error) {
	var out []domain.PaymentChannelMapping
	err := s.txManager.WithinReadTx(ctx, func(ctx context.Context) error {
		rows, err := s.mappingRepo.FindPaymentTypeMappings(ctx, productID, productType)
		if err != nil {
			return err
		}
		accounts, err := s.glRepo.FindGLAccountsByIDs(ctx, accountIDs(rows))
		if err != nil {
			return err
		}

		out = make([]domain.PaymentChannelMapping, 0, len(rows))
		for _, row := range rows {
			account, ok := accounts[row.GLAccountID]
			if !ok {
				s.warnUnknownAccount(ctx, productID, row)
				continue
			}
			paymentType, err := s.referenceRepo.FindPaymentTypeByID(ctx, *row.PaymentTypeID)
			if err != nil {
				return err
			}
			out = append(out, domain.PaymentChannelMapping{
				PaymentType: *paymentType,
				FundSource:  account.Summary(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListChargeIncomeMappings lists charge bindings. A nil penalty returns fees followed by penalties.
// A binding belongs to the family of the slot it is stored under, whatever the charge's current penalty flag.
func (s *accountingReaderService) ListChargeIncomeMappings(ctx context.Context, productID int64, productType domain.ProductType, penalty *bool) ([]domain.ChargeIncomeMapping, error) {
	families, err := familiesFor(productType)
	if err != nil {
		return nil, err
	}
	wanted := []domain.SlotFamily{domain.FamilyFeeCharges, domain.FamilyPenaltyCharges}
	if penalty != nil && *penalty {
		wanted = wanted[1:]
	} else if penalty != nil {
		wanted = wanted[:1]
	}

	out := []domain.ChargeIncomeMapping{}
	err = s.txManager.WithinReadTx(ctx, func(ctx context.Context) error {
		for _, family := range wanted {
			mappings, err := s.listCharges(ctx, productID, productType, families, family)
			if err != nil {
				return err
			}
			out = append(out, mappings...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *accountingReaderService) listCharges(ctx context.Context, productID int64, productType domain.ProductType, families productFamilies, family domain.SlotFamily) ([]domain.ChargeIncomeMapping, error) {
	out := []domain.ChargeIncomeMapping{}
	slot, ok := families.slot(s.catalog, productType, family)
	if !ok {
		return out, nil
	}
	rows, err := s.mappingRepo.FindChargeMappings(ctx, productID, productType, slot.Code)
	if err != nil {
		return nil, err
	}
	accounts, err := s.glRepo.FindGLAccountsByIDs(ctx, accountIDs(rows))
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		account, ok := accounts[row.GLAccountID]
		if !ok {
			s.warnUnknownAccount(ctx, productID, row)
			continue
		}
		charge, err := s.referenceRepo.FindChargeByID(ctx, *row.ChargeID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ChargeIncomeMapping{
			Charge:        *charge,
			IncomeAccount: account.Summary(),
		})
	}
	return out, nil
}

func (s *accountingReaderService) warnUnknownAccount(ctx context.Context, productID int64, row domain.ProductAccountMapping) {
	attrs := []any{
		slog.Int64("product_id", productID),
		slog.Int("slot", int(row.SlotCode)),
		slog.Int64("gl_account_id", row.GLAccountID),
	}
	if key, ok := row.DiscriminatorKey(); ok {
		attrs = append(attrs, slog.Int64("discriminator", key))
	}
	s.LogWarn(ctx, "Skipping mapping bound to unknown GL account", attrs...)
}

func accountIDs(rows []domain.ProductAccountMapping) []int64 {
	ids := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, r := range rows {
		if !seen[r.GLAccountID] {
			seen[r.GLAccountID] = true
			ids = append(ids, r.GLAccountID)
		}
	}
	return ids
}
