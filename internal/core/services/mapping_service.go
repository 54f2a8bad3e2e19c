package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/coa_ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coa_ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/coa_ledger_engine/internal/dto"
)

// mappingService reconciles product account mappings against caller-supplied targets.
// Every public operation plans all writes first, validating every target, and then
// applies the plan inside a single unit of work.
type mappingService struct {
	BaseService
	txManager     portsrepo.TransactionManager
	mappingRepo   portsrepo.ProductMappingRepositoryFacade
	referenceRepo portsrepo.ReferenceDataReader
	glDirectory   portssvc.GLAccountDirectorySvc
	catalog       *catalog.Catalog
}

// NewMappingService creates a new mapping reconciler.
func NewMappingService(
	txManager portsrepo.TransactionManager,
	mappingRepo portsrepo.ProductMappingRepositoryFacade,
	referenceRepo portsrepo.ReferenceDataReader,
	glDirectory portssvc.GLAccountDirectorySvc,
	cat *catalog.Catalog,
) portssvc.MappingSvcFacade {
	return &mappingService{
		txManager:     txManager,
		mappingRepo:   mappingRepo,
		referenceRepo: referenceRepo,
		glDirectory:   glDirectory,
		catalog:       cat,
	}
}

var _ portssvc.MappingSvcFacade = (*mappingService)(nil)

// mappingPlan is the validated set of writes for one operation.
type mappingPlan struct {
	upserts []domain.ProductAccountMapping // ID == 0 creates, otherwise rebinds
	deletes []domain.ProductAccountMapping
	changes domain.ChangeSet
}

func (p *mappingPlan) merge(other mappingPlan) {
	p.upserts = append(p.upserts, other.upserts...)
	p.deletes = append(p.deletes, other.deletes...)
	p.changes.Merge(other.changes)
}

func (p *mappingPlan) create(m domain.ProductAccountMapping, slot string) {
	p.upserts = append(p.upserts, m)
	p.changes.Created = append(p.changes.Created, change(m, slot, nil, &m.GLAccountID))
}

func (p *mappingPlan) rebind(existing domain.ProductAccountMapping, accountID int64, slot string) {
	previous := existing.GLAccountID
	existing.GLAccountID = accountID
	p.upserts = append(p.upserts, existing)
	p.changes.Updated = append(p.changes.Updated, change(existing, slot, &previous, &accountID))
}

func (p *mappingPlan) remove(existing domain.ProductAccountMapping, slot string) {
	previous := existing.GLAccountID
	p.deletes = append(p.deletes, existing)
	p.changes.Deleted = append(p.changes.Deleted, change(existing, slot, &previous, nil))
}

func change(m domain.ProductAccountMapping, slot string, previous, current *int64) domain.MappingChange {
	return domain.MappingChange{
		Slot:              slot,
		SlotCode:          m.SlotCode,
		PaymentTypeID:     m.PaymentTypeID,
		ChargeID:          m.ChargeID,
		PreviousAccountID: previous,
		AccountID:         current,
	}
}

// Reconcile applies the target bindings of one slot family.
func (s *mappingService) Reconcile(ctx context.Context, req dto.ReconcileRequest) (domain.ChangeSet, error) {
	logger := s.GetLogger(ctx).With(
		slog.Int64("product_id", req.ProductID),
		slog.String("product_type", string(req.ProductType)),
		slog.String("family", string(req.Family)),
		slog.String("accounting_mode", string(req.Mode)),
	)
	if _, err := s.catalog.Slots(req.ProductType, req.Mode); err != nil {
		return domain.ChangeSet{}, err
	}

	var plan mappingPlan
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		switch req.Family {
		case domain.FamilyAccounts:
			plan, err = s.planAccounts(ctx, req.ProductID, req.ProductType, req.Mode, req.Accounts)
		case domain.FamilyPaymentChannels, domain.FamilyFeeCharges, domain.FamilyPenaltyCharges:
			plan, err = s.planFamily(ctx, req.ProductID, req.ProductType, req.Mode, req.Family, req.Bindings, req.CurrencyCode)
		default:
			err = fmt.Errorf("%w: unknown slot family %q", apperrors.ErrValidation, req.Family)
		}
		if err != nil {
			return err
		}
		return s.apply(ctx, req.ProductID, req.ProductType, plan)
	})
	if err != nil {
		logger.Error("Failed to reconcile product mappings", slog.String("error", err.Error()))
		return domain.ChangeSet{}, err
	}

	logger.Info("Reconciled product mappings",
		slog.Int("created", len(plan.changes.Created)),
		slog.Int("updated", len(plan.changes.Updated)),
		slog.Int("deleted", len(plan.changes.Deleted)))
	return plan.changes, nil
}

// SaveProductAccounting reconciles every family of a product in one transaction.
// Rows whose slot does not exist under the new mode are removed; mode NONE removes everything.
func (s *mappingService) SaveProductAccounting(ctx context.Context, req dto.SaveAccountingRequest) (domain.ChangeSet, error) {
	logger := s.GetLogger(ctx).With(
		slog.Int64("product_id", req.ProductID),
		slog.String("product_type", string(req.ProductType)),
		slog.String("accounting_mode", string(req.Mode)),
	)
	families, err := familiesFor(req.ProductType)
	if err != nil {
		return domain.ChangeSet{}, err
	}
	if _, err := s.catalog.Slots(req.ProductType, req.Mode); err != nil {
		return domain.ChangeSet{}, err
	}

	targets := map[domain.SlotFamily][]dto.Binding{
		domain.FamilyPaymentChannels: dto.PaymentChannelsToBindings(req.PaymentChannelMappings),
		domain.FamilyFeeCharges:      dto.ChargesToBindings(req.FeeToIncomeMappings),
		domain.FamilyPenaltyCharges:  dto.ChargesToBindings(req.PenaltyToIncomeMappings),
	}

	if req.Mode == domain.ModeNone {
		if len(req.Accounts) > 0 || slices.ContainsFunc(discriminatedFamilies, func(f domain.SlotFamily) bool { return len(targets[f]) > 0 }) {
			return domain.ChangeSet{}, fmt.Errorf("%w: accounting mappings cannot be supplied when accounting mode is %s", apperrors.ErrValidation, domain.ModeNone)
		}
		changes, err := s.DeleteAllMappings(ctx, req.ProductID, req.ProductType)
		if err != nil {
			return domain.ChangeSet{}, err
		}
		return changes, nil
	}

	var plan mappingPlan
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		pruned, err := s.planModeSwitch(ctx, req.ProductID, req.ProductType, req.Mode)
		if err != nil {
			return err
		}
		plan.merge(pruned)

		accounts, err := s.planAccounts(ctx, req.ProductID, req.ProductType, req.Mode, req.Accounts)
		if err != nil {
			return err
		}
		plan.merge(accounts)

		// Family slots exist in every mode but NONE, so nothing pruned above is planned twice.
		for _, family := range discriminatedFamilies {
			target := targets[family]
			if target == nil {
				continue
			}
			if !families.supports(family) && len(target) == 0 {
				continue
			}
			p, err := s.planFamily(ctx, req.ProductID, req.ProductType, req.Mode, family, target, req.CurrencyCode)
			if err != nil {
				return err
			}
			plan.merge(p)
		}
		return s.apply(ctx, req.ProductID, req.ProductType, plan)
	})
	if err != nil {
		logger.Error("Failed to save product accounting", slog.String("error", err.Error()))
		return domain.ChangeSet{}, err
	}

	logger.Info("Saved product accounting", slog.Int("changes", plan.changes.Len()))
	return plan.changes, nil
}

// DeleteAllMappings removes every mapping of a product.
func (s *mappingService) DeleteAllMappings(ctx context.Context, productID int64, productType domain.ProductType) (domain.ChangeSet, error) {
	if _, err := familiesFor(productType); err != nil {
		return domain.ChangeSet{}, err
	}

	var changes domain.ChangeSet
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		removed, err := s.mappingRepo.DeleteMappingsForProduct(ctx, productID, productType)
		if err != nil {
			return err
		}
		var plan mappingPlan
		for _, m := range removed {
			plan.remove(m, s.slotName(productType, m.SlotCode))
		}
		changes = plan.changes
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete product mappings",
			slog.Int64("product_id", productID),
			slog.String("product_type", string(productType)))
		return domain.ChangeSet{}, err
	}

	s.LogInfo(ctx, "Deleted product mappings",
		slog.Int64("product_id", productID),
		slog.String("product_type", string(productType)),
		slog.Int("deleted", len(changes.Deleted)))
	return changes, nil
}

// planAccounts reconciles the non-discriminated slot bindings.
//
// For each slot of the mode: an id binds the slot; an explicit null unbinds it unless the
// slot is required; an absent key unbinds it only when the slot is DeleteWhenAbsent.
// Required slots must end up bound.
func (s *mappingService) planAccounts(ctx context.Context, productID int64, productType domain.ProductType, mode domain.AccountingMode, accounts map[string]*int64) (mappingPlan, error) {
	var plan mappingPlan
	slots, err := s.catalog.Slots(productType, mode)
	if err != nil {
		return plan, err
	}

	for _, name := range slices.Sorted(maps.Keys(accounts)) {
		if _, ok := s.catalog.LookupByName(productType, mode, name); !ok {
			return plan, fmt.Errorf("%w: slot %s does not exist for %s products in accounting mode %s", apperrors.ErrValidation, name, productType, mode)
		}
	}

	existing, err := s.mappingRepo.FindAccountMappings(ctx, productID, productType)
	if err != nil {
		return plan, err
	}
	existingByCode := make(map[domain.SlotCode]domain.ProductAccountMapping, len(existing))
	for _, m := range existing {
		existingByCode[m.SlotCode] = m
	}

	// Every supplied account is checked before any structural rule.
	for _, slot := range slots {
		if target := accounts[slot.Name]; target != nil {
			if _, err := s.glDirectory.ResolveForSlot(ctx, slot.Name, *target, slot); err != nil {
				return plan, err
			}
		}
	}

	for _, slot := range slots {
		target, present := accounts[slot.Name]
		current, bound := existingByCode[slot.Code]

		switch {
		case present && target != nil:
			if !bound {
				plan.create(domain.ProductAccountMapping{
					ProductID:   productID,
					ProductType: productType,
					SlotCode:    slot.Code,
					GLAccountID: *target,
				}, slot.Name)
			} else if current.GLAccountID != *target {
				plan.rebind(current, *target, slot.Name)
			}

		case present:
			if slot.Required {
				return plan, fmt.Errorf("%w: slot %s is required and cannot be unbound", apperrors.ErrValidation, slot.Name)
			}
			if bound {
				plan.remove(current, slot.Name)
			}

		case bound:
			if slot.DeleteWhenAbsent {
				plan.remove(current, slot.Name)
			}

		default:
			if slot.Required {
				return plan, fmt.Errorf("%w: slot %s is required for %s products in accounting mode %s", apperrors.ErrValidation, slot.Name, productType, mode)
			}
		}
	}
	return plan, nil
}

// planModeSwitch removes rows whose slot does not exist under mode.
func (s *mappingService) planModeSwitch(ctx context.Context, productID int64, productType domain.ProductType, mode domain.AccountingMode) (mappingPlan, error) {
	var plan mappingPlan
	all, err := s.mappingRepo.FindAllMappings(ctx, productID, productType)
	if err != nil {
		return plan, err
	}
	for _, m := range all {
		if _, ok := s.catalog.Lookup(productType, mode, m.SlotCode); !ok {
			plan.remove(m, s.slotName(productType, m.SlotCode))
		}
	}
	return plan, nil
}

// planFamily reconciles the discriminated bindings of one family.
func (s *mappingService) planFamily(ctx context.Context, productID int64, productType domain.ProductType, mode domain.AccountingMode, family domain.SlotFamily, bindings []dto.Binding, currencyCode string) (mappingPlan, error) {
	var plan mappingPlan
	families, err := familiesFor(productType)
	if err != nil {
		return plan, err
	}
	slot, ok := families.slot(s.catalog, productType, family)
	if !ok {
		if len(bindings) == 0 {
			return plan, nil
		}
		return plan, fmt.Errorf("%w: %s products do not support %s mappings", apperrors.ErrValidation, productType, family)
	}
	if _, inMode := s.catalog.Lookup(productType, mode, slot.Code); !inMode && len(bindings) > 0 {
		return plan, fmt.Errorf("%w: slot %s does not exist for %s products in accounting mode %s", apperrors.ErrValidation, slot.Name, productType, mode)
	}

	incoming, err := s.validateBindings(ctx, productType, family, slot, families.parameter(family), bindings, currencyCode)
	if err != nil {
		return plan, err
	}

	existing, err := s.findFamilyMappings(ctx, productID, productType, family, slot.Code)
	if err != nil {
		return plan, err
	}

	if len(incoming) == 0 {
		for _, m := range existing {
			plan.remove(m, slot.Name)
		}
		return plan, nil
	}

	diff := diffBindings(existing, incoming)
	for _, u := range diff.update {
		plan.rebind(u.existing, u.accountID, slot.Name)
	}
	for _, m := range diff.delete {
		plan.remove(m, slot.Name)
	}
	for _, key := range diff.createKeys() {
		m := domain.ProductAccountMapping{
			ProductID:   productID,
			ProductType: productType,
			SlotCode:    slot.Code,
			GLAccountID: diff.create[key],
		}
		k := key
		if family.Discriminator() == domain.DiscriminatorPaymentType {
			m.PaymentTypeID = &k
		} else {
			m.ChargeID = &k
		}
		plan.create(m, slot.Name)
	}
	return plan, nil
}

// findFamilyMappings returns the rows bound under the family's slot. Charge rows are
// matched by slot only, so a charge whose penalty flag changed is still reconciled.
func (s *mappingService) findFamilyMappings(ctx context.Context, productID int64, productType domain.ProductType, family domain.SlotFamily, slot domain.SlotCode) ([]domain.ProductAccountMapping, error) {
	if family == domain.FamilyPaymentChannels {
		rows, err := s.mappingRepo.FindPaymentTypeMappings(ctx, productID, productType)
		if err != nil {
			return nil, err
		}
		return slices.DeleteFunc(rows, func(m domain.ProductAccountMapping) bool { return m.SlotCode != slot }), nil
	}
	return s.mappingRepo.FindChargeMappings(ctx, productID, productType, slot)
}

// validateBindings checks every target before anything is written and returns key -> account.
func (s *mappingService) validateBindings(ctx context.Context, productType domain.ProductType, family domain.SlotFamily, slot catalog.SlotDefinition, parameter string, bindings []dto.Binding, currencyCode string) (map[int64]int64, error) {
	incoming := make(map[int64]int64, len(bindings))
	for i, b := range bindings {
		if _, dup := incoming[b.Key]; dup {
			return nil, fmt.Errorf("%w: %s mapping for key %d is submitted more than once", apperrors.ErrValidation, family, b.Key)
		}
		if err := s.validateDiscriminator(ctx, family, b.Key, currencyCode); err != nil {
			return nil, err
		}
		param := parameter + "[" + strconv.Itoa(i) + "]"
		if _, err := s.glDirectory.ResolveForSlot(ctx, param, b.AccountID, slot); err != nil {
			return nil, err
		}
		incoming[b.Key] = b.AccountID
	}
	return incoming, nil
}

func (s *mappingService) validateDiscriminator(ctx context.Context, family domain.SlotFamily, key int64, currencyCode string) error {
	if family == domain.FamilyPaymentChannels {
		_, err := s.referenceRepo.FindPaymentTypeByID(ctx, key)
		return err
	}

	charge, err := s.referenceRepo.FindChargeByID(ctx, key)
	if err != nil {
		return err
	}
	wantPenalty := family == domain.FamilyPenaltyCharges
	if charge.IsPenalty != wantPenalty {
		kind := "fee"
		if charge.IsPenalty {
			kind = "penalty"
		}
		return fmt.Errorf("%w: charge %d (%s) is a %s and cannot be used in %s mappings", apperrors.ErrValidation, charge.ID, charge.Name, kind, family)
	}
	if currencyCode != "" && charge.CurrencyCode != currencyCode {
		return fmt.Errorf("%w: charge %d currency %s does not match product currency %s", apperrors.ErrValidation, charge.ID, charge.CurrencyCode, currencyCode)
	}
	return nil
}

// apply writes a validated plan. Deletes run first so a slot freed by a mode switch cannot collide.
func (s *mappingService) apply(ctx context.Context, productID int64, productType domain.ProductType, plan mappingPlan) error {
	if len(plan.deletes) > 0 {
		ids := make([]int64, len(plan.deletes))
		for i, m := range plan.deletes {
			ids[i] = m.ID
		}
		if err := s.mappingRepo.DeleteMappings(ctx, ids); err != nil {
			return err
		}
	}

	for _, m := range plan.upserts {
		if _, err := s.mappingRepo.UpsertMapping(ctx, m); err != nil {
			var dup *apperrors.DuplicateBindingError
			if errors.As(err, &dup) {
				dup.Slot = s.slotName(productType, m.SlotCode)
			}
			s.LogWarn(ctx, "Mapping write rejected",
				slog.Int64("product_id", productID),
				slog.Int("slot", int(m.SlotCode)),
				slog.Int64("gl_account_id", m.GLAccountID))
			return err
		}
	}
	return nil
}

func (s *mappingService) slotName(productType domain.ProductType, code domain.SlotCode) string {
	if name, ok := s.catalog.SlotName(productType, code); ok {
		return name
	}
	return strconv.Itoa(int(code))
}
