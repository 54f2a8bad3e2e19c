package services

import (
	"fmt"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/catalog"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// productFamilies names, per product type, the catalog slot that carries each
// discriminated family. A family without an entry is not offered by the product.
type productFamilies struct {
	slots map[domain.SlotFamily]string
	// parameters names the request field holding the bound account, for error messages.
	parameters map[domain.SlotFamily]string
}

var familiesByProduct = map[domain.ProductType]productFamilies{
	domain.LoanProduct: {
		slots: map[domain.SlotFamily]string{
			domain.FamilyPaymentChannels: catalog.FundSource,
			domain.FamilyFeeCharges:      catalog.IncomeFromFees,
			domain.FamilyPenaltyCharges:  catalog.IncomeFromPenalties,
		},
		parameters: defaultFamilyParameters,
	},
	domain.SavingsProduct: {
		slots: map[domain.SlotFamily]string{
			domain.FamilyPaymentChannels: catalog.SavingsReference,
			domain.FamilyFeeCharges:      catalog.IncomeFromFees,
			domain.FamilyPenaltyCharges:  catalog.IncomeFromPenalties,
		},
		parameters: defaultFamilyParameters,
	},
	domain.SharesProduct: {
		slots: map[domain.SlotFamily]string{
			domain.FamilyFeeCharges: catalog.IncomeFromFees,
		},
		parameters: defaultFamilyParameters,
	},
}

var defaultFamilyParameters = map[domain.SlotFamily]string{
	domain.FamilyPaymentChannels: "fundSourceAccountId",
	domain.FamilyFeeCharges:      "incomeAccountId",
	domain.FamilyPenaltyCharges:  "incomeAccountId",
}

var discriminatedFamilies = []domain.SlotFamily{
	domain.FamilyPaymentChannels,
	domain.FamilyFeeCharges,
	domain.FamilyPenaltyCharges,
}

func familiesFor(productType domain.ProductType) (productFamilies, error) {
	f, ok := familiesByProduct[productType]
	if !ok {
		return productFamilies{}, fmt.Errorf("%w: unknown product type %q", apperrors.ErrValidation, productType)
	}
	return f, nil
}

// supports reports whether the product offers the family at all.
func (f productFamilies) supports(family domain.SlotFamily) bool {
	_, ok := f.slots[family]
	return ok
}

// slot resolves the family's slot for productType independent of mode.
// The slot's discriminator must agree with the family; a mismatch is a table bug and panics.
func (f productFamilies) slot(cat *catalog.Catalog, productType domain.ProductType, family domain.SlotFamily) (catalog.SlotDefinition, bool) {
	name, ok := f.slots[family]
	if !ok {
		return catalog.SlotDefinition{}, false
	}
	def, ok := cat.SlotByName(productType, name)
	if !ok {
		panic(fmt.Sprintf("services: family %s maps to unknown slot %s for %s", family, name, productType))
	}
	if got := cat.Discriminator(productType, def.Code); got != family.Discriminator() {
		panic(fmt.Sprintf("services: slot %s is keyed by %s, family %s needs %s", name, got, family, family.Discriminator()))
	}
	return def, true
}

func (f productFamilies) parameter(family domain.SlotFamily) string {
	return f.parameters[family]
}
