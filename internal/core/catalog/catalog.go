// Package catalog holds the static table of financial account slots per
// product type and accounting mode, and the GL account categories each slot accepts.
package catalog

import (
	"fmt"
	"slices"

	"github.com/SscSPs/coa_ledger_engine/internal/apperrors"
	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// SlotDefinition describes one financial account slot.
type SlotDefinition struct {
	Code          domain.SlotCode
	Name          string
	Allowed       []domain.AccountType
	Discriminator domain.DiscriminatorKind
	// Required slots must be bound once accounting is enabled for the product.
	Required bool
	// DeleteWhenAbsent removes an existing binding when a save omits the slot entirely.
	DeleteWhenAbsent bool
}

// Allows reports whether an account of category t may be bound to the slot.
func (d SlotDefinition) Allows(t domain.AccountType) bool {
	return slices.Contains(d.Allowed, t)
}

// AllowedNames returns the allowed categories as strings, for error messages.
func (d SlotDefinition) AllowedNames() []string {
	names := make([]string, len(d.Allowed))
	for i, t := range d.Allowed {
		names[i] = string(t)
	}
	return names
}

type tableKey struct {
	productType domain.ProductType
	mode        domain.AccountingMode
}

// Catalog is an immutable lookup over slot tables. Safe for concurrent use.
type Catalog struct {
	tables map[tableKey][]SlotDefinition
	byCode map[tableKey]map[domain.SlotCode]SlotDefinition
	byName map[tableKey]map[string]SlotDefinition
	// codes is keyed by product type only; a code means the same slot in every mode.
	codes map[domain.ProductType]map[domain.SlotCode]SlotDefinition
}

// New builds a catalog from the given tables. Mode NONE is always present and empty.
func New(tables map[domain.ProductType]map[domain.AccountingMode][]SlotDefinition) *Catalog {
	c := &Catalog{
		tables: make(map[tableKey][]SlotDefinition),
		byCode: make(map[tableKey]map[domain.SlotCode]SlotDefinition),
		byName: make(map[tableKey]map[string]SlotDefinition),
		codes:  make(map[domain.ProductType]map[domain.SlotCode]SlotDefinition),
	}
	for pt, modes := range tables {
		c.codes[pt] = make(map[domain.SlotCode]SlotDefinition)
		c.register(tableKey{pt, domain.ModeNone}, nil)
		for mode, slots := range modes {
			c.register(tableKey{pt, mode}, slots)
			for _, s := range slots {
				c.codes[pt][s.Code] = s
			}
		}
	}
	return c
}

func (c *Catalog) register(key tableKey, slots []SlotDefinition) {
	c.tables[key] = slots
	c.byCode[key] = make(map[domain.SlotCode]SlotDefinition, len(slots))
	c.byName[key] = make(map[string]SlotDefinition, len(slots))
	for _, s := range slots {
		c.byCode[key][s.Code] = s
		c.byName[key][s.Name] = s
	}
}

// SupportsMode reports whether productType can be configured with mode.
func (c *Catalog) SupportsMode(productType domain.ProductType, mode domain.AccountingMode) bool {
	_, ok := c.tables[tableKey{productType, mode}]
	return ok
}

// Slots returns the ordered slot table for (productType, mode).
func (c *Catalog) Slots(productType domain.ProductType, mode domain.AccountingMode) ([]SlotDefinition, error) {
	slots, ok := c.tables[tableKey{productType, mode}]
	if !ok {
		return nil, fmt.Errorf("%w: accounting mode %s is not supported for %s products", apperrors.ErrValidation, mode, productType)
	}
	return slots, nil
}

// Lookup resolves a slot code under (productType, mode).
func (c *Catalog) Lookup(productType domain.ProductType, mode domain.AccountingMode, code domain.SlotCode) (SlotDefinition, bool) {
	s, ok := c.byCode[tableKey{productType, mode}][code]
	return s, ok
}

// LookupByName resolves a slot name under (productType, mode).
func (c *Catalog) LookupByName(productType domain.ProductType, mode domain.AccountingMode, name string) (SlotDefinition, bool) {
	s, ok := c.byName[tableKey{productType, mode}][name]
	return s, ok
}

// SlotName returns the name of a code for productType in any mode.
func (c *Catalog) SlotName(productType domain.ProductType, code domain.SlotCode) (string, bool) {
	s, ok := c.codes[productType][code]
	return s.Name, ok
}

// SlotByName resolves a slot name for productType in any mode.
func (c *Catalog) SlotByName(productType domain.ProductType, name string) (SlotDefinition, bool) {
	for _, s := range c.codes[productType] {
		if s.Name == name {
			return s, true
		}
	}
	return SlotDefinition{}, false
}

// AllowedCategories returns the categories permitted for the slot.
// Asking for a slot that does not exist under (productType, mode) is a programming error and panics.
func (c *Catalog) AllowedCategories(productType domain.ProductType, mode domain.AccountingMode, code domain.SlotCode) []domain.AccountType {
	s, ok := c.Lookup(productType, mode, code)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown slot %d for %s/%s", code, productType, mode))
	}
	return s.Allowed
}

// Discriminator returns the discriminator kind of a slot. Panics on an unknown slot.
func (c *Catalog) Discriminator(productType domain.ProductType, code domain.SlotCode) domain.DiscriminatorKind {
	s, ok := c.codes[productType][code]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown slot %d for %s", code, productType))
	}
	return s.Discriminator
}
