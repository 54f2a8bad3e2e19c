package services

import (
	"maps"
	"slices"

	"github.com/SscSPs/coa_ledger_engine/internal/core/domain"
)

// rebind is an existing row whose GL account changes.
type rebind struct {
	existing  domain.ProductAccountMapping
	accountID int64
}

// bindingDiff is the minimal set of writes taking existing to incoming.
type bindingDiff struct {
	create map[int64]int64 // discriminator key -> GL account
	update []rebind
	delete []domain.ProductAccountMapping
}

// createKeys returns the keys to create in ascending order.
func (d bindingDiff) createKeys() []int64 {
	return slices.Sorted(maps.Keys(d.create))
}

// diffBindings compares discriminated rows against the target key -> account map.
// It creates incoming keys missing from existing, rebinds keys whose account differs,
// and deletes existing keys absent from incoming.
func diffBindings(existing []domain.ProductAccountMapping, incoming map[int64]int64) bindingDiff {
	d := bindingDiff{create: make(map[int64]int64)}
	seen := make(map[int64]bool, len(existing))

	for _, row := range existing {
		key, ok := row.DiscriminatorKey()
		if !ok {
			continue
		}
		seen[key] = true
		target, wanted := incoming[key]
		switch {
		case !wanted:
			d.delete = append(d.delete, row)
		case target != row.GLAccountID:
			d.update = append(d.update, rebind{existing: row, accountID: target})
		}
	}
	for key, account := range incoming {
		if !seen[key] {
			d.create[key] = account
		}
	}
	return d
}
