package domain

// MappingChange describes one created, updated or deleted binding.
type MappingChange struct {
	Slot              string   `json:"slot"`
	SlotCode          SlotCode `json:"financialAccountType"`
	PaymentTypeID     *int64   `json:"paymentTypeId,omitempty"`
	ChargeID          *int64   `json:"chargeId,omitempty"`
	PreviousAccountID *int64   `json:"previousGlAccountId,omitempty"`
	AccountID         *int64   `json:"glAccountId,omitempty"`
}

// ChangeSet is the outcome of one reconciliation pass. An empty set marshals to {}.
type ChangeSet struct {
	Created []MappingChange `json:"created,omitempty"`
	Updated []MappingChange `json:"updated,omitempty"`
	Deleted []MappingChange `json:"deleted,omitempty"`
}

// IsEmpty reports whether the pass wrote nothing.
func (c ChangeSet) IsEmpty() bool {
	return c.Len() == 0
}

// Len returns the total number of changes.
func (c ChangeSet) Len() int {
	return len(c.Created) + len(c.Updated) + len(c.Deleted)
}

// Merge appends the changes of other to c.
func (c *ChangeSet) Merge(other ChangeSet) {
	c.Created = append(c.Created, other.Created...)
	c.Updated = append(c.Updated, other.Updated...)
	c.Deleted = append(c.Deleted, other.Deleted...)
}
