package domain

import "strings"

// SlotCode is the persisted numeric code of a financial account slot.
// Codes are scoped to a product type.
type SlotCode int

// DiscriminatorKind tells whether a slot can carry several bindings keyed by a secondary id.
type DiscriminatorKind string

const (
	DiscriminatorNone        DiscriminatorKind = "NONE"
	DiscriminatorPaymentType DiscriminatorKind = "PAYMENT_TYPE"
	DiscriminatorCharge      DiscriminatorKind = "CHARGE"
)

// SlotFamily groups the bindings a caller reconciles together.
type SlotFamily string

const (
	FamilyAccounts        SlotFamily = "ACCOUNTS"
	FamilyPaymentChannels SlotFamily = "PAYMENT_CHANNELS"
	FamilyFeeCharges      SlotFamily = "FEE_CHARGES"
	FamilyPenaltyCharges  SlotFamily = "PENALTY_CHARGES"
)

// ParseSlotFamily accepts both "PAYMENT_CHANNELS" and the URL form "payment-channels".
func ParseSlotFamily(s string) (SlotFamily, bool) {
	f := SlotFamily(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	switch f {
	case FamilyAccounts, FamilyPaymentChannels, FamilyFeeCharges, FamilyPenaltyCharges:
		return f, true
	}
	return "", false
}

// Discriminator returns the discriminator kind the family's slot is keyed by.
func (f SlotFamily) Discriminator() DiscriminatorKind {
	switch f {
	case FamilyPaymentChannels:
		return DiscriminatorPaymentType
	case FamilyFeeCharges, FamilyPenaltyCharges:
		return DiscriminatorCharge
	}
	return DiscriminatorNone
}
