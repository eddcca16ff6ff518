package billing

// Discount tiers accepted by the calculator. Arbitrary percentages are
// snapped to the nearest tier before any amount is computed.
const (
	DiscountTierNone   = 0
	DiscountTierTen    = 10
	DiscountTierTwenty = 20
	DiscountTierThirty = 30
)

// ProcedureLine is a single procedure charge feeding an invoice total.
type ProcedureLine struct {
	Label  string
	Amount int64 // cents
}

// SnapDiscountTier maps an arbitrary percentage onto the supported tiers:
// 0-5 -> 0, 6-15 -> 10, 16-25 -> 20, 26+ -> 30.
func SnapDiscountTier(percent int) int {
	switch {
	case percent <= 5:
		return DiscountTierNone
	case percent <= 15:
		return DiscountTierTen
	case percent <= 25:
		return DiscountTierTwenty
	default:
		return DiscountTierThirty
	}
}

// ComputeTotal computes an invoice total in cents from a consultation charge
// (zeroed when waived), procedure charges and a discount percentage. The
// percentage is snapped to a tier first. The result never goes below zero.
func ComputeTotal(consultationAmount int64, consultationWaived bool, procedures []ProcedureLine, discountPercent int) int64 {
	var subtotal int64
	if !consultationWaived {
		subtotal += consultationAmount
	}
	for _, p := range procedures {
		subtotal += p.Amount
	}

	tier := SnapDiscountTier(discountPercent)
	discount := subtotal * int64(tier) / 100

	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	return total
}

// DiscountAmount returns the discount in cents a subtotal attracts at the
// snapped tier for the given percentage.
func DiscountAmount(subtotal int64, discountPercent int) int64 {
	return subtotal * int64(SnapDiscountTier(discountPercent)) / 100
}
