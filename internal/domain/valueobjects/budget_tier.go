package valueobjects

import (
	"math"
	"strings"
)

// BudgetTier is the caller-supplied price expectation. It is deliberately not
// validated: unknown values are carried through and priced like TierMedium.
type BudgetTier string

const (
	TierBudget BudgetTier = "budget"
	TierMedium BudgetTier = "medium"
	TierLuxury BudgetTier = "luxury"
)

var tierBasePrices = map[BudgetTier]float64{
	TierBudget: 50,
	TierMedium: 150,
	TierLuxury: 300,
}

func NewBudgetTier(raw string) BudgetTier {
	tier := BudgetTier(strings.ToLower(strings.TrimSpace(raw)))
	if tier == "" {
		return TierMedium
	}
	return tier
}

func (t BudgetTier) String() string {
	return string(t)
}

func (t BudgetTier) IsKnown() bool {
	_, ok := tierBasePrices[t]
	return ok
}

// BasePrice is the fallback price for the tier.
func (t BudgetTier) BasePrice() float64 {
	if base, ok := tierBasePrices[t]; ok {
		return base
	}
	return tierBasePrices[TierMedium]
}

// FallbackRange is floor(base*0.8) .. ceil(base*1.2).
func (t BudgetTier) FallbackRange() PriceRange {
	base := t.BasePrice()
	return PriceRange{
		Min: math.Floor(base * 0.8),
		Max: math.Ceil(base * 1.2),
	}
}

// Describe is the wording used in oracle prompts.
func (t BudgetTier) Describe() string {
	switch t {
	case TierBudget:
		return "budget (affordable high-street and fast-fashion price points)"
	case TierLuxury:
		return "luxury (designer and premium label price points)"
	default:
		return "medium (mid-range contemporary brand price points)"
	}
}

func KnownBudgetTiers() []BudgetTier {
	return []BudgetTier{TierBudget, TierMedium, TierLuxury}
}
