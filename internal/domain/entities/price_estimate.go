package entities

import "github.com/vprudente/insta-fashion/internal/domain/valueobjects"

type PriceSource string

const (
	PriceSourceOracle   PriceSource = "oracle"
	PriceSourceFallback PriceSource = "fallback"
)

// FallbackReasoning is attached to every tier-derived estimate.
const FallbackReasoning = "Estimated from the selected budget tier; a model-based price estimate was not available for this item."

type PriceEstimate struct {
	EstimatedPrice float64                 `json:"estimated_price" yaml:"estimated_price"`
	PriceRange     valueobjects.PriceRange `json:"price_range" yaml:"price_range"`
	Reasoning      string                  `json:"reasoning" yaml:"reasoning"`
	Source         PriceSource             `json:"source" yaml:"source"`
}

// NewFallbackPriceEstimate derives an estimate purely from the budget tier.
func NewFallbackPriceEstimate(tier valueobjects.BudgetTier) *PriceEstimate {
	return &PriceEstimate{
		EstimatedPrice: tier.BasePrice(),
		PriceRange:     tier.FallbackRange(),
		Reasoning:      FallbackReasoning,
		Source:         PriceSourceFallback,
	}
}

func (e *PriceEstimate) IsFallback() bool {
	return e.Source == PriceSourceFallback
}
