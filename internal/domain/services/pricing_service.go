package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/repositories"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
	"github.com/vprudente/insta-fashion/internal/logging"
)

// PricingService estimates a price band per item. Estimate never fails:
// every oracle or parse failure turns into the budget tier fallback.
type PricingService struct {
	textAI repositories.TextAIService
}

// NewPricingService accepts a nil textAI, in which case every estimate is a fallback.
func NewPricingService(textAI repositories.TextAIService) *PricingService {
	return &PricingService{
		textAI: textAI,
	}
}

func (s *PricingService) Estimate(
	ctx context.Context,
	itemName string,
	styleDescriptor string,
	tier valueobjects.BudgetTier,
) *entities.PriceEstimate {
	estimate, err := s.estimate(ctx, itemName, styleDescriptor, tier)
	if err != nil {
		logging.FromContext(ctx).Warn("price estimate fell back to budget tier",
			"item", itemName,
			"tier", tier.String(),
			"error", err)
		return entities.NewFallbackPriceEstimate(tier)
	}
	return estimate
}

func (s *PricingService) estimate(
	ctx context.Context,
	itemName string,
	styleDescriptor string,
	tier valueobjects.BudgetTier,
) (*entities.PriceEstimate, error) {
	if s.textAI == nil {
		return nil, domain.NewOracleError("price estimate", fmt.Errorf("no text oracle configured"))
	}

	request := entities.NewTextRequest(pricingSystemPrompt, buildPricingPrompt(itemName, styleDescriptor, tier), "")
	result, err := s.textAI.GenerateText(ctx, request)
	if err != nil {
		return nil, domain.NewOracleError("price estimate", err)
	}
	if result == nil {
		return nil, domain.NewOracleError("price estimate", fmt.Errorf("empty result"))
	}

	return ParsePriceEstimate(result.Text())
}

type rawPriceEstimate struct {
	EstimatedPrice *float64 `json:"estimated_price"`
	PriceRange     *struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"price_range"`
	Reasoning string `json:"reasoning"`
}

// ParsePriceEstimate parses and normalises an oracle price answer: bounds are
// reordered when swapped and the estimate is clamped into the band.
func ParsePriceEstimate(raw string) (*entities.PriceEstimate, error) {
	cleaned := stripFences(raw)
	if !strings.HasPrefix(cleaned, "{") || !strings.HasSuffix(cleaned, "}") {
		return nil, domain.NewSchemaError("price response is not a single JSON object", nil)
	}

	var parsed rawPriceEstimate
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, domain.NewSchemaError("price response is not valid JSON", err)
	}
	if parsed.EstimatedPrice == nil || parsed.PriceRange == nil ||
		parsed.PriceRange.Min == nil || parsed.PriceRange.Max == nil {
		return nil, domain.NewSchemaError("estimated_price and price_range.{min,max} are required", nil)
	}

	priceRange, err := valueobjects.NewPriceRange(*parsed.PriceRange.Min, *parsed.PriceRange.Max)
	if err != nil {
		return nil, domain.NewSchemaError("price_range is invalid", err)
	}
	if *parsed.EstimatedPrice <= 0 || priceRange.Max <= 0 {
		return nil, domain.NewSchemaError("prices must be positive", nil)
	}

	reasoning := strings.TrimSpace(parsed.Reasoning)
	if reasoning == "" {
		reasoning = "Estimated by the pricing model."
	}

	return &entities.PriceEstimate{
		EstimatedPrice: priceRange.Clamp(*parsed.EstimatedPrice),
		PriceRange:     priceRange,
		Reasoning:      reasoning,
		Source:         entities.PriceSourceOracle,
	}, nil
}
