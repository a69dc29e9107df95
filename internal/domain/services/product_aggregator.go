package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
	"github.com/vprudente/insta-fashion/internal/logging"
)

type PriceEstimator interface {
	Estimate(ctx context.Context, itemName string, styleDescriptor string, tier valueobjects.BudgetTier) *entities.PriceEstimate
}

type LinkBuilder interface {
	BuildLinks(searchTerm string, priceRange valueobjects.PriceRange) map[string]string
}

// ProductAggregator builds the recommendation record for one key piece.
// It is the failure isolation unit of the fan-out: a broken item yields nil.
type ProductAggregator struct {
	pricing PriceEstimator
	links   LinkBuilder
}

func NewProductAggregator(pricing PriceEstimator, links LinkBuilder) *ProductAggregator {
	return &ProductAggregator{
		pricing: pricing,
		links:   links,
	}
}

// Aggregate returns nil, after logging the cause, when the item cannot be aggregated.
func (a *ProductAggregator) Aggregate(
	ctx context.Context,
	piece entities.KeyPiece,
	styleDescriptor string,
	tier valueobjects.BudgetTier,
) (recommendation *entities.ProductRecommendation) {
	logger := logging.FromContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("product aggregation panicked",
				"item", piece.Item,
				"error", domain.NewAggregationError(piece.Item, fmt.Errorf("panic: %v", r)))
			recommendation = nil
		}
	}()

	recommendation, err := a.aggregate(ctx, piece, styleDescriptor, tier)
	if err != nil {
		logger.Error("product aggregation failed", "item", piece.Item, "error", err)
		return nil
	}
	return recommendation
}

func (a *ProductAggregator) aggregate(
	ctx context.Context,
	piece entities.KeyPiece,
	styleDescriptor string,
	tier valueobjects.BudgetTier,
) (*entities.ProductRecommendation, error) {
	name := strings.TrimSpace(piece.Item)
	if name == "" {
		return nil, domain.NewAggregationError(piece.Item, fmt.Errorf("key piece has no item name"))
	}

	estimate := a.pricing.Estimate(ctx, name, styleDescriptor, tier)
	if estimate == nil {
		return nil, domain.NewAggregationError(name, fmt.Errorf("no price estimate"))
	}

	styleMatch := strings.TrimSpace(piece.StyleElements)
	if styleMatch == "" {
		styleMatch = styleDescriptor
	}

	return &entities.ProductRecommendation{
		Name:        name,
		Price:       estimate.EstimatedPrice,
		PriceRange:  estimate.PriceRange,
		Reasoning:   estimate.Reasoning,
		PriceSource: estimate.Source,
		Description: piece.Description,
		StyleMatch:  styleMatch,
		Quality:     piece.QualityAssessment,
		ShopLinks:   a.links.BuildLinks(name, estimate.PriceRange),
	}, nil
}
