package usecases

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
	"github.com/vprudente/insta-fashion/internal/logging"
)

type StyleAnalyzer interface {
	Analyze(ctx context.Context, image *valueobjects.ImageData, tier valueobjects.BudgetTier) (*entities.StyleAnalysis, error)
}

type ItemAggregator interface {
	Aggregate(ctx context.Context, piece entities.KeyPiece, styleDescriptor string, tier valueobjects.BudgetTier) *entities.ProductRecommendation
}

type RecommendationUseCase struct {
	analyzer       StyleAnalyzer
	aggregator     ItemAggregator
	retailerIDs    []string
	visionTimeout  time.Duration
	pricingTimeout time.Duration
}

// Zero timeouts leave the calls bounded only by the caller's context.
func NewRecommendationUseCase(
	analyzer StyleAnalyzer,
	aggregator ItemAggregator,
	retailerIDs []string,
	visionTimeout time.Duration,
	pricingTimeout time.Duration,
) *RecommendationUseCase {
	ids := make([]string, len(retailerIDs))
	copy(ids, retailerIDs)

	return &RecommendationUseCase{
		analyzer:       analyzer,
		aggregator:     aggregator,
		retailerIDs:    ids,
		visionTimeout:  visionTimeout,
		pricingTimeout: pricingTimeout,
	}
}

// RecommendationInput carries either a data URI or an already decoded image.
type RecommendationInput struct {
	ImageDataURI string
	Image        *valueobjects.ImageData
	Budget       string
}

func (uc *RecommendationUseCase) Execute(ctx context.Context, input RecommendationInput) (*entities.RecommendationResponse, error) {
	image, err := uc.resolveImage(input)
	if err != nil {
		return nil, err
	}

	request, err := entities.NewAnalysisRequest(image, valueobjects.NewBudgetTier(input.Budget))
	if err != nil {
		return nil, domain.NewInputError("invalid request", err)
	}

	logger := logging.FromContext(ctx).With("analysisId", string(request.ID()))
	ctx = logging.WithContext(ctx, logger)
	tier := request.BudgetTier()

	logger.Info("Starting style analysis",
		"budget", tier.String(),
		"knownBudget", tier.IsKnown(),
		"format", string(image.Format()),
		"imageSize", image.Size())

	analysis, err := uc.analyze(ctx, image, tier)
	if err != nil {
		return nil, err
	}

	items := uc.aggregateAll(ctx, analysis, tier)

	response := &entities.RecommendationResponse{
		RequestID: request.ID(),
		Core: entities.CoreStyleSection{
			Category:     entities.CoreStyleCategory,
			Items:        items,
			Aesthetic:    analysis.OverallAesthetic,
			ColorPalette: analysis.ColorPalette.Combined(),
			Retailers:    uc.RetailerIDs(),
		},
		StylingTips: buildStylingTips(analysis.StylingPatterns),
	}

	logger.Info("Recommendations assembled",
		"keyPieces", len(items),
		"missingItems", response.MissingItems(),
		"stylingTips", len(response.StylingTips.Items),
		"elapsed", time.Since(request.CreatedAt()).String())

	return response, nil
}

func (uc *RecommendationUseCase) RetailerIDs() []string {
	ids := make([]string, len(uc.retailerIDs))
	copy(ids, uc.retailerIDs)
	return ids
}

func (uc *RecommendationUseCase) resolveImage(input RecommendationInput) (*valueobjects.ImageData, error) {
	if input.Image != nil {
		return input.Image, nil
	}
	if strings.TrimSpace(input.ImageDataURI) == "" {
		return nil, domain.NewInputError("image is required", nil)
	}
	image, err := valueobjects.ParseDataURI(input.ImageDataURI)
	if err != nil {
		return nil, domain.NewInputError("image is not a readable picture", err)
	}
	return image, nil
}

func (uc *RecommendationUseCase) analyze(
	ctx context.Context,
	image *valueobjects.ImageData,
	tier valueobjects.BudgetTier,
) (*entities.StyleAnalysis, error) {
	if uc.visionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.visionTimeout)
		defer cancel()
	}

	analysis, err := uc.analyzer.Analyze(ctx, image, tier)
	if err != nil {
		if domain.IsInputError(err) {
			return nil, err
		}
		return nil, domain.NewAnalysisError(err)
	}
	if analysis == nil {
		return nil, domain.NewAnalysisError(fmt.Errorf("analyzer returned no result"))
	}
	return analysis, nil
}

// aggregateAll prices every key piece concurrently. Slot i always belongs to
// key_pieces[i]; a failed branch leaves its slot nil.
func (uc *RecommendationUseCase) aggregateAll(
	ctx context.Context,
	analysis *entities.StyleAnalysis,
	tier valueobjects.BudgetTier,
) []*entities.ProductRecommendation {
	items := make([]*entities.ProductRecommendation, len(analysis.KeyPieces))
	logger := logging.FromContext(ctx)

	var wg sync.WaitGroup
	for i, piece := range analysis.KeyPieces {
		wg.Add(1)
		go func(i int, piece entities.KeyPiece) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Recommendation branch panicked", "index", i, "item", piece.Item, "panic", r)
					items[i] = nil
				}
			}()

			branchCtx := ctx
			if uc.pricingTimeout > 0 {
				var cancel context.CancelFunc
				branchCtx, cancel = context.WithTimeout(ctx, uc.pricingTimeout)
				defer cancel()
			}

			items[i] = uc.aggregator.Aggregate(branchCtx, piece, analysis.OverallAesthetic, tier)
		}(i, piece)
	}
	wg.Wait()

	return items
}

func buildStylingTips(patterns []string) entities.StylingTipsSection {
	tips := make([]entities.StylingTip, 0, len(patterns))
	for _, pattern := range patterns {
		tips = append(tips, entities.StylingTip{
			Type: entities.StylingTipType,
			Tip:  pattern,
		})
	}
	return entities.StylingTipsSection{
		Category: entities.StylingTipsCategory,
		Items:    tips,
	}
}
