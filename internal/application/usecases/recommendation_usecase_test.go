package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/services"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

const scenarioAnalysis = `{"overall_aesthetic":"minimalist","key_pieces":[{"item":"White Tee","description":"crisp cotton crew neck","style_elements":"boxy fit","quality_assessment":"mid-weight cotton"}],"color_palette":{"primary":["white"],"accent":["black"]},"styling_patterns":["layer with a blazer"],"recommended_searches":["white tee"]}`

// fakeOracle answers both vision and pricing calls.
type fakeOracle struct {
	visionText string
	visionErr  error
	priceText  string
	priceErr   map[string]error

	mu          sync.Mutex
	visionCalls int
	priceCalls  int
}

func (f *fakeOracle) AnalyzeImage(ctx context.Context, request *entities.VisionRequest) (*entities.TextResult, error) {
	f.mu.Lock()
	f.visionCalls++
	f.mu.Unlock()
	if f.visionErr != nil {
		return nil, f.visionErr
	}
	return entities.NewTextResult(f.visionText, "fake-vision"), nil
}

func (f *fakeOracle) GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	f.mu.Lock()
	f.priceCalls++
	f.mu.Unlock()
	for item, err := range f.priceErr {
		if strings.Contains(request.Prompt(), "Item: "+item+"\n") {
			return nil, err
		}
	}
	return entities.NewTextResult(f.priceText, "fake-text"), nil
}

func newPipeline(oracle *fakeOracle) *RecommendationUseCase {
	links := services.NewStoreLinkBuilder(nil)
	return NewRecommendationUseCase(
		services.NewVisionAnalysisService(oracle),
		services.NewProductAggregator(services.NewPricingService(oracle), links),
		links.RetailerIDs(),
		time.Second,
		time.Second,
	)
}

func testDataURI(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	img, err := valueobjects.NewImageData(buf.Bytes(), "image/png")
	require.NoError(t, err)
	return img.ToDataURI()
}

func TestRecommendationUseCase_ScenarioA(t *testing.T) {
	oracle := &fakeOracle{
		visionText: scenarioAnalysis,
		priceText:  `{"estimated_price": 45, "price_range": {"min": 30, "max": 60}, "reasoning": "Quality basic tee."}`,
	}

	response, err := newPipeline(oracle).Execute(context.Background(), RecommendationInput{
		ImageDataURI: testDataURI(t),
		Budget:       "medium",
	})
	require.NoError(t, err)

	require.Len(t, response.Core.Items, 1)
	item := response.Core.Items[0]
	require.NotNil(t, item)
	assert.Equal(t, "White Tee", item.Name)
	assert.True(t, item.PriceRange.Contains(item.Price))
	assert.Equal(t, 45.0, item.Price)
	assert.Len(t, item.ShopLinks, 3)

	assert.Equal(t, entities.CoreStyleCategory, response.Core.Category)
	assert.Equal(t, "minimalist", response.Core.Aesthetic)
	assert.Equal(t, []string{"white", "black"}, response.Core.ColorPalette)
	assert.Equal(t, []string{"amazon", "nordstrom", "asos"}, response.Core.Retailers)

	require.Len(t, response.StylingTips.Items, 1)
	assert.Equal(t, entities.StylingTip{Type: "styling_tip", Tip: "layer with a blazer"}, response.StylingTips.Items[0])
	assert.Equal(t, entities.StylingTipsCategory, response.StylingTips.Category)

	assert.True(t, strings.HasPrefix(string(response.RequestID), "req_"))
	assert.Equal(t, 1, oracle.visionCalls)
	assert.Equal(t, 1, oracle.priceCalls)

	body, err := json.Marshal(response)
	require.NoError(t, err)
	var decoded struct {
		Recommendations []json.RawMessage `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Len(t, decoded.Recommendations, 2)
}

func TestRecommendationUseCase_ScenarioB(t *testing.T) {
	analysis := `{"overall_aesthetic":"smart casual","key_pieces":[{"item":"Navy Blazer"},{"item":"Chinos"}],"color_palette":{"primary":["navy"],"accent":[]},"styling_patterns":[],"recommended_searches":[]}`
	oracle := &fakeOracle{
		visionText: analysis,
		priceText:  `{"estimated_price": 90, "price_range": {"min": 70, "max": 110}, "reasoning": "Mid-range chinos."}`,
		priceErr:   map[string]error{"Navy Blazer": errors.New("upstream 500")},
	}

	response, err := newPipeline(oracle).Execute(context.Background(), RecommendationInput{
		ImageDataURI: testDataURI(t),
		Budget:       "medium",
	})
	require.NoError(t, err)
	require.Len(t, response.Core.Items, 2)

	blazer := response.Core.Items[0]
	require.NotNil(t, blazer)
	assert.Equal(t, "Navy Blazer", blazer.Name)
	assert.Equal(t, 150.0, blazer.Price)
	assert.Equal(t, valueobjects.PriceRange{Min: 120, Max: 180}, blazer.PriceRange)
	assert.Equal(t, entities.FallbackReasoning, blazer.Reasoning)

	chinos := response.Core.Items[1]
	require.NotNil(t, chinos)
	assert.Equal(t, "Chinos", chinos.Name)
	assert.Equal(t, 90.0, chinos.Price)

	assert.Empty(t, response.StylingTips.Items)
	assert.NotNil(t, response.StylingTips.Items)
}

func TestRecommendationUseCase_ScenarioC(t *testing.T) {
	oracle := &fakeOracle{visionText: "This look is effortlessly chic, built around a white tee."}

	response, err := newPipeline(oracle).Execute(context.Background(), RecommendationInput{
		ImageDataURI: testDataURI(t),
		Budget:       "luxury",
	})
	assert.Nil(t, response)

	var analysisErr *domain.AnalysisError
	require.True(t, errors.As(err, &analysisErr), "expected AnalysisError, got %v", err)
	var schemaErr *domain.SchemaError
	assert.True(t, errors.As(err, &schemaErr))
	assert.Zero(t, oracle.priceCalls)
}

func TestRecommendationUseCase_VisionOracleFailure(t *testing.T) {
	oracle := &fakeOracle{visionErr: errors.New("Quota exceeded for gemini-2.5-flash")}

	_, err := newPipeline(oracle).Execute(context.Background(), RecommendationInput{ImageDataURI: testDataURI(t)})

	var oracleErr *domain.OracleError
	require.True(t, errors.As(err, &oracleErr))
	assert.True(t, oracleErr.IsQuota())
	var analysisErr *domain.AnalysisError
	assert.True(t, errors.As(err, &analysisErr))
}

func TestRecommendationUseCase_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input RecommendationInput
	}{
		{name: "missing image", input: RecommendationInput{Budget: "medium"}},
		{name: "blank image", input: RecommendationInput{ImageDataURI: "   "}},
		{name: "not base64", input: RecommendationInput{ImageDataURI: "data:image/png;base64,@@@"}},
		{name: "not an image", input: RecommendationInput{ImageDataURI: "data:text/plain;base64,aGVsbG8gd29ybGQ="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{visionText: scenarioAnalysis}
			_, err := newPipeline(oracle).Execute(context.Background(), tt.input)
			assert.True(t, domain.IsInputError(err), "expected InputError, got %v", err)
			assert.Zero(t, oracle.visionCalls)
		})
	}
}

// scriptedAggregator fails or panics for selected items and otherwise echoes the item name.
type scriptedAggregator struct {
	nilFor   map[string]bool
	panicFor map[string]bool
	delay    map[string]time.Duration
}

func (a *scriptedAggregator) Aggregate(ctx context.Context, piece entities.KeyPiece, styleDescriptor string, tier valueobjects.BudgetTier) *entities.ProductRecommendation {
	if d, ok := a.delay[piece.Item]; ok {
		time.Sleep(d)
	}
	if a.panicFor[piece.Item] {
		panic("boom: " + piece.Item)
	}
	if a.nilFor[piece.Item] {
		return nil
	}
	return &entities.ProductRecommendation{Name: piece.Item}
}

type staticAnalyzer struct {
	analysis *entities.StyleAnalysis
}

func (s staticAnalyzer) Analyze(ctx context.Context, image *valueobjects.ImageData, tier valueobjects.BudgetTier) (*entities.StyleAnalysis, error) {
	return s.analysis, nil
}

func TestRecommendationUseCase_FanOutIsolation(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for failing := 0; failing < n; failing++ {
			t.Run(fmt.Sprintf("n=%d/fail=%d", n, failing), func(t *testing.T) {
				pieces := make([]entities.KeyPiece, n)
				for i := range pieces {
					pieces[i] = entities.KeyPiece{Item: fmt.Sprintf("item-%d", i)}
				}
				failingItem := pieces[failing].Item
				aggregator := &scriptedAggregator{
					panicFor: map[string]bool{failingItem: failing%2 == 0},
					nilFor:   map[string]bool{failingItem: failing%2 == 1},
					// earlier slots finish last so completion order differs from input order
					delay: map[string]time.Duration{pieces[0].Item: 10 * time.Millisecond},
				}

				uc := NewRecommendationUseCase(
					staticAnalyzer{analysis: &entities.StyleAnalysis{OverallAesthetic: "eclectic", KeyPieces: pieces}},
					aggregator,
					[]string{"amazon"},
					0,
					0,
				)

				response, err := uc.Execute(context.Background(), RecommendationInput{ImageDataURI: testDataURI(t)})
				require.NoError(t, err)
				require.Len(t, response.Core.Items, n)

				for i, item := range response.Core.Items {
					if i == failing {
						assert.Nil(t, item, "slot %d should be null", i)
						continue
					}
					require.NotNil(t, item, "slot %d should be filled", i)
					assert.Equal(t, pieces[i].Item, item.Name)
				}
				assert.Equal(t, 1, response.MissingItems())
			})
		}
	}
}

func TestRecommendationUseCase_PricingTimeout(t *testing.T) {
	oracle := &blockingTextOracle{fakeOracle: fakeOracle{visionText: scenarioAnalysis}}
	links := services.NewStoreLinkBuilder(nil)
	uc := NewRecommendationUseCase(
		services.NewVisionAnalysisService(oracle),
		services.NewProductAggregator(services.NewPricingService(oracle), links),
		links.RetailerIDs(),
		time.Second,
		20*time.Millisecond,
	)

	start := time.Now()
	response, err := uc.Execute(context.Background(), RecommendationInput{ImageDataURI: testDataURI(t), Budget: "budget"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)

	require.Len(t, response.Core.Items, 1)
	require.NotNil(t, response.Core.Items[0])
	assert.Equal(t, 50.0, response.Core.Items[0].Price)
	assert.Equal(t, entities.PriceSourceFallback, response.Core.Items[0].PriceSource)
}

type blockingTextOracle struct {
	fakeOracle
}

func (b *blockingTextOracle) GenerateText(ctx context.Context, request *entities.TextRequest) (*entities.TextResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
