package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/repositories"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
	"github.com/vprudente/insta-fashion/internal/logging"
)

// VisionAnalysisService turns one photo into a validated StyleAnalysis.
// It makes a single oracle call and never retries.
type VisionAnalysisService struct {
	visionAI repositories.VisionAIService
}

func NewVisionAnalysisService(visionAI repositories.VisionAIService) *VisionAnalysisService {
	return &VisionAnalysisService{
		visionAI: visionAI,
	}
}

// Analyze fails with *domain.OracleError when the oracle call fails and with
// *domain.SchemaError when the answer is not a valid StyleAnalysis document.
func (s *VisionAnalysisService) Analyze(
	ctx context.Context,
	image *valueobjects.ImageData,
	tier valueobjects.BudgetTier,
) (*entities.StyleAnalysis, error) {
	if image == nil {
		return nil, domain.NewInputError("image is required", nil)
	}

	logger := logging.FromContext(ctx)
	request := entities.NewVisionRequest(visionSystemPrompt, buildVisionPrompt(tier), image)

	start := time.Now()
	result, err := s.visionAI.AnalyzeImage(ctx, request)
	if err != nil {
		logger.Error("vision oracle call failed", "error", err, "elapsed", time.Since(start))
		return nil, domain.NewOracleError("vision analysis", err)
	}
	if result == nil {
		return nil, domain.NewOracleError("vision analysis", fmt.Errorf("empty result"))
	}

	logger.Info("vision oracle answered",
		"model", result.Model(),
		"responseLength", len(result.Text()),
		"elapsed", time.Since(start))

	analysis, err := ParseStyleAnalysis(result.Text())
	if err != nil {
		logger.Warn("vision oracle returned an invalid document", "error", err)
		return nil, err
	}

	logger.Info("style analysis accepted",
		"aesthetic", analysis.OverallAesthetic,
		"keyPieces", len(analysis.KeyPieces))

	return analysis, nil
}

// ParseStyleAnalysis strips code fences, then validates the whole document.
// Any violation rejects the document; nothing is salvaged.
func ParseStyleAnalysis(raw string) (*entities.StyleAnalysis, error) {
	cleaned := stripFences(raw)
	if !strings.HasPrefix(cleaned, "{") || !strings.HasSuffix(cleaned, "}") {
		return nil, domain.NewSchemaError("response is not a single JSON object", nil)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, domain.NewSchemaError("response is not valid JSON", err)
	}

	var aesthetic string
	if err := json.Unmarshal(doc["overall_aesthetic"], &aesthetic); err != nil || strings.TrimSpace(aesthetic) == "" {
		return nil, domain.NewSchemaError("overall_aesthetic must be a non-empty string", nil)
	}

	if !isJSONArray(doc["key_pieces"]) {
		return nil, domain.NewSchemaError("key_pieces must be an array", nil)
	}
	var pieces []json.RawMessage
	if err := json.Unmarshal(doc["key_pieces"], &pieces); err != nil {
		return nil, domain.NewSchemaError("key_pieces must be an array", err)
	}
	if len(pieces) == 0 {
		return nil, domain.NewSchemaError("key_pieces must not be empty", nil)
	}

	var palette map[string]json.RawMessage
	if err := json.Unmarshal(doc["color_palette"], &palette); err != nil || palette == nil {
		return nil, domain.NewSchemaError("color_palette must be an object", err)
	}
	if !isJSONArray(palette["primary"]) {
		return nil, domain.NewSchemaError("color_palette.primary must be an array", nil)
	}

	var analysis entities.StyleAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, domain.NewSchemaError("document fields have unexpected types", err)
	}
	if analysis.ColorPalette.Primary == nil {
		analysis.ColorPalette.Primary = []string{}
	}

	return &analysis, nil
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
