package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vprudente/insta-fashion/internal/domain"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

const validAnalysisJSON = `{
  "overall_aesthetic": "minimalist",
  "key_pieces": [
    {"item": "White Tee", "description": "crisp cotton crew neck", "style_elements": "boxy fit", "quality_assessment": "mid-weight cotton"}
  ],
  "color_palette": {"primary": ["white"], "accent": ["black"]},
  "styling_patterns": ["layer with a blazer"],
  "recommended_searches": ["white tee"]
}`

func TestParseStyleAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid document",
			raw:  validAnalysisJSON,
		},
		{
			name: "json code fence is stripped",
			raw:  "```json\n" + validAnalysisJSON + "\n```",
		},
		{
			name: "bare code fence is stripped",
			raw:  "```\n" + validAnalysisJSON + "\n```\n",
		},
		{
			name: "empty primary array is accepted",
			raw:  `{"overall_aesthetic":"boho","key_pieces":[{"item":"Maxi Dress"}],"color_palette":{"primary":[]},"styling_patterns":[],"recommended_searches":[]}`,
		},
		{
			name:    "prose instead of JSON",
			raw:     "The outfit is a minimalist look with a white tee.",
			wantErr: true,
		},
		{
			name:    "prose wrapped around JSON",
			raw:     "Here is the analysis: " + validAnalysisJSON,
			wantErr: true,
		},
		{
			name:    "braces but not JSON",
			raw:     "{this is not json}",
			wantErr: true,
		},
		{
			name:    "missing key_pieces",
			raw:     `{"overall_aesthetic":"minimalist","color_palette":{"primary":["white"]}}`,
			wantErr: true,
		},
		{
			name:    "empty key_pieces",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":[],"color_palette":{"primary":["white"]}}`,
			wantErr: true,
		},
		{
			name:    "null key_pieces",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":null,"color_palette":{"primary":["white"]}}`,
			wantErr: true,
		},
		{
			name:    "missing color_palette.primary",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":[{"item":"White Tee"}],"color_palette":{"accent":["black"]}}`,
			wantErr: true,
		},
		{
			name:    "null color_palette.primary",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":[{"item":"White Tee"}],"color_palette":{"primary":null}}`,
			wantErr: true,
		},
		{
			name:    "primary is a string",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":[{"item":"White Tee"}],"color_palette":{"primary":"white"}}`,
			wantErr: true,
		},
		{
			name:    "missing color_palette",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":[{"item":"White Tee"}]}`,
			wantErr: true,
		},
		{
			name:    "empty overall_aesthetic",
			raw:     `{"overall_aesthetic":"  ","key_pieces":[{"item":"White Tee"}],"color_palette":{"primary":["white"]}}`,
			wantErr: true,
		},
		{
			name:    "key piece with wrong types rejects whole document",
			raw:     `{"overall_aesthetic":"minimalist","key_pieces":[{"item":42}],"color_palette":{"primary":["white"]}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ParseStyleAnalysis(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyleAnalysis() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var schemaErr *domain.SchemaError
				if !errors.As(err, &schemaErr) {
					t.Errorf("Expected SchemaError, got %T", err)
				}
				if analysis != nil {
					t.Errorf("Expected no partial result on error")
				}
				return
			}
			if len(analysis.KeyPieces) == 0 {
				t.Errorf("Expected key pieces")
			}
			if analysis.ColorPalette.Primary == nil {
				t.Errorf("Primary palette should never be nil on success")
			}
		})
	}
}

func TestParseStyleAnalysis_Fields(t *testing.T) {
	analysis, err := ParseStyleAnalysis("```json\n" + validAnalysisJSON + "\n```")
	if err != nil {
		t.Fatalf("ParseStyleAnalysis() error = %v", err)
	}
	if analysis.OverallAesthetic != "minimalist" {
		t.Errorf("OverallAesthetic = %q", analysis.OverallAesthetic)
	}
	if analysis.KeyPieces[0].Item != "White Tee" {
		t.Errorf("KeyPieces[0].Item = %q", analysis.KeyPieces[0].Item)
	}
	if analysis.KeyPieces[0].QualityAssessment != "mid-weight cotton" {
		t.Errorf("KeyPieces[0].QualityAssessment = %q", analysis.KeyPieces[0].QualityAssessment)
	}
	if len(analysis.StylingPatterns) != 1 || analysis.StylingPatterns[0] != "layer with a blazer" {
		t.Errorf("StylingPatterns = %v", analysis.StylingPatterns)
	}
	if len(analysis.ColorPalette.Accent) != 1 || analysis.ColorPalette.Accent[0] != "black" {
		t.Errorf("Accent = %v", analysis.ColorPalette.Accent)
	}
}

func TestVisionAnalysisService_Analyze(t *testing.T) {
	image := createTestImageData(t)

	t.Run("successful analysis", func(t *testing.T) {
		mockAI := &mockVisionAI{text: validAnalysisJSON}
		service := NewVisionAnalysisService(mockAI)

		analysis, err := service.Analyze(context.Background(), image, valueobjects.TierLuxury)
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		if analysis.OverallAesthetic != "minimalist" {
			t.Errorf("Unexpected aesthetic %q", analysis.OverallAesthetic)
		}
		if len(mockAI.requests) != 1 {
			t.Fatalf("Expected exactly one oracle call, got %d", len(mockAI.requests))
		}

		request := mockAI.requests[0]
		if request.Image() != image {
			t.Errorf("Expected the request to carry the input image")
		}
		if !strings.Contains(request.SystemPrompt(), "code fences") {
			t.Errorf("System prompt should forbid code fences")
		}
		if !strings.Contains(request.Prompt(), "luxury") {
			t.Errorf("Prompt should mention the budget tier")
		}
		if request.ResponseMIMEType() != "application/json" {
			t.Errorf("Expected JSON response constraint, got %q", request.ResponseMIMEType())
		}
	})

	t.Run("oracle failure is an OracleError", func(t *testing.T) {
		mockAI := &mockVisionAI{err: errors.New("connection refused")}
		service := NewVisionAnalysisService(mockAI)

		analysis, err := service.Analyze(context.Background(), image, valueobjects.TierMedium)
		if analysis != nil {
			t.Errorf("Expected nil analysis on error")
		}
		var oracleErr *domain.OracleError
		if !errors.As(err, &oracleErr) {
			t.Fatalf("Expected OracleError, got %v", err)
		}
		if len(mockAI.requests) != 1 {
			t.Errorf("Expected a single attempt without retry, got %d", len(mockAI.requests))
		}
	})

	t.Run("prose answer is a SchemaError", func(t *testing.T) {
		mockAI := &mockVisionAI{text: "I think this is a lovely outfit."}
		service := NewVisionAnalysisService(mockAI)

		_, err := service.Analyze(context.Background(), image, valueobjects.TierMedium)
		var schemaErr *domain.SchemaError
		if !errors.As(err, &schemaErr) {
			t.Fatalf("Expected SchemaError, got %v", err)
		}
	})

	t.Run("quota error is recognised", func(t *testing.T) {
		mockAI := &mockVisionAI{err: errors.New("rpc error: code = ResourceExhausted desc = Quota exceeded")}
		service := NewVisionAnalysisService(mockAI)

		_, err := service.Analyze(context.Background(), image, valueobjects.TierMedium)
		var oracleErr *domain.OracleError
		if !errors.As(err, &oracleErr) || !oracleErr.IsQuota() {
			t.Errorf("Expected quota OracleError, got %v", err)
		}
	})

	t.Run("nil image", func(t *testing.T) {
		service := NewVisionAnalysisService(&mockVisionAI{text: validAnalysisJSON})
		if _, err := service.Analyze(context.Background(), nil, valueobjects.TierMedium); !domain.IsInputError(err) {
			t.Errorf("Expected InputError, got %v", err)
		}
	})
}
