package entities

import (
	"encoding/json"
	"testing"

	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

func TestRecommendationResponseJSONShape(t *testing.T) {
	response := &RecommendationResponse{
		RequestID: "req_test",
		Core: CoreStyleSection{
			Category: CoreStyleCategory,
			Items: []*ProductRecommendation{
				{
					Name:       "White Tee",
					Price:      150,
					PriceRange: valueobjects.PriceRange{Min: 120, Max: 180},
					ShopLinks:  map[string]string{"amazon": "https://www.amazon.com/s?k=White%20Tee"},
				},
				nil,
			},
			Aesthetic:    "minimalist",
			ColorPalette: []string{"white", "black"},
			Retailers:    []string{"amazon"},
		},
		StylingTips: StylingTipsSection{
			Category: StylingTipsCategory,
			Items:    []StylingTip{{Type: StylingTipType, Tip: "layer with a blazer"}},
		},
	}

	jsonData, err := json.Marshal(response)
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %v", err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(jsonData, &parsed); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	sections, ok := parsed["recommendations"].([]any)
	if !ok {
		t.Fatalf("Expected recommendations array, got %T", parsed["recommendations"])
	}
	if len(sections) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections))
	}

	core := sections[0].(map[string]any)
	if core["category"] != CoreStyleCategory {
		t.Errorf("Expected first section to be %q, got %v", CoreStyleCategory, core["category"])
	}
	items := core["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("Expected 2 core items, got %d", len(items))
	}
	if items[1] != nil {
		t.Errorf("Expected null in slot 1, got %v", items[1])
	}

	tips := sections[1].(map[string]any)
	if tips["category"] != StylingTipsCategory {
		t.Errorf("Expected second section to be %q, got %v", StylingTipsCategory, tips["category"])
	}

	if _, leaked := parsed["RequestID"]; leaked {
		t.Errorf("request id should not be part of the JSON body")
	}

	if response.MissingItems() != 1 {
		t.Errorf("MissingItems() = %d, want 1", response.MissingItems())
	}
}

func TestColorPalette_Combined(t *testing.T) {
	palette := ColorPalette{Primary: []string{"white", "navy"}, Accent: []string{"black"}}
	got := palette.Combined()
	want := []string{"white", "navy", "black"}
	if len(got) != len(want) {
		t.Fatalf("Combined() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Combined()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewFallbackPriceEstimate(t *testing.T) {
	estimate := NewFallbackPriceEstimate(valueobjects.TierMedium)
	if estimate.EstimatedPrice != 150 {
		t.Errorf("EstimatedPrice = %v, want 150", estimate.EstimatedPrice)
	}
	if estimate.PriceRange.Min != 120 || estimate.PriceRange.Max != 180 {
		t.Errorf("PriceRange = %v, want 120-180", estimate.PriceRange)
	}
	if estimate.Reasoning != FallbackReasoning {
		t.Errorf("Reasoning = %q, want the fallback reasoning", estimate.Reasoning)
	}
	if !estimate.IsFallback() {
		t.Errorf("IsFallback() should be true")
	}
}

func TestNewAnalysisRequest(t *testing.T) {
	if _, err := NewAnalysisRequest(nil, valueobjects.TierBudget); err == nil {
		t.Errorf("Expected error for nil image")
	}
}
