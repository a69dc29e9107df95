package entities

import "encoding/json"

const (
	CoreStyleCategory   = "Core Style Elements"
	StylingTipsCategory = "Styling Tips"
	StylingTipType      = "styling_tip"
)

type CoreStyleSection struct {
	Category     string                   `json:"category" yaml:"category"`
	Items        []*ProductRecommendation `json:"items" yaml:"items"`
	Aesthetic    string                   `json:"aesthetic" yaml:"aesthetic"`
	ColorPalette []string                 `json:"color_palette" yaml:"color_palette"`
	Retailers    []string                 `json:"retailers" yaml:"retailers"`
}

type StylingTip struct {
	Type string `json:"type" yaml:"type"`
	Tip  string `json:"tip" yaml:"tip"`
}

type StylingTipsSection struct {
	Category string       `json:"category" yaml:"category"`
	Items    []StylingTip `json:"items" yaml:"items"`
}

// RecommendationResponse is rebuilt for every request and never persisted.
type RecommendationResponse struct {
	RequestID   AnalysisRequestID  `json:"-" yaml:"request_id"`
	Core        CoreStyleSection   `json:"-" yaml:"core"`
	StylingTips StylingTipsSection `json:"-" yaml:"styling_tips"`
}

// MarshalJSON emits {"recommendations": [core, tips]}.
func (r RecommendationResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Recommendations []any `json:"recommendations"`
	}{
		Recommendations: []any{r.Core, r.StylingTips},
	})
}

// MissingItems counts the null slots in the core section.
func (r *RecommendationResponse) MissingItems() int {
	missing := 0
	for _, item := range r.Core.Items {
		if item == nil {
			missing++
		}
	}
	return missing
}
