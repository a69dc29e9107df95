package entities

// StyleAnalysis is the validated document extracted from one photo.
// It is built once per request and never modified afterwards.
type StyleAnalysis struct {
	OverallAesthetic    string       `json:"overall_aesthetic" yaml:"overall_aesthetic"`
	KeyPieces           []KeyPiece   `json:"key_pieces" yaml:"key_pieces"`
	ColorPalette        ColorPalette `json:"color_palette" yaml:"color_palette"`
	StylingPatterns     []string     `json:"styling_patterns" yaml:"styling_patterns"`
	RecommendedSearches []string     `json:"recommended_searches" yaml:"recommended_searches"`
}

// KeyPiece is one distinct garment identified in the photo.
type KeyPiece struct {
	Item              string `json:"item" yaml:"item"`
	Description       string `json:"description" yaml:"description"`
	StyleElements     string `json:"style_elements" yaml:"style_elements"`
	QualityAssessment string `json:"quality_assessment" yaml:"quality_assessment"`
}

type ColorPalette struct {
	Primary []string `json:"primary" yaml:"primary"`
	Accent  []string `json:"accent" yaml:"accent"`
}

// Combined is primary followed by accent.
func (p ColorPalette) Combined() []string {
	out := make([]string, 0, len(p.Primary)+len(p.Accent))
	out = append(out, p.Primary...)
	out = append(out, p.Accent...)
	return out
}
