package entities

import "github.com/vprudente/insta-fashion/internal/domain/valueobjects"

// ProductRecommendation is the shoppable record for one key piece.
// A nil *ProductRecommendation means the item could not be aggregated.
type ProductRecommendation struct {
	Name        string                  `json:"name" yaml:"name"`
	Price       float64                 `json:"price" yaml:"price"`
	PriceRange  valueobjects.PriceRange `json:"price_range" yaml:"price_range"`
	Reasoning   string                  `json:"reasoning" yaml:"reasoning"`
	PriceSource PriceSource             `json:"price_source" yaml:"price_source"`
	Description string                  `json:"description" yaml:"description"`
	StyleMatch  string                  `json:"style_match" yaml:"style_match"`
	Quality     string                  `json:"quality_assessment,omitempty" yaml:"quality_assessment,omitempty"`
	ShopLinks   map[string]string       `json:"shop_links" yaml:"shop_links"`
}
