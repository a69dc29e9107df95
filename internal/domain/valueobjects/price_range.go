package valueobjects

import "fmt"

type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func NewPriceRange(min, max float64) (PriceRange, error) {
	if min < 0 || max < 0 {
		return PriceRange{}, fmt.Errorf("price bounds must be non-negative, got %v-%v", min, max)
	}
	if min > max {
		min, max = max, min
	}
	return PriceRange{Min: min, Max: max}, nil
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Clamp pulls price into [Min, Max].
func (r PriceRange) Clamp(price float64) float64 {
	if price < r.Min {
		return r.Min
	}
	if price > r.Max {
		return r.Max
	}
	return price
}
