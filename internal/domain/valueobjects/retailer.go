package valueobjects

import (
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type PriceFormat string

const (
	// PriceFormatCents renders bounds as integer cents, e.g. 12000-18000.
	PriceFormatCents PriceFormat = "cents"
	// PriceFormatPlain renders bounds as they are, e.g. 120-180.
	PriceFormatPlain PriceFormat = "plain"
)

// Retailer describes how one store's search page takes a keyword and a price band.
type Retailer struct {
	ID           string      `yaml:"id" json:"id"`
	Name         string      `yaml:"name" json:"name"`
	SearchURL    string      `yaml:"search_url" json:"search_url"`
	KeywordParam string      `yaml:"keyword_param" json:"keyword_param"`
	PriceParam   string      `yaml:"price_param" json:"price_param"`
	PricePrefix  string      `yaml:"price_prefix,omitempty" json:"price_prefix,omitempty"`
	PriceFormat  PriceFormat `yaml:"price_format" json:"price_format"`
	Separator    string      `yaml:"separator,omitempty" json:"separator,omitempty"`
}

func (r Retailer) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("retailer id is required")
	}
	if r.KeywordParam == "" || r.PriceParam == "" {
		return fmt.Errorf("retailer %s: keyword_param and price_param are required", r.ID)
	}
	if r.KeywordParam == r.PriceParam {
		return fmt.Errorf("retailer %s: keyword_param and price_param must differ", r.ID)
	}
	u, err := url.Parse(r.SearchURL)
	if err != nil {
		return fmt.Errorf("retailer %s: invalid search_url: %w", r.ID, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("retailer %s: search_url must be http(s), got %q", r.ID, r.SearchURL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("retailer %s: search_url must not carry a query or fragment", r.ID)
	}
	switch r.PriceFormat {
	case PriceFormatCents, PriceFormatPlain:
	default:
		return fmt.Errorf("retailer %s: unknown price_format %q", r.ID, r.PriceFormat)
	}
	return nil
}

// PriceFilter renders the price band in this retailer's filter syntax.
func (r Retailer) PriceFilter(priceRange PriceRange) string {
	sep := r.Separator
	if sep == "" {
		sep = "-"
	}
	return r.PricePrefix + r.formatBound(priceRange.Min) + sep + r.formatBound(priceRange.Max)
}

func (r Retailer) formatBound(v float64) string {
	if r.PriceFormat == PriceFormatCents {
		return strconv.FormatInt(int64(math.Round(v*100)), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DefaultRetailers is the built-in retailer set used when no file is configured.
func DefaultRetailers() []Retailer {
	return []Retailer{
		{
			ID:           "amazon",
			Name:         "Amazon",
			SearchURL:    "https://www.amazon.com/s",
			KeywordParam: "k",
			PriceParam:   "rh",
			PricePrefix:  "p_36:",
			PriceFormat:  PriceFormatCents,
			Separator:    "-",
		},
		{
			ID:           "nordstrom",
			Name:         "Nordstrom",
			SearchURL:    "https://www.nordstrom.com/sr",
			KeywordParam: "keyword",
			PriceParam:   "price",
			PriceFormat:  PriceFormatPlain,
		},
		{
			ID:           "asos",
			Name:         "ASOS",
			SearchURL:    "https://www.asos.com/us/search/",
			KeywordParam: "q",
			PriceParam:   "currentpricerange",
			PriceFormat:  PriceFormatPlain,
		},
	}
}

type retailerFile struct {
	Retailers []Retailer `yaml:"retailers"`
}

// LoadRetailers reads a YAML retailer set. Every entry is validated and ids must be unique.
func LoadRetailers(path string) ([]Retailer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read retailers file: %w", err)
	}
	return ParseRetailers(raw)
}

func ParseRetailers(raw []byte) ([]Retailer, error) {
	var file retailerFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse retailers yaml: %w", err)
	}
	if len(file.Retailers) == 0 {
		return nil, fmt.Errorf("retailers file defines no retailers")
	}

	seen := make(map[string]struct{}, len(file.Retailers))
	for _, r := range file.Retailers {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate retailer id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return file.Retailers, nil
}
