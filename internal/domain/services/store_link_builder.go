package services

import (
	"net/url"
	"strings"

	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

// StoreLinkBuilder maps a search term and price band to retailer search URLs.
// It performs no I/O and is safe for concurrent use.
type StoreLinkBuilder struct {
	retailers []valueobjects.Retailer
}

func NewStoreLinkBuilder(retailers []valueobjects.Retailer) *StoreLinkBuilder {
	if len(retailers) == 0 {
		retailers = valueobjects.DefaultRetailers()
	}
	copied := make([]valueobjects.Retailer, len(retailers))
	copy(copied, retailers)

	return &StoreLinkBuilder{retailers: copied}
}

func (b *StoreLinkBuilder) BuildLinks(searchTerm string, priceRange valueobjects.PriceRange) map[string]string {
	links := make(map[string]string, len(b.retailers))
	term := strings.TrimSpace(searchTerm)

	for _, retailer := range b.retailers {
		query := url.Values{}
		query.Set(retailer.KeywordParam, term)
		query.Set(retailer.PriceParam, retailer.PriceFilter(priceRange))

		// url.Values encodes spaces as '+'; a literal '+' in the term is already %2B
		encoded := strings.ReplaceAll(query.Encode(), "+", "%20")
		links[retailer.ID] = retailer.SearchURL + "?" + encoded
	}

	return links
}

func (b *StoreLinkBuilder) RetailerIDs() []string {
	ids := make([]string, 0, len(b.retailers))
	for _, retailer := range b.retailers {
		ids = append(ids, retailer.ID)
	}
	return ids
}

func (b *StoreLinkBuilder) Retailers() []valueobjects.Retailer {
	copied := make([]valueobjects.Retailer, len(b.retailers))
	copy(copied, b.retailers)
	return copied
}
