package services

import (
	"fmt"
	"strings"

	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

const visionSystemPrompt = `You are a fashion stylist and product analyst. You answer with exactly one JSON object and nothing else.
Never wrap the JSON in markdown code fences. Never add prose, comments or explanations before or after the object.`

const pricingSystemPrompt = `You are a fashion retail pricing analyst. You answer with exactly one JSON object and nothing else.
Never wrap the JSON in markdown code fences. Never add prose before or after the object.`

func buildVisionPrompt(tier valueobjects.BudgetTier) string {
	var sb strings.Builder

	sb.WriteString("Analyze the outfit in this photo so the look can be recreated by shopping for it.\n")
	sb.WriteString("The shopper's budget tier is: " + tier.Describe() + ".\n")
	sb.WriteString("Identify every distinct garment or accessory that defines the look as a key piece.\n\n")

	sb.WriteString("Respond with a JSON object with exactly this structure:\n")
	sb.WriteString(`{
  "overall_aesthetic": "short description of the overall style",
  "key_pieces": [
    {
      "item": "concise shoppable name, e.g. 'Oversized Wool Blazer'",
      "description": "what the piece looks like",
      "style_elements": "cut, fabric, details that define it",
      "quality_assessment": "perceived quality level and construction"
    }
  ],
  "color_palette": {
    "primary": ["main colors"],
    "accent": ["accent colors"]
  },
  "styling_patterns": ["how the pieces are combined and worn"],
  "recommended_searches": ["search phrases a shopper could use"]
}`)
	sb.WriteString("\n\nRules:\n")
	sb.WriteString("1. key_pieces must contain at least one entry.\n")
	sb.WriteString("2. color_palette.primary must always be present as an array.\n")
	sb.WriteString("3. The first character of the response must be '{' and the last must be '}'.\n")

	return sb.String()
}

func buildPricingPrompt(itemName, styleDescriptor string, tier valueobjects.BudgetTier) string {
	return fmt.Sprintf(`Estimate the typical retail price in USD of the following fashion item.

Item: %s
Style: %s
Budget tier: %s

Respond with only a JSON object with this structure:
{
  "estimated_price": number,
  "price_range": {"min": number, "max": number},
  "reasoning": "one or two sentences explaining the estimate"
}`, itemName, styleDescriptor, tier.Describe())
}
