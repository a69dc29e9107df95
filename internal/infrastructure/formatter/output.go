package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/vprudente/insta-fashion/internal/domain/entities"
	"github.com/vprudente/insta-fashion/internal/domain/valueobjects"
)

// DisplayResults formats and writes the recommendations in the requested format.
func DisplayResults(w io.Writer, response *entities.RecommendationResponse, format string) error {
	switch format {
	case "json":
		return displayJSON(w, response)
	case "yaml":
		return displayYAML(w, response)
	case "human", "":
		displayHuman(w, response)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want human, json or yaml)", format)
	}
}

func displayJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, response *entities.RecommendationResponse) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)

	core := response.Core

	fmt.Fprintln(w)
	cyan.Fprintf(w, "👗 AESTHETIC: %s\n", core.Aesthetic)
	if len(core.ColorPalette) > 0 {
		fmt.Fprintf(w, "   Palette: %s\n", strings.Join(core.ColorPalette, ", "))
	}
	fmt.Fprintln(w)

	green.Fprintf(w, "🛍  %s:\n", strings.ToUpper(core.Category))
	for i, item := range core.Items {
		if item == nil {
			fmt.Fprintf(w, "   %d. %s\n\n", i+1, color.RedString("(could not be priced)"))
			continue
		}

		fmt.Fprintf(w, "   %d. %s  %s\n", i+1, item.Name, priceLabel(item))
		if item.Description != "" {
			fmt.Fprintf(w, "      %s\n", item.Description)
		}
		if item.StyleMatch != "" {
			fmt.Fprintf(w, "      Style: %s\n", item.StyleMatch)
		}
		if item.Reasoning != "" {
			fmt.Fprintf(w, "      Why: %s\n", color.HiBlackString(item.Reasoning))
		}
		for _, retailer := range sortedKeys(item.ShopLinks) {
			fmt.Fprintf(w, "      %-10s %s\n", retailer+":", color.CyanString(item.ShopLinks[retailer]))
		}
		fmt.Fprintln(w)
	}

	if len(response.StylingTips.Items) > 0 {
		yellow.Fprintf(w, "💡 %s:\n", strings.ToUpper(response.StylingTips.Category))
		for _, tip := range response.StylingTips.Items {
			fmt.Fprintf(w, "   • %s\n", tip.Tip)
		}
		fmt.Fprintln(w)
	}

	if missing := response.MissingItems(); missing > 0 {
		magenta.Fprintf(w, "⚠️  %d of %d items could not be aggregated\n\n", missing, len(core.Items))
	}

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func priceLabel(item *entities.ProductRecommendation) string {
	label := fmt.Sprintf("$%.2f ($%.0f-$%.0f)", item.Price, item.PriceRange.Min, item.PriceRange.Max)
	if item.PriceSource == entities.PriceSourceFallback {
		return color.YellowString(label + " est.")
	}
	return color.GreenString(label)
}

// DisplayRetailers lists the configured retailer set.
func DisplayRetailers(w io.Writer, retailers []valueobjects.Retailer, format string) error {
	switch format {
	case "json":
		return displayJSON(w, retailers)
	case "yaml":
		return displayYAML(w, map[string]any{"retailers": retailers})
	case "human", "":
		bold := color.New(color.Bold)
		for _, r := range retailers {
			bold.Fprintf(w, "%-12s", r.ID)
			fmt.Fprintf(w, " %-12s %s (%s=, %s=%s)\n", r.Name, r.SearchURL, r.KeywordParam, r.PriceParam, r.PriceFormat)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want human, json or yaml)", format)
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
