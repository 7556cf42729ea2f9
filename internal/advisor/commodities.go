package advisor

import (
	"strings"

	"crop-compass/internal/domain"
)

// Common names map to catalog keys so "soybean oil" or "coffee" work in chat.
var commodityAliases = map[string]string{
	"WHEAT":    "WHEAT",
	"CORN":     "CORN",
	"MAIZE":    "CORN",
	"SOYBEANS": "SOYBEANS",
	"SOYBEAN":  "SOYBEANS",
	"SOY":      "SOYBEANS",
	"RICE":     "RICE",
	"OATS":     "OATS",
	"COFFEE":   "COFFEE",
	"SUGAR":    "SUGAR",
	"COTTON":   "COTTON",
	"COCOA":    "COCOA",
	"SOYOIL":   "SOYOIL",
}

// ExtractCommodities scans the user message for mentions of supported
// commodities. Returns deduplicated catalog keys in mention order.
func ExtractCommodities(text string) []string {
	upper := strings.ToUpper(text)
	words := strings.FieldsFunc(upper, func(r rune) bool {
		return !((r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'))
	})

	seen := make(map[string]bool)
	var result []string
	for _, w := range words {
		key, ok := commodityAliases[w]
		if !ok {
			continue
		}
		if _, valid := domain.CommodityCatalog[key]; valid && !seen[key] {
			seen[key] = true
			result = append(result, key)
		}
	}
	return result
}
