package domain

// CommodityInfo describes one tracked agricultural commodity.
type CommodityInfo struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	BasePrice float64 `json:"base_price"`
}

// CommodityCatalog maps commodity keys to their display metadata and the
// reference base price used by the mock data generator.
var CommodityCatalog = map[string]CommodityInfo{
	"WHEAT":    {Key: "WHEAT", Name: "Wheat", Unit: "USD/bushel", BasePrice: 6.20},
	"CORN":     {Key: "CORN", Name: "Corn", Unit: "USD/bushel", BasePrice: 4.75},
	"SOYBEANS": {Key: "SOYBEANS", Name: "Soybeans", Unit: "USD/bushel", BasePrice: 12.40},
	"RICE":     {Key: "RICE", Name: "Rough Rice", Unit: "USD/cwt", BasePrice: 16.80},
	"OATS":     {Key: "OATS", Name: "Oats", Unit: "USD/bushel", BasePrice: 3.55},
	"COFFEE":   {Key: "COFFEE", Name: "Coffee Arabica", Unit: "USD/lb", BasePrice: 1.85},
	"SUGAR":    {Key: "SUGAR", Name: "Sugar No.11", Unit: "USD/lb", BasePrice: 0.21},
	"COTTON":   {Key: "COTTON", Name: "Cotton", Unit: "USD/lb", BasePrice: 0.84},
	"COCOA":    {Key: "COCOA", Name: "Cocoa", Unit: "USD/tonne", BasePrice: 3150},
	"SOYOIL":   {Key: "SOYOIL", Name: "Soybean Oil", Unit: "USD/lb", BasePrice: 0.47},
}

// SupportedCommodities lists tracked commodity keys in display order.
var SupportedCommodities = []string{
	"WHEAT", "CORN", "SOYBEANS", "RICE", "OATS",
	"COFFEE", "SUGAR", "COTTON", "COCOA", "SOYOIL",
}
