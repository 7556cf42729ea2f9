package advisor

import (
	"fmt"
	"strings"
	"time"

	"crop-compass/internal/domain"
)

const advisoryPhilosophy = `You are a commodity market advisor bot for agricultural buyers and producers. Your role is to interpret price data and model forecasts, NOT to generate forecasts yourself.

Confidence Framework:
- Model confidence above 0.80: treat the forecast as a reasonable planning baseline.
- Confidence 0.60-0.80: usable for direction, not for exact levels.
- Fallback model output (confidence 0.60): history was too thin, say so and hedge.

Rules:
- Always reference specific prices and forecasts when making observations.
- Never fabricate data. If data is unavailable, say so.
- Express uncertainty when the confidence interval is wide relative to the price.
- Mention the forecasting model and its confidence when discussing any outlook.
- Keep responses concise and actionable. You are talking via Telegram.
- Prices are monthly averages, not spot quotes. Do not imply intraday precision.
- When asked about a commodity, summarize: latest price, the near-term forecast, and your interpretation.
- If points in the history are marked anomalous, note that the data quality is reduced.`

func BuildSystemPrompt(marketContext string) string {
	var sb strings.Builder
	sb.WriteString(advisoryPhilosophy)
	sb.WriteString("\n\n--- LIVE MARKET DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(marketContext)
	return sb.String()
}

// CommodityForecast pairs a forecast run with the commodity it covers.
type CommodityForecast struct {
	Commodity string
	Result    domain.ForecastResult
}

func FormatMarketContext(prices []*domain.PricePoint, forecasts []CommodityForecast) string {
	var sb strings.Builder

	if len(prices) > 0 {
		sb.WriteString("\nLatest Monthly Prices:\n")
		for _, p := range prices {
			sb.WriteString(fmt.Sprintf("  %s %04d-%02d: %.2f %s\n",
				p.Commodity, p.Year, p.Month, p.Price, p.Unit))
		}
	}

	if len(forecasts) > 0 {
		sb.WriteString("\nModel Forecasts:\n")
		for _, f := range forecasts {
			sb.WriteString(fmt.Sprintf("  %s (%s, confidence %.2f):\n",
				f.Commodity, f.Result.Model, f.Result.Confidence))
			for _, p := range f.Result.Predictions {
				sb.WriteString(fmt.Sprintf("    %04d-%02d: %.2f", p.Year, p.Month, p.Price))
				if p.ConfidenceInterval != nil {
					sb.WriteString(fmt.Sprintf(" [%.2f, %.2f]",
						p.ConfidenceInterval.Lower, p.ConfidenceInterval.Upper))
				}
				sb.WriteString("\n")
			}
		}
	}

	if sb.Len() == 0 {
		return "No market data currently available."
	}
	return sb.String()
}
