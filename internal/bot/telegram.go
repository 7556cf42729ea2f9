package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"crop-compass/internal/domain"
	"crop-compass/internal/forecast"
	"crop-compass/internal/service"

	tele "gopkg.in/telebot.v3"
)

// Advisor answers free-form questions with live market context. Optional.
type Advisor interface {
	Ask(ctx context.Context, chatID int64, userMessage string) (string, error)
}

func StartTelegramBot(priceService *service.PriceService, forecaster *forecast.Service, adv Advisor) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		commodity, err := commodityArg(c)
		if err != nil {
			return c.Send(err.Error())
		}
		point, err := priceService.GetLatest(context.Background(), commodity)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %v", commodity, err))
		}
		return c.Send(formatPrice(point))
	})

	b.Handle("/forecast", func(c tele.Context) error {
		commodity, err := commodityArg(c)
		if err != nil {
			return c.Send(err.Error())
		}
		history, err := priceService.GetHistory(context.Background(), commodity, 0)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching history for %s: %v", commodity, err))
		}
		result := forecaster.GeneratePredictions(context.Background(), history, 3, domain.ModelEnsemble)
		return c.Send(formatForecast(commodity, result))
	})

	b.Handle("/outlook", func(c tele.Context) error {
		commodity, err := commodityArg(c)
		if err != nil {
			return c.Send(err.Error())
		}
		summary, _, err := priceService.GetSummary(context.Background(), commodity, 12)
		if err != nil {
			return c.Send(fmt.Sprintf("Error fetching summary for %s: %v", commodity, err))
		}
		info := domain.CommodityCatalog[commodity]
		msg := fmt.Sprintf(
			"%s 12-month outlook\nMean: %.2f %s\nRange: %.2f - %.2f\n12m Change: %+.1f%%",
			info.Name, summary.Mean, info.Unit, summary.Min, summary.Max, summary.ChangePct,
		)
		return c.Send(msg)
	})

	b.Handle("/ask", func(c tele.Context) error {
		if adv == nil {
			return c.Send("Advisor is not configured")
		}
		question := strings.TrimSpace(strings.TrimPrefix(c.Text(), "/ask"))
		if question == "" {
			return c.Send("Usage: /ask <question about the markets>")
		}
		reply, err := adv.Ask(context.Background(), c.Chat().ID, question)
		if err != nil {
			return c.Send(fmt.Sprintf("Advisor error: %v", err))
		}
		return c.Send(reply)
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func commodityArg(c tele.Context) (string, error) {
	args := c.Args()
	if len(args) == 0 {
		return "", fmt.Errorf("Usage: %s WHEAT\nSupported: %s", c.Text(), strings.Join(domain.SupportedCommodities, ", "))
	}
	commodity := strings.ToUpper(args[0])
	if _, ok := domain.CommodityCatalog[commodity]; !ok {
		return "", fmt.Errorf("Unknown commodity: %s\nSupported: %s", commodity, strings.Join(domain.SupportedCommodities, ", "))
	}
	return commodity, nil
}

func formatPrice(p *domain.PricePoint) string {
	return fmt.Sprintf(
		"%s %04d-%02d\nPrice: %.2f %s\nSource: %s",
		p.Commodity, p.Year, p.Month, p.Price, p.Unit, p.Source,
	)
}

func formatForecast(commodity string, result domain.ForecastResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s forecast (%s, confidence %.0f%%)\n", commodity, result.Model, result.Confidence*100)
	for _, p := range result.Predictions {
		fmt.Fprintf(&sb, "%04d-%02d: %.2f", p.Year, p.Month, p.Price)
		if p.ConfidenceInterval != nil {
			fmt.Fprintf(&sb, " [%.2f - %.2f]", p.ConfidenceInterval.Lower, p.ConfidenceInterval.Upper)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
