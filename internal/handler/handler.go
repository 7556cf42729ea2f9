package handler

import (
	"context"

	"crop-compass/internal/domain"
	"crop-compass/internal/stats"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// PriceReader serves commodity price data to the HTTP layer.
type PriceReader interface {
	GetLatest(ctx context.Context, commodity string) (*domain.PricePoint, error)
	GetLatestAll(ctx context.Context) ([]*domain.PricePoint, error)
	GetHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error)
	GetSummary(ctx context.Context, commodity string, months int) (stats.Summary, []domain.PricePoint, error)
}

// Forecaster produces price predictions and validates input series.
type Forecaster interface {
	GeneratePredictions(ctx context.Context, data []domain.PricePoint, monthsAhead int, model domain.ForecastModel) domain.ForecastResult
	ValidateDataForPrediction(data []domain.PricePoint) domain.ValidationResult
	AvailableModels() []domain.ModelInfo
}

type Handler struct {
	tracer       trace.Tracer
	priceService PriceReader
	forecaster   Forecaster
}

func New(tracer trace.Tracer, priceService PriceReader, forecaster Forecaster) *Handler {
	return &Handler{
		tracer:       tracer,
		priceService: priceService,
		forecaster:   forecaster,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/commodities", h.ListCommodities)
	r.GET("/api/prices", h.GetAllPrices)
	r.GET("/api/prices/:commodity", h.GetPrice)
	r.GET("/api/prices/:commodity/history", h.GetHistory)
	r.GET("/api/prices/:commodity/summary", h.GetSummary)
	r.GET("/api/forecast/:commodity", h.GetForecast)
	r.GET("/api/forecast/:commodity/validate", h.ValidateForecastData)
	r.GET("/api/forecast/:commodity/outlook", h.GetOutlook)
	r.GET("/api/models", h.ListModels)
}
