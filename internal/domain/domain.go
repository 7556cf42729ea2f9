package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownCommodity marks requests for commodities outside the catalog.
var ErrUnknownCommodity = errors.New("unknown commodity")

// PricePoint is one (commodity, year, month) observation or prediction.
type PricePoint struct {
	ID                 string              `json:"id"`
	Commodity          string              `json:"commodity"`
	Year               int                 `json:"year"`
	Month              int                 `json:"month"`
	Price              float64             `json:"price"`
	Unit               string              `json:"unit"`
	Source             string              `json:"source,omitempty"`
	Quality            string              `json:"quality,omitempty"`
	IsPrediction       bool                `json:"is_prediction,omitempty"`
	ConfidenceInterval *ConfidenceInterval `json:"confidence_interval,omitempty"`
}

// ConfidenceInterval bounds a predicted price.
type ConfidenceInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// NextMonth returns the calendar month that follows this point.
func (p PricePoint) NextMonth() (year, month int) {
	year, month = p.Year, p.Month+1
	if month > 12 {
		year, month = year+1, 1
	}
	return year, month
}

// PointID builds the canonical identifier for a price point.
func PointID(commodity string, year, month int) string {
	return fmt.Sprintf("%s-%04d-%02d", commodity, year, month)
}

// Quality labels carried by price points.
const (
	QualityObserved     = "Observed"
	QualityMock         = "Simulated"
	QualityForecasted   = "Forecasted"
	QualityAIForecasted = "AI Forecasted"
	QualityAnomalous    = "Anomalous"
)

// ForecastModel selects the forecasting path.
type ForecastModel string

const (
	ModelEnsemble ForecastModel = "ensemble"
	ModelSeasonal ForecastModel = "seasonal"
	ModelLinear   ForecastModel = "linear"
)

func (m ForecastModel) IsValid() bool {
	switch m {
	case ModelEnsemble, ModelSeasonal, ModelLinear:
		return true
	default:
		return false
	}
}

// ForecastResult is the full output of a forecast run.
type ForecastResult struct {
	Predictions []PricePoint     `json:"predictions"`
	Confidence  float64          `json:"confidence"`
	Model       string           `json:"model"`
	Accuracy    float64          `json:"accuracy"`
	Metadata    ForecastMetadata `json:"metadata"`
}

type ForecastMetadata struct {
	MethodsUsed    []string `json:"methods_used"`
	DataPointsUsed int      `json:"data_points_used"`
	ForecastPeriod int      `json:"forecast_period"`
}

// ValidationResult reports whether a series is usable for forecasting.
// It is data, never an error: the caller decides whether to block.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Message         string   `json:"message"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// ModelInfo describes an available forecasting model for display.
type ModelInfo struct {
	Name        string  `json:"name"`
	Accuracy    float64 `json:"accuracy"`
	Description string  `json:"description"`
}
