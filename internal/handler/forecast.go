package handler

import (
	"errors"
	"net/http"
	"strings"

	"crop-compass/internal/domain"
	"crop-compass/internal/ml/direction"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetForecast godoc
// @Summary      Forecast monthly prices for a commodity
// @Description  Runs the selected forecasting model over the stored history and returns predictions with confidence intervals
// @Tags         forecast
// @Produce      json
// @Param        commodity  path   string  true   "Commodity key (e.g., WHEAT, CORN)"
// @Param        months     query  int     false  "Forecast horizon in months (default 12, max 36)"  default(12)
// @Param        model      query  string  false  "Model (ensemble, seasonal, linear)"  default(ensemble)
// @Success      200  {object}  domain.ForecastResult
// @Failure      400  {object}  map[string]string
// @Router       /api/forecast/{commodity} [get]
func (h *Handler) GetForecast(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-forecast")
	defer span.End()

	commodity := strings.ToUpper(c.Param("commodity"))
	model := domain.ForecastModel(strings.ToLower(c.DefaultQuery("model", string(domain.ModelEnsemble))))
	months := queryInt(c, "months", 12, 36)
	span.SetAttributes(
		attribute.String("commodity", commodity),
		attribute.String("model", string(model)),
		attribute.Int("months", months),
	)

	if !model.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            "unsupported model: " + string(model),
			"supported_models": []domain.ForecastModel{domain.ModelEnsemble, domain.ModelSeasonal, domain.ModelLinear},
		})
		return
	}

	history, err := h.priceService.GetHistory(ctx, commodity, 0)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommodity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":                 "unsupported commodity: " + commodity,
				"supported_commodities": domain.SupportedCommodities,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := h.forecaster.GeneratePredictions(ctx, history, months, model)
	c.JSON(http.StatusOK, result)
}

// ValidateForecastData godoc
// @Summary      Validate a commodity's history for forecasting
// @Description  Reports whether the stored series is long and clean enough for reliable predictions
// @Tags         forecast
// @Produce      json
// @Param        commodity  path  string  true  "Commodity key (e.g., WHEAT, CORN)"
// @Success      200  {object}  domain.ValidationResult
// @Failure      400  {object}  map[string]string
// @Router       /api/forecast/{commodity}/validate [get]
func (h *Handler) ValidateForecastData(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.validate-forecast-data")
	defer span.End()

	commodity := strings.ToUpper(c.Param("commodity"))
	span.SetAttributes(attribute.String("commodity", commodity))

	history, err := h.priceService.GetHistory(ctx, commodity, 0)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommodity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":                 "unsupported commodity: " + commodity,
				"supported_commodities": domain.SupportedCommodities,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := h.forecaster.ValidateDataForPrediction(history)
	c.JSON(http.StatusOK, result)
}

// GetOutlook godoc
// @Summary      Get the ML direction outlook for a commodity
// @Description  Trains a gradient-boosted classifier on the stored history and returns the probability that next month closes higher
// @Tags         forecast
// @Produce      json
// @Param        commodity  path  string  true  "Commodity key (e.g., WHEAT, CORN)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/forecast/{commodity}/outlook [get]
func (h *Handler) GetOutlook(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-outlook")
	defer span.End()

	commodity := strings.ToUpper(c.Param("commodity"))
	span.SetAttributes(attribute.String("commodity", commodity))

	history, err := h.priceService.GetHistory(ctx, commodity, 0)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCommodity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":                 "unsupported commodity: " + commodity,
				"supported_commodities": domain.SupportedCommodities,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}

	probUp, err := direction.PredictNext(prices)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"commodity": commodity,
			"available": false,
			"reason":    err.Error(),
		})
		return
	}

	label := "sideways"
	switch {
	case probUp >= 0.55:
		label = "up"
	case probUp <= 0.45:
		label = "down"
	}

	c.JSON(http.StatusOK, gin.H{
		"commodity": commodity,
		"available": true,
		"prob_up":   probUp,
		"outlook":   label,
	})
}

// ListModels godoc
// @Summary      List available forecasting models
// @Description  Returns the registered models with their historical accuracy
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-models")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"models": h.forecaster.AvailableModels()})
}
