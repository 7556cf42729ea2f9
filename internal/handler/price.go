package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"crop-compass/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// ListCommodities godoc
// @Summary      List supported commodities
// @Description  Returns the catalog of tracked agricultural commodities
// @Tags         prices
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/commodities [get]
func (h *Handler) ListCommodities(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-commodities")
	defer span.End()

	catalog := make([]domain.CommodityInfo, 0, len(domain.SupportedCommodities))
	for _, key := range domain.SupportedCommodities {
		catalog = append(catalog, domain.CommodityCatalog[key])
	}
	c.JSON(http.StatusOK, gin.H{"commodities": catalog})
}

// GetPrice godoc
// @Summary      Get current price for a commodity
// @Description  Returns the latest monthly price observation
// @Tags         prices
// @Produce      json
// @Param        commodity  path  string  true  "Commodity key (e.g., WHEAT, CORN)"
// @Success      200  {object}  domain.PricePoint
// @Failure      400  {object}  map[string]string
// @Router       /api/prices/{commodity} [get]
func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-price")
	defer span.End()

	commodity := strings.ToUpper(c.Param("commodity"))
	span.SetAttributes(attribute.String("commodity", commodity))

	point, err := h.priceService.GetLatest(ctx, commodity)
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

	c.JSON(http.StatusOK, point)
}

// GetAllPrices godoc
// @Summary      Get current prices for all commodities
// @Description  Returns the latest monthly price for all tracked commodities
// @Tags         prices
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/prices [get]
func (h *Handler) GetAllPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-all-prices")
	defer span.End()

	points, err := h.priceService.GetLatestAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"prices": points})
}

// GetHistory godoc
// @Summary      Get monthly price history
// @Description  Returns historical monthly observations, oldest first
// @Tags         prices
// @Produce      json
// @Param        commodity  path   string  true   "Commodity key (e.g., WHEAT, CORN)"
// @Param        months     query  int     false  "Trailing window in months (default 60, max 240)"  default(60)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/prices/{commodity}/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-history")
	defer span.End()

	commodity := strings.ToUpper(c.Param("commodity"))
	span.SetAttributes(attribute.String("commodity", commodity))

	months := queryInt(c, "months", 60, 240)

	history, err := h.priceService.GetHistory(ctx, commodity, months)
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

	c.JSON(http.StatusOK, gin.H{
		"commodity": commodity,
		"months":    months,
		"history":   history,
	})
}

// GetSummary godoc
// @Summary      Get descriptive statistics for a commodity
// @Description  Returns mean, median, extremes, volatility, and total change over the window
// @Tags         prices
// @Produce      json
// @Param        commodity  path   string  true   "Commodity key (e.g., WHEAT, CORN)"
// @Param        months     query  int     false  "Trailing window in months (default 12, max 240)"  default(12)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/prices/{commodity}/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-summary")
	defer span.End()

	commodity := strings.ToUpper(c.Param("commodity"))
	span.SetAttributes(attribute.String("commodity", commodity))

	months := queryInt(c, "months", 12, 240)

	summary, history, err := h.priceService.GetSummary(ctx, commodity, months)
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

	anomalies := 0
	for _, p := range history {
		if p.Quality == domain.QualityAnomalous {
			anomalies++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"commodity": commodity,
		"months":    months,
		"summary":   summary,
		"anomalies": anomalies,
	})
}

func queryInt(c *gin.Context, name string, def, max int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > max {
		return def
	}
	return n
}
