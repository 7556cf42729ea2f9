package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crop-compass/internal/domain"
	"crop-compass/internal/forecast"

	"github.com/gin-gonic/gin"
)

func TestGetForecastEnsemble(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	reader := &stubPriceReader{history: forecastHistory(24)}
	h := New(testTracer, reader, forecast.NewService(testTracer, nil))
	r.GET("/api/forecast/:commodity", h.GetForecast)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/forecast/WHEAT?months=6", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result domain.ForecastResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(result.Predictions) != 6 {
		t.Fatalf("expected 6 predictions, got %d", len(result.Predictions))
	}
	if result.Metadata.DataPointsUsed != 24 {
		t.Fatalf("expected 24 data points used, got %d", result.Metadata.DataPointsUsed)
	}
}

func TestGetForecastRejectsUnknownModel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := New(testTracer, &stubPriceReader{}, forecast.NewService(testTracer, nil))
	r.GET("/api/forecast/:commodity", h.GetForecast)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/forecast/WHEAT?model=oracle", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetForecastUnknownCommodity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	reader := &stubPriceReader{err: domain.ErrUnknownCommodity}
	h := New(testTracer, reader, forecast.NewService(testTracer, nil))
	r.GET("/api/forecast/:commodity", h.GetForecast)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/forecast/PLUTONIUM", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestValidateForecastDataShortSeries(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	reader := &stubPriceReader{history: forecastHistory(4)}
	h := New(testTracer, reader, forecast.NewService(testTracer, nil))
	r.GET("/api/forecast/:commodity/validate", h.ValidateForecastData)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/forecast/WHEAT/validate", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var result domain.ValidationResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if result.Valid {
		t.Fatal("expected short series to be invalid")
	}
}

func TestListModels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	h := New(testTracer, &stubPriceReader{}, forecast.NewService(testTracer, nil))
	r.GET("/api/models", h.ListModels)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/models", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Models []domain.ModelInfo `json:"models"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(body.Models))
	}
}

func TestGetOutlookShortSeriesUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	reader := &stubPriceReader{history: forecastHistory(6)}
	h := New(testTracer, reader, forecast.NewService(testTracer, nil))
	r.GET("/api/forecast/:commodity/outlook", h.GetOutlook)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/forecast/WHEAT/outlook", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Available bool `json:"available"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Available {
		t.Fatal("expected outlook to be unavailable for a short series")
	}
}

func forecastHistory(n int) []domain.PricePoint {
	points := make([]domain.PricePoint, n)
	year, month := 2023, 1
	for i := range points {
		points[i] = domain.PricePoint{
			ID:        domain.PointID("WHEAT", year, month),
			Commodity: "WHEAT",
			Year:      year,
			Month:     month,
			Price:     6.0 + 0.05*float64(i),
			Unit:      "USD/bushel",
			Quality:   domain.QualityObserved,
		}
		month++
		if month > 12 {
			year, month = year+1, 1
		}
	}
	return points
}
