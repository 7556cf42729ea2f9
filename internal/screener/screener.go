package screener

import (
	"crop-compass/internal/domain"

	"github.com/narumiruna/go-iforest"
)

const (
	defaultThreshold = 0.65
	minScreenPoints  = 12
)

// Screener flags anomalous price points with an isolation forest over
// (price, month-over-month return) features. It backs the data-quality
// recommendations on the validation endpoint.
type Screener struct {
	threshold float64
}

func New(threshold float64) *Screener {
	if threshold <= 0 || threshold >= 1 {
		threshold = defaultThreshold
	}
	return &Screener{threshold: threshold}
}

// Screen returns the indexes of points whose anomaly score exceeds the
// threshold. Series shorter than the screening minimum are skipped.
func (s *Screener) Screen(points []domain.PricePoint) []int {
	if len(points) < minScreenPoints {
		return nil
	}

	samples := make([][]float64, len(points))
	for i, p := range points {
		ret := 0.0
		if i > 0 && points[i-1].Price != 0 {
			ret = (p.Price - points[i-1].Price) / points[i-1].Price
		}
		samples[i] = []float64{p.Price, ret}
	}

	forest := iforest.New()
	forest.Fit(samples)
	scores := forest.Score(samples)

	var anomalous []int
	for i, score := range scores {
		if score >= s.threshold {
			anomalous = append(anomalous, i)
		}
	}
	return anomalous
}

// MarkAnomalies returns a copy of the series with anomalous points relabeled.
func (s *Screener) MarkAnomalies(points []domain.PricePoint) []domain.PricePoint {
	out := append([]domain.PricePoint(nil), points...)
	for _, idx := range s.Screen(points) {
		out[idx].Quality = domain.QualityAnomalous
	}
	return out
}
