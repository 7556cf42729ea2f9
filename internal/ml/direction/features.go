package direction

import (
	"errors"
	"fmt"
)

// Feature layout: short/medium/long momentum plus deviation from the
// trailing-12 average.
var featureNames = []string{"ret_1m", "ret_3m", "ret_6m", "dev_12m"}

const (
	featureWindow       = 12
	minTrainingHistory  = 18
	probNeutralFallback = 0.5
)

// BuildDataset turns a price series into (features, next-month-up) pairs.
// The first featureWindow months seed the lags; the last month has no label.
func BuildDataset(prices []float64) (samples [][]float64, labels []float64, err error) {
	if len(prices) < minTrainingHistory {
		return nil, nil, fmt.Errorf("need at least %d months, have %d", minTrainingHistory, len(prices))
	}
	for t := featureWindow; t < len(prices)-1; t++ {
		sample, err := featureVector(prices, t)
		if err != nil {
			return nil, nil, err
		}
		label := 0.0
		if prices[t+1] > prices[t] {
			label = 1.0
		}
		samples = append(samples, sample)
		labels = append(labels, label)
	}
	return samples, labels, nil
}

// LatestFeatures builds the feature vector for the most recent month.
func LatestFeatures(prices []float64) ([]float64, error) {
	if len(prices) <= featureWindow {
		return nil, errors.New("series too short for direction features")
	}
	return featureVector(prices, len(prices)-1)
}

// PredictNext trains on the full history and scores the latest month.
func PredictNext(prices []float64) (float64, error) {
	samples, labels, err := BuildDataset(prices)
	if err != nil {
		return probNeutralFallback, err
	}
	model, err := Train(samples, labels, DefaultTrainOptions())
	if err != nil {
		return probNeutralFallback, err
	}
	latest, err := LatestFeatures(prices)
	if err != nil {
		return probNeutralFallback, err
	}
	return model.PredictProb(latest), nil
}

func featureVector(prices []float64, t int) ([]float64, error) {
	ret1, err := relReturn(prices, t, 1)
	if err != nil {
		return nil, err
	}
	ret3, err := relReturn(prices, t, 3)
	if err != nil {
		return nil, err
	}
	ret6, err := relReturn(prices, t, 6)
	if err != nil {
		return nil, err
	}

	sum := 0.0
	for _, v := range prices[t-featureWindow+1 : t+1] {
		sum += v
	}
	avg := sum / featureWindow
	if avg == 0 {
		return nil, errors.New("zero trailing average")
	}
	dev := (prices[t] - avg) / avg

	return []float64{ret1, ret3, ret6, dev}, nil
}

func relReturn(prices []float64, t, lag int) (float64, error) {
	if t-lag < 0 {
		return 0, errors.New("lag out of range")
	}
	base := prices[t-lag]
	if base == 0 {
		return 0, errors.New("zero base price in return")
	}
	return (prices[t] - base) / base, nil
}
