// internal/forecast/accuracy.go
package forecast

import (
	"fmt"
	"math"

	"github.com/ternaklab/farmstock/internal/domain"
)

const (
	accuracyMinObservations = 10
	maxValidationDays       = 7

	// EnsembleKey names the combined forecast inside an accuracy report.
	EnsembleKey = "ensemble"
)

// Evaluate backtests every registered method and the ensemble against a
// held-out recent window of the series. Purely diagnostic: forecast emission
// never depends on it.
func (r *Registry) Evaluate(series []domain.Observation) (*domain.AccuracyReport, error) {
	n := len(series)
	if n < accuracyMinObservations {
		return nil, fmt.Errorf("%w: %d observations, need %d for backtest",
			domain.ErrInsufficientHistory, n, accuracyMinObservations)
	}

	validation := n / 4
	if validation > maxValidationDays {
		validation = maxValidationDays
	}
	train := series[:n-validation]
	holdout := series[n-validation:]

	report := &domain.AccuracyReport{
		ValidationDays: validation,
		Methods:        make(map[string]domain.AccuracyMetrics),
	}

	var results []domain.MethodResult
	for _, m := range r.methods {
		res, err := m.Forecast(train, validation)
		if err != nil {
			continue
		}
		results = append(results, *res)
		report.Methods[m.Name()] = scoreAgainst(res.Points, holdout)
	}

	if ensemble, err := r.Combine(results); err == nil {
		points := make([]domain.ForecastPoint, len(ensemble.Points))
		for i, p := range ensemble.Points {
			points[i] = p.ForecastPoint
		}
		report.Methods[EnsembleKey] = scoreAgainst(points, holdout)
	}

	return report, nil
}

// scoreAgainst aligns forecast points positionally with the holdout suffix.
func scoreAgainst(points []domain.ForecastPoint, holdout []domain.Observation) domain.AccuracyMetrics {
	n := len(points)
	if len(holdout) < n {
		n = len(holdout)
	}

	var absSum, signedSum, pctSum float64
	pctSamples := 0
	for i := 0; i < n; i++ {
		diff := points[i].Predicted - holdout[i].Quantity
		absSum += math.Abs(diff)
		signedSum += diff
		if holdout[i].Quantity != 0 {
			pctSum += math.Abs(diff) / holdout[i].Quantity
			pctSamples++
		}
	}

	metrics := domain.AccuracyMetrics{Samples: n}
	if n > 0 {
		metrics.MAE = absSum / float64(n)
		metrics.Bias = signedSum / float64(n)
	}
	if pctSamples > 0 {
		metrics.MAPE = pctSum / float64(pctSamples) * 100
	}
	return metrics
}
