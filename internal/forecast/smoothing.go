// internal/forecast/smoothing.go
package forecast

import (
	"github.com/ternaklab/farmstock/internal/domain"
)

const (
	MethodExponentialSmoothing = "exponential_smoothing"

	smoothingMinObservations   = 5
	smoothingTrendObservations = 10
	smoothingHighConfidence    = 20
	trendLookback              = 5
)

// ExponentialSmoothing applies single-parameter smoothing to obtain a level,
// then extrapolates a linear trend estimated from the smoothed values.
type ExponentialSmoothing struct {
	alpha float64
}

func NewExponentialSmoothing(alpha float64) *ExponentialSmoothing {
	if alpha <= 0 || alpha >= 1 {
		alpha = 0.3
	}
	return &ExponentialSmoothing{alpha: alpha}
}

func (m *ExponentialSmoothing) Name() string { return MethodExponentialSmoothing }

func (m *ExponentialSmoothing) MinObservations() int { return smoothingMinObservations }

func (m *ExponentialSmoothing) Forecast(series []domain.Observation, horizon int) (*domain.MethodResult, error) {
	n := len(series)
	if n < m.MinObservations() {
		return nil, insufficient(m.Name(), n, m.MinObservations())
	}

	smoothed := make([]float64, n)
	smoothed[0] = series[0].Quantity
	for i := 1; i < n; i++ {
		smoothed[i] = m.alpha*series[i].Quantity + (1-m.alpha)*smoothed[i-1]
	}

	level := smoothed[n-1]

	// Trend only when there is enough history to make the delta meaningful.
	var trend float64
	if n >= smoothingTrendObservations {
		trend = (smoothed[n-1] - smoothed[n-1-trendLookback]) / float64(trendLookback)
	}

	confidence := domain.ConfidenceMedium
	if n >= smoothingHighConfidence {
		confidence = domain.ConfidenceHigh
	}

	lastDate := series[n-1].Date
	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		points = append(points, domain.ForecastPoint{
			PeriodOffset: i,
			Date:         lastDate.AddDate(0, 0, i),
			Predicted:    clampNonNegative(level + trend*float64(i)),
			Confidence:   confidence,
		})
	}

	return &domain.MethodResult{
		Method: m.Name(),
		Points: points,
		Diagnostics: map[string]float64{
			"alpha": m.alpha,
			"level": level,
			"trend": trend,
		},
	}, nil
}
