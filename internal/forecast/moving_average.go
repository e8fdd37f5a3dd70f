// internal/forecast/moving_average.go
package forecast

import (
	"github.com/ternaklab/farmstock/internal/domain"
)

const (
	MethodMovingAverage = "moving_average"

	maShortWindow = 7
	maMidWindow   = 14
	maLongWindow  = 30
)

// MovingAverage blends 7/14/30-day trailing means into a flat horizon
// forecast. The blend weights favor the short window so recent demand
// shifts dominate.
type MovingAverage struct{}

func NewMovingAverage() *MovingAverage {
	return &MovingAverage{}
}

func (m *MovingAverage) Name() string { return MethodMovingAverage }

func (m *MovingAverage) MinObservations() int { return maShortWindow }

func (m *MovingAverage) Forecast(series []domain.Observation, horizon int) (*domain.MethodResult, error) {
	n := len(series)
	if n < m.MinObservations() {
		return nil, insufficient(m.Name(), n, m.MinObservations())
	}

	ma7 := trailingMean(series, maShortWindow)
	ma14 := trailingMean(series, maMidWindow)
	ma30 := trailingMean(series, maLongWindow)

	blended := clampNonNegative(0.5*ma7 + 0.3*ma14 + 0.2*ma30)

	lastDate := series[n-1].Date
	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		points = append(points, domain.ForecastPoint{
			PeriodOffset: i,
			Date:         lastDate.AddDate(0, 0, i),
			Predicted:    blended,
			Confidence:   domain.ConfidenceMedium,
		})
	}

	return &domain.MethodResult{
		Method: m.Name(),
		Points: points,
		Diagnostics: map[string]float64{
			"ma7":  ma7,
			"ma14": ma14,
			"ma30": ma30,
		},
	}, nil
}

// trailingMean averages the last window observations, falling back to the
// whole series when history is shorter than the window.
func trailingMean(series []domain.Observation, window int) float64 {
	n := len(series)
	if window > n {
		window = n
	}
	if window == 0 {
		return 0
	}
	var sum float64
	for _, obs := range series[n-window:] {
		sum += obs.Quantity
	}
	return sum / float64(window)
}
