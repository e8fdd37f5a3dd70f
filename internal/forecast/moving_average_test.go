// internal/forecast/moving_average_test.go
package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/domain"
)

func TestMovingAverageStableDemand(t *testing.T) {
	// Three weeks of [10 12 9 11 13 10 12]: every window averages 11.
	series := seriesFrom([]float64{10, 12, 9, 11, 13, 10, 12}, 21)

	res, err := NewMovingAverage().Forecast(series, 7)
	require.NoError(t, err)
	require.Len(t, res.Points, 7)

	for _, p := range res.Points {
		assert.InDelta(t, 11.0, p.Predicted, 0.5)
		assert.Equal(t, domain.ConfidenceMedium, p.Confidence)
	}

	// Horizon is flat: same prediction for every period.
	assert.Equal(t, res.Points[0].Predicted, res.Points[6].Predicted)
	assert.InDelta(t, 11.0, res.Diagnostics["ma7"], 1e-9)
}

func TestMovingAverageShortHistoryFallsBack(t *testing.T) {
	// 8 observations: the 14 and 30 day windows fall back to the full series.
	series := constantSeries(6, 8)

	res, err := NewMovingAverage().Forecast(series, 3)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, res.Points[0].Predicted, 1e-9)
	assert.InDelta(t, res.Diagnostics["ma14"], res.Diagnostics["ma30"], 1e-9)
}

func TestMovingAverageInsufficientHistory(t *testing.T) {
	_, err := NewMovingAverage().Forecast(constantSeries(10, 6), 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}
