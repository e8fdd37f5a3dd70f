// internal/forecast/smoothing_test.go
package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/domain"
)

func TestExponentialSmoothingConstantDemand(t *testing.T) {
	res, err := NewExponentialSmoothing(0.3).Forecast(constantSeries(8, 5), 4)
	require.NoError(t, err)
	require.Len(t, res.Points, 4)

	// Constant input smooths to the same level with no trend component.
	assert.InDelta(t, 8.0, res.Diagnostics["level"], 1e-9)
	assert.InDelta(t, 0.0, res.Diagnostics["trend"], 1e-9)
	for _, p := range res.Points {
		assert.InDelta(t, 8.0, p.Predicted, 1e-9)
		assert.Equal(t, domain.ConfidenceMedium, p.Confidence)
	}
}

func TestExponentialSmoothingTrendNeedsHistory(t *testing.T) {
	// Rising demand but only 8 observations: trend stays disabled.
	series := seriesFrom([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 8)
	res, err := NewExponentialSmoothing(0.3).Forecast(series, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, res.Diagnostics["trend"], 1e-9)

	// With 20 observations the smoothed trend kicks in and the confidence
	// steps up.
	longer := make([]domain.Observation, 0, 20)
	for i, obs := range constantSeries(0, 20) {
		obs.Quantity = float64(i + 1)
		longer = append(longer, obs)
	}
	res, err = NewExponentialSmoothing(0.3).Forecast(longer, 3)
	require.NoError(t, err)
	assert.Greater(t, res.Diagnostics["trend"], 0.0)
	assert.Equal(t, domain.ConfidenceHigh, res.Points[0].Confidence)
	assert.Greater(t, res.Points[2].Predicted, res.Points[0].Predicted)
}

func TestExponentialSmoothingAlphaValidation(t *testing.T) {
	for _, alpha := range []float64{-0.1, 0, 1, 1.5} {
		res, err := NewExponentialSmoothing(alpha).Forecast(constantSeries(5, 10), 1)
		require.NoError(t, err)
		assert.InDelta(t, 0.3, res.Diagnostics["alpha"], 1e-9)
	}
}

func TestExponentialSmoothingInsufficientHistory(t *testing.T) {
	_, err := NewExponentialSmoothing(0.3).Forecast(constantSeries(10, 4), 7)
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}
