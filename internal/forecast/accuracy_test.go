// internal/forecast/accuracy_test.go
package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
)

func TestEvaluateConstantSeriesScoresPerfectly(t *testing.T) {
	r := NewRegistry(config.DefaultEngine())

	report, err := r.Evaluate(constantSeries(10, 40))
	require.NoError(t, err)

	assert.Equal(t, 7, report.ValidationDays)
	require.Contains(t, report.Methods, MethodMovingAverage)
	require.Contains(t, report.Methods, EnsembleKey)

	for name, metrics := range report.Methods {
		assert.InDelta(t, 0.0, metrics.MAE, 1e-6, name)
		assert.InDelta(t, 0.0, metrics.MAPE, 1e-6, name)
		assert.InDelta(t, 0.0, metrics.Bias, 1e-6, name)
		assert.Equal(t, 7, metrics.Samples, name)
	}
}

func TestEvaluateShortSeriesShrinksValidation(t *testing.T) {
	r := NewRegistry(config.DefaultEngine())

	report, err := r.Evaluate(constantSeries(10, 12))
	require.NoError(t, err)
	assert.Equal(t, 3, report.ValidationDays)

	// The 12-observation series leaves a 9-day training prefix, too short
	// for the trend and seasonal methods.
	assert.NotContains(t, report.Methods, MethodLinearTrend)
	assert.NotContains(t, report.Methods, MethodSeasonalWeekly)
	assert.Contains(t, report.Methods, MethodMovingAverage)
}

func TestEvaluateInsufficientHistory(t *testing.T) {
	r := NewRegistry(config.DefaultEngine())

	_, err := r.Evaluate(constantSeries(10, 9))
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}

func TestScoreAgainstSkipsZeroActualsForMAPE(t *testing.T) {
	points := methodResult(MethodMovingAverage, 10, 10).Points
	holdout := []domain.Observation{
		{Quantity: 0},
		{Quantity: 8},
	}

	metrics := scoreAgainst(points, holdout)
	assert.Equal(t, 2, metrics.Samples)
	assert.InDelta(t, 6.0, metrics.MAE, 1e-9)   // (10 + 2) / 2
	assert.InDelta(t, 25.0, metrics.MAPE, 1e-9) // only the non-zero actual
	assert.InDelta(t, 6.0, metrics.Bias, 1e-9)  // both predictions high
}
