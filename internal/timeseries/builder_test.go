// internal/timeseries/builder_test.go
package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/domain"
)

func day(offset int) time.Time {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestBuildAggregatesSameDayEvents(t *testing.T) {
	events := []domain.ConsumptionEvent{
		{Date: day(0).Add(9 * time.Hour), Quantity: 5},
		{Date: day(0).Add(17 * time.Hour), Quantity: 3},
	}
	for i := 1; i < 10; i++ {
		events = append(events, domain.ConsumptionEvent{Date: day(i), Quantity: 10})
	}

	series, err := Build(events, 90)
	require.NoError(t, err)
	require.Len(t, series, 10)

	assert.Equal(t, day(0), series[0].Date)
	assert.Equal(t, 8.0, series[0].Quantity)
	for i := 1; i < len(series); i++ {
		assert.True(t, series[i].Date.After(series[i-1].Date), "series must be strictly ascending")
	}
}

func TestBuildDropsEventsOutsideWindow(t *testing.T) {
	events := []domain.ConsumptionEvent{
		{Date: day(-200), Quantity: 999},
	}
	for i := 0; i < 12; i++ {
		events = append(events, domain.ConsumptionEvent{Date: day(i), Quantity: 10})
	}

	series, err := Build(events, 90)
	require.NoError(t, err)
	require.Len(t, series, 12)
	assert.Equal(t, day(0), series[0].Date)
}

func TestBuildInsufficientHistory(t *testing.T) {
	events := make([]domain.ConsumptionEvent, 0, 9)
	for i := 0; i < 9; i++ {
		events = append(events, domain.ConsumptionEvent{Date: day(i), Quantity: 10})
	}

	_, err := Build(events, 90)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientHistory)
}

func TestBuildRejectsNonPositiveWindow(t *testing.T) {
	_, err := Build(nil, 0)
	assert.Error(t, err)
}

func TestAvgDailyCountsSilentDays(t *testing.T) {
	// Two observations ten calendar days apart: gaps count toward the span.
	series := []domain.Observation{
		{Date: day(0), Quantity: 10},
		{Date: day(9), Quantity: 10},
	}

	assert.Equal(t, 20.0, Total(series))
	assert.Equal(t, 10, SpanDays(series))
	assert.InDelta(t, 2.0, AvgDaily(series), 1e-9)
}

func TestAvgDailyEmptySeries(t *testing.T) {
	assert.Equal(t, 0, SpanDays(nil))
	assert.Equal(t, 0.0, AvgDaily(nil))
}
