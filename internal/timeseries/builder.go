// internal/timeseries/builder.go
package timeseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternaklab/farmstock/internal/domain"
)

// MinObservationDays gates every downstream forecast method: below this
// many distinct observation days no forecast is attempted at all.
const MinObservationDays = 10

// Build aggregates unordered dated quantity events into one observation per
// calendar day, ascending by date. Days without events are not synthesized
// with zero; dense filling is the responsibility of consumers that need it.
func Build(events []domain.ConsumptionEvent, windowDays int) ([]domain.Observation, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", windowDays)
	}

	byDay := make(map[time.Time]float64)
	var cutoff time.Time
	var latest time.Time
	for _, e := range events {
		day := truncateToDay(e.Date)
		if day.After(latest) {
			latest = day
		}
		byDay[day] += e.Quantity
	}
	if !latest.IsZero() {
		cutoff = latest.AddDate(0, 0, -windowDays+1)
	}

	series := make([]domain.Observation, 0, len(byDay))
	for day, qty := range byDay {
		if day.Before(cutoff) {
			continue
		}
		series = append(series, domain.Observation{Date: day, Quantity: qty})
	}

	if len(series) < MinObservationDays {
		return nil, fmt.Errorf("%w: %d observation days, need %d",
			domain.ErrInsufficientHistory, len(series), MinObservationDays)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series, nil
}

// Total sums all observed quantities.
func Total(series []domain.Observation) float64 {
	var total float64
	for _, obs := range series {
		total += obs.Quantity
	}
	return total
}

// SpanDays is the number of calendar days from first to last observation,
// inclusive. Zero for an empty series.
func SpanDays(series []domain.Observation) int {
	if len(series) == 0 {
		return 0
	}
	first := series[0].Date
	last := series[len(series)-1].Date
	return int(last.Sub(first).Hours()/24) + 1
}

// AvgDaily is mean daily consumption over the observed span, counting the
// silent days between observations.
func AvgDaily(series []domain.Observation) float64 {
	span := SpanDays(series)
	if span == 0 {
		return 0
	}
	return Total(series) / float64(span)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
