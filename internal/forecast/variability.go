// internal/forecast/variability.go
package forecast

import (
	"time"

	"github.com/ternaklab/farmstock/internal/domain"
)

// Demand regularity classes.
const (
	VariabilityLow      = "low_variability"
	VariabilityModerate = "moderate_variability"
	VariabilityHigh     = "high_variability"
)

// AnalyzeVariability computes dispersion statistics over the full series:
// mean, population standard deviation, coefficient of variation, a weekday
// consumption profile and the number of spike days above mean+2σ.
func AnalyzeVariability(series []domain.Observation) *domain.VariabilityReport {
	values := quantities(series)
	m := mean(values)
	sd := populationStdDev(values)

	cv := 0.0
	if m != 0 {
		cv = sd / m
	}

	classification := VariabilityLow
	switch {
	case cv > 0.5:
		classification = VariabilityHigh
	case cv > 0.2:
		classification = VariabilityModerate
	}

	weekly := make(map[string]float64, 7)
	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, obs := range series {
		wd := obs.Date.Weekday()
		sums[wd] += obs.Quantity
		counts[wd]++
	}
	for wd, count := range counts {
		weekly[wd.String()] = sums[wd] / float64(count)
	}

	spikes := 0
	threshold := m + 2*sd
	for _, v := range values {
		if v > threshold {
			spikes++
		}
	}

	return &domain.VariabilityReport{
		Mean:                m,
		StdDev:              sd,
		CV:                  cv,
		Classification:      classification,
		WeeklyPattern:       weekly,
		HighVariabilityDays: spikes,
		ObservationCount:    len(series),
	}
}
