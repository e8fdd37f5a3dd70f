// internal/forecast/seasonal.go
package forecast

import (
	"time"

	"github.com/ternaklab/farmstock/internal/domain"
)

const (
	MethodSeasonalWeekly = "seasonal_weekly"

	seasonalMinObservations = 30
)

// SeasonalWeekly layers multiplicative day-of-week factors on top of a
// linear trend base. Weekdays never observed keep a neutral factor of 1.
type SeasonalWeekly struct{}

func NewSeasonalWeekly() *SeasonalWeekly {
	return &SeasonalWeekly{}
}

func (m *SeasonalWeekly) Name() string { return MethodSeasonalWeekly }

func (m *SeasonalWeekly) MinObservations() int { return seasonalMinObservations }

func (m *SeasonalWeekly) Forecast(series []domain.Observation, horizon int) (*domain.MethodResult, error) {
	n := len(series)
	if n < m.MinObservations() {
		return nil, insufficient(m.Name(), n, m.MinObservations())
	}

	factors := weekdayFactors(series)
	fit := fitLine(series)

	lastDate := series[n-1].Date
	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		date := lastDate.AddDate(0, 0, i)
		base := fit.at(float64(n - 1 + i))
		points = append(points, domain.ForecastPoint{
			PeriodOffset: i,
			Date:         date,
			Predicted:    clampNonNegative(base * factors[date.Weekday()]),
			Confidence:   domain.ConfidenceMedium,
		})
	}

	diagnostics := map[string]float64{
		"slope":     fit.slope,
		"intercept": fit.intercept,
	}
	for wd, f := range factors {
		diagnostics["factor_"+wd.String()] = f
	}

	return &domain.MethodResult{
		Method:      m.Name(),
		Points:      points,
		Diagnostics: diagnostics,
	}, nil
}

// weekdayFactors computes the mean of each weekday's observations divided by
// the overall mean, defaulting to 1 for missing weekdays or a zero mean.
func weekdayFactors(series []domain.Observation) map[time.Weekday]float64 {
	overall := mean(quantities(series))

	sums := make(map[time.Weekday]float64)
	counts := make(map[time.Weekday]int)
	for _, obs := range series {
		wd := obs.Date.Weekday()
		sums[wd] += obs.Quantity
		counts[wd]++
	}

	factors := make(map[time.Weekday]float64, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		factors[wd] = 1
		if overall > 0 && counts[wd] > 0 {
			factors[wd] = (sums[wd] / float64(counts[wd])) / overall
		}
	}
	return factors
}
