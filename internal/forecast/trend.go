// internal/forecast/trend.go
package forecast

import (
	"math"

	"github.com/ternaklab/farmstock/internal/domain"
)

const (
	MethodLinearTrend = "linear_trend"

	trendMinObservations = 10
	intervalZ            = 1.96
)

// lineFit is an ordinary least-squares fit of quantity against a zero-based
// observation index.
type lineFit struct {
	slope     float64
	intercept float64
	r2        float64
	stdErr    float64
	n         int
}

func fitLine(series []domain.Observation) lineFit {
	n := len(series)
	fit := lineFit{n: n}
	if n == 0 {
		return fit
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, obs := range series {
		x := float64(i)
		sumX += x
		sumY += obs.Quantity
		sumXY += x * obs.Quantity
		sumXX += x * x
	}

	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		fit.intercept = sumY / fn
		return fit
	}

	fit.slope = (fn*sumXY - sumX*sumY) / denom
	fit.intercept = (sumY - fit.slope*sumX) / fn

	meanY := sumY / fn
	var sse, sst float64
	for i, obs := range series {
		fitted := fit.intercept + fit.slope*float64(i)
		sse += (obs.Quantity - fitted) * (obs.Quantity - fitted)
		sst += (obs.Quantity - meanY) * (obs.Quantity - meanY)
	}

	switch {
	case sse == 0:
		fit.r2 = 1
	case sst == 0:
		fit.r2 = 0
	default:
		fit.r2 = 1 - sse/sst
	}

	if n > 2 {
		fit.stdErr = math.Sqrt(sse / float64(n-2))
	}

	return fit
}

func (f lineFit) at(x float64) float64 {
	return f.intercept + f.slope*x
}

// LinearTrend extrapolates an OLS line beyond the last observation index and
// derives a 95%-equivalent prediction interval from the residual error.
type LinearTrend struct{}

func NewLinearTrend() *LinearTrend {
	return &LinearTrend{}
}

func (m *LinearTrend) Name() string { return MethodLinearTrend }

func (m *LinearTrend) MinObservations() int { return trendMinObservations }

func (m *LinearTrend) Forecast(series []domain.Observation, horizon int) (*domain.MethodResult, error) {
	n := len(series)
	if n < m.MinObservations() {
		return nil, insufficient(m.Name(), n, m.MinObservations())
	}

	fit := fitLine(series)

	var confidence domain.Confidence
	switch {
	case fit.r2 > 0.7:
		confidence = domain.ConfidenceHigh
	case fit.r2 > 0.4:
		confidence = domain.ConfidenceMedium
	default:
		confidence = domain.ConfidenceLow
	}

	margin := intervalZ * fit.stdErr * math.Sqrt(1+1/float64(n))

	lastDate := series[n-1].Date
	points := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		predicted := clampNonNegative(fit.at(float64(n - 1 + i)))
		lower := clampNonNegative(predicted - margin)
		upper := predicted + margin
		points = append(points, domain.ForecastPoint{
			PeriodOffset: i,
			Date:         lastDate.AddDate(0, 0, i),
			Predicted:    predicted,
			Lower:        &lower,
			Upper:        &upper,
			Confidence:   confidence,
		})
	}

	return &domain.MethodResult{
		Method: m.Name(),
		Points: points,
		Diagnostics: map[string]float64{
			"slope":     fit.slope,
			"intercept": fit.intercept,
			"r2":        fit.r2,
			"std_err":   fit.stdErr,
		},
	}, nil
}
