// internal/forecast/ensemble.go
package forecast

import (
	"sort"

	"github.com/ternaklab/farmstock/internal/domain"
)

// Combine merges the available method results into one forecast per period.
// Each contributing method is weighted by its reliability prior; the
// uncertainty per period is the unweighted dispersion of the contributing
// predictions. Only periods with at least one contributor are emitted.
func (r *Registry) Combine(results []domain.MethodResult) (*domain.EnsembleResult, error) {
	type contribution struct {
		point  domain.ForecastPoint
		weight float64
	}

	byOffset := make(map[int][]contribution)
	for _, res := range results {
		w := r.Weight(res.Method)
		for _, p := range res.Points {
			byOffset[p.PeriodOffset] = append(byOffset[p.PeriodOffset], contribution{point: p, weight: w})
		}
	}

	if len(byOffset) == 0 {
		return nil, domain.ErrNoCommonPeriods
	}

	offsets := make([]int, 0, len(byOffset))
	for offset := range byOffset {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)

	points := make([]domain.EnsemblePoint, 0, len(offsets))
	for _, offset := range offsets {
		contribs := byOffset[offset]

		var weightedSum, weightTotal float64
		values := make([]float64, 0, len(contribs))
		for _, c := range contribs {
			weightedSum += c.point.Predicted * c.weight
			weightTotal += c.weight
			values = append(values, c.point.Predicted)
		}

		predicted := weightedSum / weightTotal
		uncertainty := populationStdDev(values)

		confidence := domain.ConfidenceLow
		switch {
		case predicted > 0 && uncertainty < 0.1*predicted:
			confidence = domain.ConfidenceHigh
		case predicted > 0 && uncertainty < 0.2*predicted:
			confidence = domain.ConfidenceMedium
		case predicted == 0 && uncertainty == 0:
			confidence = domain.ConfidenceHigh
		}

		points = append(points, domain.EnsemblePoint{
			ForecastPoint: domain.ForecastPoint{
				PeriodOffset: offset,
				Date:         contribs[0].point.Date,
				Predicted:    predicted,
				Confidence:   confidence,
			},
			Uncertainty:     uncertainty,
			MethodAgreement: len(contribs),
		})
	}

	return &domain.EnsembleResult{Points: points}, nil
}
