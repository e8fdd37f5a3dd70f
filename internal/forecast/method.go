// internal/forecast/method.go
package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/rs/zerolog/log"
)

// Method is one forecasting algorithm. Forecast is deterministic, returns
// non-negative predictions, and reports ErrInsufficientHistory instead of a
// degraded numeric result when the series is too short.
type Method interface {
	Name() string
	MinObservations() int
	Forecast(series []domain.Observation, horizon int) (*domain.MethodResult, error)
}

// Registry holds every registered method plus the ensemble reliability
// priors, so that method selection is explicit rather than keyed on strings
// scattered through the callers.
type Registry struct {
	methods       []Method
	weights       map[string]float64
	defaultWeight float64
}

func NewRegistry(cfg config.EngineConfig) *Registry {
	return &Registry{
		methods: []Method{
			NewMovingAverage(),
			NewExponentialSmoothing(cfg.SmoothingAlpha),
			NewLinearTrend(),
			NewSeasonalWeekly(),
		},
		weights:       cfg.EnsembleWeights,
		defaultWeight: cfg.DefaultMethodWeight,
	}
}

// Methods returns the registered methods in registration order.
func (r *Registry) Methods() []Method {
	return r.methods
}

// Weight returns the ensemble reliability prior for a method name.
func (r *Registry) Weight(name string) float64 {
	if w, ok := r.weights[name]; ok {
		return w
	}
	return r.defaultWeight
}

// ForecastAll runs every registered method over the series. Methods that
// cannot meet their minimum history are returned as skipped, never as zeros.
func (r *Registry) ForecastAll(series []domain.Observation, horizon int) ([]domain.MethodResult, []domain.SkippedMethod) {
	results := make([]domain.MethodResult, 0, len(r.methods))
	var skipped []domain.SkippedMethod

	for _, m := range r.methods {
		res, err := m.Forecast(series, horizon)
		if err != nil {
			if !errors.Is(err, domain.ErrInsufficientHistory) {
				log.Warn().Err(err).Str("method", m.Name()).Msg("forecast method failed")
			}
			skipped = append(skipped, domain.SkippedMethod{Method: m.Name(), Reason: err.Error()})
			continue
		}
		results = append(results, *res)
	}

	return results, skipped
}

// shared numeric helpers

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStdDev divides by n, not n-1.
func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}

func quantities(series []domain.Observation) []float64 {
	out := make([]float64, len(series))
	for i, obs := range series {
		out[i] = obs.Quantity
	}
	return out
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func insufficient(name string, have, need int) error {
	return errMinObservations{method: name, have: have, need: need}
}

type errMinObservations struct {
	method string
	have   int
	need   int
}

func (e errMinObservations) Error() string {
	return fmt.Sprintf("%s: insufficient consumption history (%d observations, need %d)", e.method, e.have, e.need)
}

func (e errMinObservations) Unwrap() error {
	return domain.ErrInsufficientHistory
}
