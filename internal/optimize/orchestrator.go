// internal/optimize/orchestrator.go
package optimize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/forecast"
	"github.com/ternaklab/farmstock/internal/replenish"
	"github.com/ternaklab/farmstock/internal/timeseries"
)

// ConsumptionSource supplies item metadata and raw consumption events.
// I/O errors are propagated unchanged; retries belong to the caller.
type ConsumptionSource interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetConsumptionEvents(ctx context.Context, itemID int64, kind domain.ItemKind, start, end time.Time) ([]domain.ConsumptionEvent, error)
}

// Orchestrator sequences series building, forecasting and replenishment per
// item across the whole inventory and aggregates the results into a phased
// action plan. Items are independent, so the per-item pipeline fans out
// over a bounded worker group.
type Orchestrator struct {
	src      ConsumptionSource
	registry *forecast.Registry
	calc     *replenish.Calculator
	cfg      config.EngineConfig
}

func NewOrchestrator(src ConsumptionSource, cfg config.EngineConfig) *Orchestrator {
	return &Orchestrator{
		src:      src,
		registry: forecast.NewRegistry(cfg),
		calc:     replenish.NewCalculator(cfg),
		cfg:      cfg,
	}
}

// ForecastItem runs the forecasting pipeline for one item.
func (o *Orchestrator) ForecastItem(ctx context.Context, itemID int64, horizon int) (*domain.ForecastReport, error) {
	item, err := o.src.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	series, err := o.buildSeries(ctx, *item, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if horizon <= 0 {
		horizon = o.cfg.HorizonDays
	}

	results, skipped := o.registry.ForecastAll(series, horizon)
	report := &domain.ForecastReport{
		ItemID:      item.ID,
		ItemKind:    item.Kind,
		HorizonDays: horizon,
		Methods:     results,
		Skipped:     skipped,
		Variability: forecast.AnalyzeVariability(series),
	}

	ensemble, err := o.registry.Combine(results)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", item.ID, err)
	}
	report.Ensemble = ensemble

	if accuracy, err := o.registry.Evaluate(series); err == nil {
		report.Accuracy = accuracy
	}

	return report, nil
}

// RecommendItem runs the replenishment pipeline for one item.
func (o *Orchestrator) RecommendItem(ctx context.Context, itemID int64) (*domain.ReplenishmentReport, error) {
	item, err := o.src.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	series, err := o.buildSeries(ctx, *item, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	variability := forecast.AnalyzeVariability(series)
	rec, err := o.calc.Recommend(*item, series, variability.CV, 0)
	if err != nil {
		return nil, err
	}

	return &domain.ReplenishmentReport{ItemID: item.ID, Recommendation: *rec}, nil
}

// Run optimizes the whole inventory as of now.
func (o *Orchestrator) Run(ctx context.Context) (*domain.OptimizationReport, error) {
	return o.RunAsOf(ctx, time.Now().UTC())
}

// RunAsOf optimizes the whole inventory against the consumption window
// ending at asOf. Deterministic given the same input snapshot.
func (o *Orchestrator) RunAsOf(ctx context.Context, asOf time.Time) (*domain.OptimizationReport, error) {
	items, err := o.src.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	type outcome struct {
		optimization *domain.ItemOptimization
		excluded     *domain.ExcludedItem
		avgDaily     float64
	}
	outcomes := make([]outcome, len(items))

	g, gctx := errgroup.WithContext(ctx)
	workers := o.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	var mu sync.Mutex
	for i := range items {
		g.Go(func() error {
			opt, avgDaily, err := o.optimizeItem(gctx, items[i], asOf)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				outcomes[i] = outcome{optimization: opt, avgDaily: avgDaily}
			case errors.Is(err, domain.ErrInsufficientHistory),
				errors.Is(err, domain.ErrInvalidDemand),
				errors.Is(err, domain.ErrNoCommonPeriods):
				outcomes[i] = outcome{excluded: &domain.ExcludedItem{
					ItemID: items[i].ID,
					Name:   items[i].Name,
					Reason: err.Error(),
				}}
			default:
				return fmt.Errorf("item %d: %w", items[i].ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.OptimizationReport{
		GeneratedAt: asOf,
		Summary: domain.OptimizationSummary{
			TotalItems: len(items),
			PriorityCounts: map[string]int{
				domain.PriorityCritical: 0,
				domain.PriorityHigh:     0,
				domain.PriorityMedium:   0,
				domain.PriorityLow:      0,
			},
		},
	}

	avgDailyByItem := make(map[int64]float64, len(items))
	for i, out := range outcomes {
		avgDailyByItem[items[i].ID] = out.avgDaily
		if out.excluded != nil {
			report.Excluded = append(report.Excluded, *out.excluded)
			continue
		}
		report.Items = append(report.Items, *out.optimization)
		report.Summary.PriorityCounts[out.optimization.Priority]++
		report.Summary.TotalInvestmentChange += out.optimization.InvestmentChange
	}
	report.Summary.OptimizedItems = len(report.Items)
	report.Summary.ExcludedItems = len(report.Excluded)

	report.Classification = replenish.ClassifyABC(items, avgDailyByItem)
	report.Plan = buildPlan(report.Items)

	log.Info().
		Int("items", report.Summary.TotalItems).
		Int("optimized", report.Summary.OptimizedItems).
		Int("excluded", report.Summary.ExcludedItems).
		Float64("investment_change", report.Summary.TotalInvestmentChange).
		Msg("optimization run completed")

	return report, nil
}

func (o *Orchestrator) buildSeries(ctx context.Context, item domain.Item, asOf time.Time) ([]domain.Observation, error) {
	start := asOf.AddDate(0, 0, -o.cfg.WindowDays)
	events, err := o.src.GetConsumptionEvents(ctx, item.ID, item.Kind, start, asOf)
	if err != nil {
		return nil, fmt.Errorf("fetching consumption for item %d: %w", item.ID, err)
	}
	return timeseries.Build(events, o.cfg.WindowDays)
}

// optimizeItem runs the sequential per-item pipeline:
// series -> forecast -> ensemble -> replenishment.
func (o *Orchestrator) optimizeItem(ctx context.Context, item domain.Item, asOf time.Time) (*domain.ItemOptimization, float64, error) {
	series, err := o.buildSeries(ctx, item, asOf)
	if err != nil {
		return nil, 0, err
	}

	results, _ := o.registry.ForecastAll(series, o.cfg.HorizonDays)
	if _, err := o.registry.Combine(results); err != nil {
		return nil, 0, err
	}

	variability := forecast.AnalyzeVariability(series)
	rec, err := o.calc.Recommend(item, series, variability.CV, 0)
	if err != nil {
		return nil, 0, err
	}

	avgDaily := timeseries.AvgDaily(series)
	optimal := rec.EOQ.EOQ + rec.SafetyStock
	investment := (optimal - item.CurrentStock) * item.UnitCost

	_, riskTier := replenish.RiskTier(item.Kind, item.CurrentStock, avgDaily)

	return &domain.ItemOptimization{
		ItemID:            item.ID,
		Name:              item.Name,
		Kind:              item.Kind,
		CurrentStock:      item.CurrentStock,
		OptimalStockLevel: optimal,
		InvestmentChange:  investment,
		AvgDailyDemand:    avgDaily,
		RiskTier:          riskTier,
		Priority:          o.priority(riskTier, investment),
		Recommendation:    *rec,
	}, avgDaily, nil
}

// priority combines the depletion risk tier with the magnitude of the
// required investment change.
func (o *Orchestrator) priority(riskTier string, investmentChange float64) string {
	magnitude := math.Abs(investmentChange)
	switch {
	case riskTier == domain.RiskCritical:
		return domain.PriorityCritical
	case riskTier == domain.RiskHigh || magnitude > o.cfg.HighInvestment:
		return domain.PriorityHigh
	case riskTier == domain.RiskMedium || magnitude > o.cfg.MediumInvestment:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// buildPlan splits optimized items into three rollout phases: critical,
// high, then everything else; within a phase, cheapest required investment
// first.
func buildPlan(items []domain.ItemOptimization) []domain.PlanPhase {
	phaseOf := func(priority string) int {
		switch priority {
		case domain.PriorityCritical:
			return 1
		case domain.PriorityHigh:
			return 2
		default:
			return 3
		}
	}

	grouped := map[int][]domain.ItemOptimization{1: nil, 2: nil, 3: nil}
	for _, item := range items {
		p := phaseOf(item.Priority)
		grouped[p] = append(grouped[p], item)
	}

	plan := make([]domain.PlanPhase, 0, 3)
	for phase := 1; phase <= 3; phase++ {
		members := grouped[phase]
		sort.SliceStable(members, func(i, j int) bool {
			return requiredInvestment(members[i]) < requiredInvestment(members[j])
		})

		entry := domain.PlanPhase{Phase: phase, ItemIDs: make([]int64, 0, len(members))}
		for _, item := range members {
			entry.ItemIDs = append(entry.ItemIDs, item.ItemID)
			entry.EstimatedCost += requiredInvestment(item)
		}
		plan = append(plan, entry)
	}

	return plan
}

// requiredInvestment is the cash outlay needed to reach the optimal stock
// level; divestment (negative change) needs no spend.
func requiredInvestment(item domain.ItemOptimization) float64 {
	return math.Max(0, item.InvestmentChange)
}
