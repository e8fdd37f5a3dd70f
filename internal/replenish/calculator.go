// internal/replenish/calculator.go
package replenish

import (
	"fmt"
	"math"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/timeseries"
)

// daysPerYear is used to annualize observed consumption.
const daysPerYear = 365

// sensitivityShifts are the perturbations applied independently to each EOQ
// input when building the sensitivity table.
var sensitivityShifts = []float64{-30, -10, 10, 30}

// Calculator derives order-size and buffer-stock policy from a consumption
// series and item cost data.
type Calculator struct {
	cfg config.EngineConfig
}

func NewCalculator(cfg config.EngineConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// AnnualDemand extrapolates total observed consumption over the series span
// to a full year.
func AnnualDemand(series []domain.Observation) float64 {
	span := timeseries.SpanDays(series)
	if span == 0 {
		return 0
	}
	return timeseries.Total(series) * daysPerYear / float64(span)
}

// EOQ computes the economic order quantity and its annual cost split.
// orderingCost <= 0 falls back to the configured default.
func (c *Calculator) EOQ(annualDemand, orderingCost, unitCost float64) (*domain.EOQResult, error) {
	if annualDemand <= 0 {
		return nil, fmt.Errorf("%w: got %.2f", domain.ErrInvalidDemand, annualDemand)
	}
	if orderingCost <= 0 {
		orderingCost = c.cfg.OrderingCost
	}

	holdingCost := unitCost * c.cfg.HoldingCostRate
	if holdingCost <= 0 {
		return nil, fmt.Errorf("holding cost must be positive, got %.2f (unit cost %.2f)", holdingCost, unitCost)
	}

	eoq := math.Sqrt(2 * annualDemand * orderingCost / holdingCost)
	ordersPerYear := annualDemand / eoq

	result := &domain.EOQResult{
		EOQ:                eoq,
		AnnualDemand:       annualDemand,
		OrdersPerYear:      ordersPerYear,
		DaysBetweenOrders:  daysPerYear / ordersPerYear,
		AnnualHoldingCost:  eoq / 2 * holdingCost,
		AnnualOrderingCost: ordersPerYear * orderingCost,
		TotalAnnualCost:    math.Sqrt(2 * annualDemand * orderingCost * holdingCost),
	}
	result.Sensitivity = sensitivityTable(eoq, annualDemand, orderingCost, holdingCost)

	return result, nil
}

// sensitivityTable recomputes the EOQ under independent perturbations of
// demand, ordering cost and holding cost. Demand dominates by construction
// since EOQ grows with the square root of it, same as ordering cost.
func sensitivityTable(baseEOQ, demand, ordering, holding float64) []domain.SensitivityEntry {
	entries := make([]domain.SensitivityEntry, 0, 3*len(sensitivityShifts))

	add := func(param string, d, s, h, pct float64) {
		eoq := math.Sqrt(2 * d * s / h)
		entries = append(entries, domain.SensitivityEntry{
			Parameter:    param,
			ChangePct:    pct,
			EOQ:          eoq,
			EOQChangePct: (eoq - baseEOQ) / baseEOQ * 100,
		})
	}

	for _, pct := range sensitivityShifts {
		factor := 1 + pct/100
		add("annual_demand", demand*factor, ordering, holding, pct)
		add("ordering_cost", demand, ordering*factor, holding, pct)
		add("holding_cost", demand, ordering, holding*factor, pct)
	}

	return entries
}

// LeadTime returns the default replenishment lead time for an item kind.
func (c *Calculator) LeadTime(kind domain.ItemKind) float64 {
	if kind == domain.ItemKindFinishedGood {
		return c.cfg.LeadTimeFeedDays
	}
	return c.cfg.LeadTimeRawDays
}

// SafetyStock buffers demand variability over the lead time, floored at zero.
func (c *Calculator) SafetyStock(avgDaily, cv, leadTimeDays float64) float64 {
	ss := c.cfg.ServiceFactor * avgDaily * cv * math.Sqrt(leadTimeDays)
	return math.Max(0, ss)
}

// ReorderPoint is expected lead-time demand plus the safety buffer.
func (c *Calculator) ReorderPoint(avgDaily, leadTimeDays, safetyStock float64) float64 {
	return avgDaily*leadTimeDays + safetyStock
}

// Recommend builds the full replenishment recommendation for one item.
// orderingCost <= 0 uses the configured default.
func (c *Calculator) Recommend(item domain.Item, series []domain.Observation, cv, orderingCost float64) (*domain.ReplenishmentRecommendation, error) {
	demand := AnnualDemand(series)
	eoq, err := c.EOQ(demand, orderingCost, item.UnitCost)
	if err != nil {
		return nil, err
	}

	avgDaily := timeseries.AvgDaily(series)
	leadTime := c.LeadTime(item.Kind)
	safetyStock := c.SafetyStock(avgDaily, cv, leadTime)
	reorderPoint := c.ReorderPoint(avgDaily, leadTime, safetyStock)

	urgency := domain.PriorityLow
	switch {
	case item.CurrentStock <= safetyStock:
		urgency = domain.PriorityHigh
	case item.CurrentStock <= reorderPoint:
		urgency = domain.PriorityMedium
	}

	return &domain.ReplenishmentRecommendation{
		EOQ:          *eoq,
		SafetyStock:  safetyStock,
		ReorderPoint: reorderPoint,
		LeadTimeDays: leadTime,
		ActionNeeded: item.CurrentStock <= reorderPoint || item.CurrentStock <= item.LowStockThreshold,
		Urgency:      urgency,
	}, nil
}
