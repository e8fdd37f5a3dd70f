// internal/replenish/calculator_test.go
package replenish

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
)

func dailySeries(quantity float64, days int) []domain.Observation {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	series := make([]domain.Observation, 0, days)
	for i := 0; i < days; i++ {
		series = append(series, domain.Observation{Date: base.AddDate(0, 0, i), Quantity: quantity})
	}
	return series
}

func TestEOQKnownInputs(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	// D=3650, S=1000, unit cost 30 at a 25% holding rate gives H=7.5.
	res, err := calc.EOQ(3650, 1000, 30)
	require.NoError(t, err)

	assert.InDelta(t, 986.58, res.EOQ, 0.01)
	assert.InDelta(t, 3.70, res.OrdersPerYear, 0.01)
	assert.InDelta(t, 365.0/res.OrdersPerYear, res.DaysBetweenOrders, 1e-9)

	// At the optimum the annual holding and ordering costs are equal.
	assert.InDelta(t, res.AnnualHoldingCost, res.AnnualOrderingCost, 0.01)
	assert.InDelta(t, res.AnnualHoldingCost+res.AnnualOrderingCost, res.TotalAnnualCost, 0.01)
}

func TestEOQScalesWithSqrtOfDemand(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	base, err := calc.EOQ(1000, 500, 20)
	require.NoError(t, err)
	quadrupled, err := calc.EOQ(4000, 500, 20)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, quadrupled.EOQ/base.EOQ, 1e-9)
}

func TestEOQInvalidInputs(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	_, err := calc.EOQ(0, 1000, 30)
	assert.ErrorIs(t, err, domain.ErrInvalidDemand)

	_, err = calc.EOQ(-10, 1000, 30)
	assert.ErrorIs(t, err, domain.ErrInvalidDemand)

	// Zero unit cost collapses the holding cost.
	_, err = calc.EOQ(1000, 1000, 0)
	assert.Error(t, err)
}

func TestEOQOrderingCostFallback(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	withDefault, err := calc.EOQ(3650, 0, 30)
	require.NoError(t, err)
	explicit, err := calc.EOQ(3650, 1000, 30)
	require.NoError(t, err)

	assert.InDelta(t, explicit.EOQ, withDefault.EOQ, 1e-9)
}

func TestEOQSensitivityTable(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	res, err := calc.EOQ(3650, 1000, 30)
	require.NoError(t, err)
	require.Len(t, res.Sensitivity, 12)

	byKey := make(map[string]domain.SensitivityEntry)
	for _, e := range res.Sensitivity {
		byKey[fmt.Sprintf("%s/%+.0f", e.Parameter, e.ChangePct)] = e
	}

	// +30% demand moves the EOQ by sqrt(1.3)-1; +30% holding cost by
	// 1/sqrt(1.3)-1. Ordering cost mirrors demand.
	assert.InDelta(t, (math.Sqrt(1.3)-1)*100, byKey["annual_demand/+30"].EOQChangePct, 0.01)
	assert.InDelta(t, (math.Sqrt(1.3)-1)*100, byKey["ordering_cost/+30"].EOQChangePct, 0.01)
	assert.InDelta(t, (1/math.Sqrt(1.3)-1)*100, byKey["holding_cost/+30"].EOQChangePct, 0.01)
	assert.InDelta(t, (math.Sqrt(0.7)-1)*100, byKey["annual_demand/-30"].EOQChangePct, 0.01)
}

func TestAnnualDemandExtrapolatesSpan(t *testing.T) {
	// 10 units/day over a 30-day span annualizes to 3650.
	series := dailySeries(10, 30)
	assert.InDelta(t, 3650.0, AnnualDemand(series), 1e-6)

	assert.Equal(t, 0.0, AnnualDemand(nil))
}

func TestSafetyStockAndReorderPoint(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	// Perfectly steady demand needs no buffer.
	assert.Equal(t, 0.0, calc.SafetyStock(10, 0, 7))

	ss := calc.SafetyStock(10, 0.3, 7)
	assert.InDelta(t, 1.65*10*0.3*math.Sqrt(7), ss, 1e-9)

	rop := calc.ReorderPoint(10, 7, ss)
	assert.InDelta(t, 70+ss, rop, 1e-9)
}

func TestLeadTimePerKind(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())

	assert.Equal(t, 7.0, calc.LeadTime(domain.ItemKindRawMaterial))
	assert.Equal(t, 5.0, calc.LeadTime(domain.ItemKindFinishedGood))
}

func TestRecommendUrgency(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())
	series := dailySeries(10, 30)

	empty := domain.Item{ID: 1, Kind: domain.ItemKindRawMaterial, UnitCost: 30, CurrentStock: 0}
	rec, err := calc.Recommend(empty, series, 0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, rec.Urgency)
	assert.True(t, rec.ActionNeeded)
	assert.Greater(t, rec.ReorderPoint, rec.SafetyStock)

	// Stock between safety stock and reorder point downgrades to medium.
	between := empty
	between.CurrentStock = rec.SafetyStock + (rec.ReorderPoint-rec.SafetyStock)/2
	rec, err = calc.Recommend(between, series, 0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, rec.Urgency)
	assert.True(t, rec.ActionNeeded)

	// Plenty of stock: nothing to do.
	flush := empty
	flush.CurrentStock = rec.ReorderPoint * 10
	rec, err = calc.Recommend(flush, series, 0.3, 0)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, rec.Urgency)
	assert.False(t, rec.ActionNeeded)
}

func TestRecommendLowStockThresholdForcesAction(t *testing.T) {
	calc := NewCalculator(config.DefaultEngine())
	series := dailySeries(10, 30)

	item := domain.Item{
		ID:                2,
		Kind:              domain.ItemKindFinishedGood,
		UnitCost:          30,
		CurrentStock:      500,
		LowStockThreshold: 600,
	}
	rec, err := calc.Recommend(item, series, 0.1, 0)
	require.NoError(t, err)

	// Stock sits above the reorder point but under the manual threshold.
	assert.Greater(t, item.CurrentStock, rec.ReorderPoint)
	assert.True(t, rec.ActionNeeded)
	assert.Equal(t, domain.PriorityLow, rec.Urgency)
}
