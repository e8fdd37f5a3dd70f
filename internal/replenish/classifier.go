// internal/replenish/classifier.go
package replenish

import (
	"sort"

	"github.com/ternaklab/farmstock/internal/domain"
)

// ABC cumulative-value cutoffs.
const (
	abcCategoryACutoff = 80.0
	abcCategoryBCutoff = 95.0
)

// riskThresholds are kind-specific days-of-stock boundaries for
// critical / high / medium tiers; anything above the last bound is low.
var riskThresholds = map[domain.ItemKind][3]float64{
	domain.ItemKindRawMaterial:  {7, 14, 30},
	domain.ItemKindFinishedGood: {3, 7, 14},
}

// ClassifyABC ranks items by current stock value descending and assigns
// Pareto categories by cumulative value share. Ties keep input order
// (stable sort), so the partition is deterministic.
func ClassifyABC(items []domain.Item, avgDaily map[int64]float64) []domain.ClassificationEntry {
	entries := make([]domain.ClassificationEntry, 0, len(items))
	var totalValue float64
	for _, item := range items {
		value := item.CurrentStock * item.UnitCost
		totalValue += value

		days, tier := RiskTier(item.Kind, item.CurrentStock, avgDaily[item.ID])
		entries = append(entries, domain.ClassificationEntry{
			ItemID:      item.ID,
			Name:        item.Name,
			StockValue:  value,
			DaysOfStock: days,
			RiskTier:    tier,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StockValue > entries[j].StockValue
	})

	var cumulative float64
	for i := range entries {
		cumulative += entries[i].StockValue

		pct := 100.0
		if totalValue > 0 {
			pct = cumulative / totalValue * 100
		}
		entries[i].CumulativePct = pct

		switch {
		case pct <= abcCategoryACutoff:
			entries[i].Category = domain.ABCCategoryA
		case pct <= abcCategoryBCutoff:
			entries[i].Category = domain.ABCCategoryB
		default:
			entries[i].Category = domain.ABCCategoryC
		}
	}

	return entries
}

// RiskTier classifies days-of-stock-remaining for one item. With no
// measurable daily demand the stock never depletes; days is reported as -1
// and the tier is low.
func RiskTier(kind domain.ItemKind, currentStock, avgDailyDemand float64) (float64, string) {
	if avgDailyDemand <= 0 {
		return -1, domain.RiskLow
	}

	days := currentStock / avgDailyDemand

	bounds, ok := riskThresholds[kind]
	if !ok {
		bounds = riskThresholds[domain.ItemKindRawMaterial]
	}

	switch {
	case days <= bounds[0]:
		return days, domain.RiskCritical
	case days <= bounds[1]:
		return days, domain.RiskHigh
	case days <= bounds[2]:
		return days, domain.RiskMedium
	default:
		return days, domain.RiskLow
	}
}
