// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ternaklab/farmstock/internal/domain"
)

// WriteOptimizationCSV writes one row per optimized item plus rows for the
// excluded ones, in the layout the reporting sheet expects.
func WriteOptimizationCSV(w io.Writer, report *domain.OptimizationReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"date",
		"item_id",
		"name",
		"kind",
		"current_stock",
		"optimal_stock_level",
		"investment_change",
		"avg_daily_demand",
		"eoq",
		"safety_stock",
		"reorder_point",
		"risk_tier",
		"priority",
		"urgency",
		"action_needed",
		"status",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	date := report.GeneratedAt.Format("2006-01-02")
	for _, item := range report.Items {
		rec := []string{
			date,
			strconv.FormatInt(item.ItemID, 10),
			item.Name,
			string(item.Kind),
			formatFloat(item.CurrentStock),
			formatFloat(item.OptimalStockLevel),
			formatFloat(item.InvestmentChange),
			formatFloat(item.AvgDailyDemand),
			formatFloat(item.Recommendation.EOQ.EOQ),
			formatFloat(item.Recommendation.SafetyStock),
			formatFloat(item.Recommendation.ReorderPoint),
			item.RiskTier,
			item.Priority,
			item.Recommendation.Urgency,
			strconv.FormatBool(item.Recommendation.ActionNeeded),
			"optimized",
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	for _, excluded := range report.Excluded {
		rec := []string{
			date,
			strconv.FormatInt(excluded.ItemID, 10),
			excluded.Name,
			"", "", "", "", "", "", "", "", "", "", "", "",
			fmt.Sprintf("excluded: %s", excluded.Reason),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
