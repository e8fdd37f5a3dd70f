// internal/export/csv_test.go
package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/domain"
)

func TestWriteOptimizationCSV(t *testing.T) {
	report := &domain.OptimizationReport{
		GeneratedAt: time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
		Items: []domain.ItemOptimization{
			{
				ItemID:            1,
				Name:              "corn feed",
				Kind:              domain.ItemKindRawMaterial,
				CurrentStock:      120,
				OptimalStockLevel: 980.5,
				InvestmentChange:  25815,
				AvgDailyDemand:    10,
				RiskTier:          domain.RiskCritical,
				Priority:          domain.PriorityCritical,
				Recommendation: domain.ReplenishmentRecommendation{
					EOQ:          domain.EOQResult{EOQ: 950},
					SafetyStock:  30.5,
					ReorderPoint: 100.5,
					ActionNeeded: true,
					Urgency:      domain.PriorityHigh,
				},
			},
		},
		Excluded: []domain.ExcludedItem{
			{ItemID: 9, Name: "new premix", Reason: "insufficient consumption history"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOptimizationCSV(&buf, report))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	header := rows[0]
	assert.Len(t, header, 16)
	assert.Equal(t, "date", header[0])
	assert.Equal(t, "status", header[15])

	optimized := rows[1]
	assert.Equal(t, "2026-08-15", optimized[0])
	assert.Equal(t, "1", optimized[1])
	assert.Equal(t, "corn feed", optimized[2])
	assert.Equal(t, "raw_material", optimized[3])
	assert.Equal(t, "980.50", optimized[5])
	assert.Equal(t, "950.00", optimized[8])
	assert.Equal(t, "critical", optimized[12])
	assert.Equal(t, "true", optimized[14])
	assert.Equal(t, "optimized", optimized[15])

	excluded := rows[2]
	assert.Equal(t, "9", excluded[1])
	assert.Equal(t, "new premix", excluded[2])
	assert.Empty(t, excluded[4])
	assert.Equal(t, "excluded: insufficient consumption history", excluded[15])
}

func TestWriteOptimizationCSVEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOptimizationCSV(&buf, &domain.OptimizationReport{GeneratedAt: time.Now()}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
