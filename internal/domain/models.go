// internal/domain/models.go
package domain

import "time"

// ItemKind distinguishes how consumption events are sourced for an item.
type ItemKind string

const (
	ItemKindRawMaterial  ItemKind = "raw_material"
	ItemKindFinishedGood ItemKind = "finished_good"
)

// Item is inventory master data, owned by the external store and
// read-only to the engine.
type Item struct {
	ID                int64    `json:"id" db:"id"`
	Name              string   `json:"name" db:"name"`
	Kind              ItemKind `json:"kind" db:"kind"`
	UnitCost          float64  `json:"unit_cost" db:"unit_cost"`
	CurrentStock      float64  `json:"current_stock" db:"current_stock"`
	LowStockThreshold float64  `json:"low_stock_threshold" db:"low_stock_threshold"`
}

// ConsumptionEvent is a single dated quantity event before daily aggregation.
type ConsumptionEvent struct {
	Date     time.Time `json:"date" db:"event_date"`
	Quantity float64   `json:"quantity" db:"quantity"`
}

// Observation is one aggregated daily consumption amount. After building,
// dates are unique per item and strictly ascending.
type Observation struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// Confidence labels a forecast's self-reported reliability.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ForecastPoint is one future-period prediction. Bounds are optional;
// predictions are never negative.
type ForecastPoint struct {
	PeriodOffset int        `json:"period_offset"`
	Date         time.Time  `json:"date"`
	Predicted    float64    `json:"predicted"`
	Lower        *float64   `json:"lower,omitempty"`
	Upper        *float64   `json:"upper,omitempty"`
	Confidence   Confidence `json:"confidence"`
}

// MethodResult is the output of a single forecast method.
type MethodResult struct {
	Method      string             `json:"method"`
	Points      []ForecastPoint    `json:"points"`
	Diagnostics map[string]float64 `json:"diagnostics,omitempty"`
}

// SkippedMethod records a method that could not produce a forecast.
// Absence is reported explicitly so it can never be read as a zero forecast.
type SkippedMethod struct {
	Method string `json:"method"`
	Reason string `json:"reason"`
}

// EnsemblePoint extends a forecast point with cross-method dispersion and
// the number of methods that contributed to the period.
type EnsemblePoint struct {
	ForecastPoint
	Uncertainty     float64 `json:"uncertainty"`
	MethodAgreement int     `json:"method_agreement"`
}

// EnsembleResult is the reconciled multi-method forecast.
type EnsembleResult struct {
	Points []EnsemblePoint `json:"points"`
}

// AccuracyMetrics holds backtest errors for one method.
type AccuracyMetrics struct {
	MAE     float64 `json:"mae"`
	MAPE    float64 `json:"mape"`
	Bias    float64 `json:"bias"`
	Samples int     `json:"samples"`
}

// AccuracyReport maps method name to holdout metrics. Diagnostic only;
// it never gates forecast emission.
type AccuracyReport struct {
	ValidationDays int                        `json:"validation_days"`
	Methods        map[string]AccuracyMetrics `json:"methods"`
}

// VariabilityReport describes demand dispersion over the full series.
type VariabilityReport struct {
	Mean                float64            `json:"mean"`
	StdDev              float64            `json:"std_dev"`
	CV                  float64            `json:"cv"`
	Classification      string             `json:"classification"`
	WeeklyPattern       map[string]float64 `json:"weekly_pattern"`
	HighVariabilityDays int                `json:"high_variability_days"`
	ObservationCount    int                `json:"observation_count"`
}

// SensitivityEntry reports how the EOQ moves when one input is perturbed.
type SensitivityEntry struct {
	Parameter    string  `json:"parameter"`
	ChangePct    float64 `json:"change_pct"`
	EOQ          float64 `json:"eoq"`
	EOQChangePct float64 `json:"eoq_change_pct"`
}

// EOQResult is the economic order quantity and its cost breakdown.
type EOQResult struct {
	EOQ                float64            `json:"eoq"`
	AnnualDemand       float64            `json:"annual_demand"`
	OrdersPerYear      float64            `json:"orders_per_year"`
	DaysBetweenOrders  float64            `json:"days_between_orders"`
	AnnualHoldingCost  float64            `json:"annual_holding_cost"`
	AnnualOrderingCost float64            `json:"annual_ordering_cost"`
	TotalAnnualCost    float64            `json:"total_annual_cost"`
	Sensitivity        []SensitivityEntry `json:"sensitivity"`
}

// ReplenishmentRecommendation combines EOQ with buffer policy for one item.
type ReplenishmentRecommendation struct {
	EOQ          EOQResult `json:"eoq"`
	SafetyStock  float64   `json:"safety_stock"`
	ReorderPoint float64   `json:"reorder_point"`
	LeadTimeDays float64   `json:"lead_time_days"`
	ActionNeeded bool      `json:"action_needed"`
	Urgency      string    `json:"urgency"`
}

// ABC categories and risk tiers for value/risk classification.
const (
	ABCCategoryA = "A"
	ABCCategoryB = "B"
	ABCCategoryC = "C"

	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
)

// ClassificationEntry ranks one item by stock value and depletion risk.
// DaysOfStock is -1 when the item shows no measurable daily demand.
type ClassificationEntry struct {
	ItemID        int64   `json:"item_id"`
	Name          string  `json:"name"`
	StockValue    float64 `json:"stock_value"`
	CumulativePct float64 `json:"cumulative_pct"`
	Category      string  `json:"category"`
	DaysOfStock   float64 `json:"days_of_stock"`
	RiskTier      string  `json:"risk_tier"`
}

// ForecastReport is the full per-item forecast output.
type ForecastReport struct {
	ItemID      int64              `json:"item_id"`
	ItemKind    ItemKind           `json:"item_kind"`
	HorizonDays int                `json:"horizon_days"`
	Methods     []MethodResult     `json:"methods"`
	Skipped     []SkippedMethod    `json:"skipped,omitempty"`
	Ensemble    *EnsembleResult    `json:"ensemble,omitempty"`
	Accuracy    *AccuracyReport    `json:"accuracy,omitempty"`
	Variability *VariabilityReport `json:"variability,omitempty"`
}

// ReplenishmentReport is the per-item replenishment output.
type ReplenishmentReport struct {
	ItemID         int64                       `json:"item_id"`
	Recommendation ReplenishmentRecommendation `json:"recommendation"`
}

// Priority levels for the optimization plan.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// ItemOptimization is the replenishment outcome for one item.
type ItemOptimization struct {
	ItemID            int64                       `json:"item_id"`
	Name              string                      `json:"name"`
	Kind              ItemKind                    `json:"kind"`
	CurrentStock      float64                     `json:"current_stock"`
	OptimalStockLevel float64                     `json:"optimal_stock_level"`
	InvestmentChange  float64                     `json:"investment_change"`
	AvgDailyDemand    float64                     `json:"avg_daily_demand"`
	RiskTier          string                      `json:"risk_tier"`
	Priority          string                      `json:"priority"`
	Recommendation    ReplenishmentRecommendation `json:"recommendation"`
}

// ExcludedItem records an item skipped from optimization, with the reason.
type ExcludedItem struct {
	ItemID int64  `json:"item_id"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// OptimizationSummary aggregates the whole run.
type OptimizationSummary struct {
	TotalItems            int            `json:"total_items"`
	OptimizedItems        int            `json:"optimized_items"`
	ExcludedItems         int            `json:"excluded_items"`
	PriorityCounts        map[string]int `json:"priority_counts"`
	TotalInvestmentChange float64        `json:"total_investment_change"`
}

// PlanPhase groups items into one rollout phase.
type PlanPhase struct {
	Phase         int     `json:"phase"`
	ItemIDs       []int64 `json:"item_ids"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// OptimizationReport is the full output of an optimization run.
type OptimizationReport struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	Items          []ItemOptimization    `json:"items"`
	Excluded       []ExcludedItem        `json:"excluded"`
	Classification []ClassificationEntry `json:"classification"`
	Summary        OptimizationSummary   `json:"summary"`
	Plan           []PlanPhase           `json:"implementation_plan"`
}
