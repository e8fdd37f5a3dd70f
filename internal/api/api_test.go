// internal/api/api_test.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/service"
)

type stubRepo struct {
	items  []domain.Item
	events map[int64][]domain.ConsumptionEvent
}

func (s *stubRepo) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	for _, item := range s.items {
		if item.ID == id {
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, id)
}

func (s *stubRepo) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.items, nil
}

func (s *stubRepo) GetConsumptionEvents(ctx context.Context, itemID int64, kind domain.ItemKind, start, end time.Time) ([]domain.ConsumptionEvent, error) {
	return s.events[itemID], nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	steady := make([]domain.ConsumptionEvent, 0, 40)
	for i := 40; i >= 1; i-- {
		steady = append(steady, domain.ConsumptionEvent{
			Date:     today.AddDate(0, 0, -i),
			Quantity: 10,
		})
	}

	repo := &stubRepo{
		items: []domain.Item{
			{ID: 1, Name: "corn feed", Kind: domain.ItemKindRawMaterial, UnitCost: 30, CurrentStock: 200},
			{ID: 2, Name: "new premix", Kind: domain.ItemKindRawMaterial, UnitCost: 10, CurrentStock: 50},
		},
		events: map[int64][]domain.ConsumptionEvent{
			1: steady,
			2: steady[:3],
		},
	}

	cfg := config.DefaultEngine()
	return NewRouter(&Services{
		ForecastService:     service.NewForecastService(repo, cfg, nil),
		OptimizationService: service.NewOptimizationService(repo, cfg, nil, nil),
	}, nil)
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetForecast(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/items/1/forecast?horizon=7")
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.ForecastReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, int64(1), report.ItemID)
	assert.Equal(t, 7, report.HorizonDays)
	require.NotNil(t, report.Ensemble)
	assert.Len(t, report.Ensemble.Points, 7)
}

func TestGetForecastUnknownItem(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/items/42/forecast")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetForecastBadItemID(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/items/abc/forecast")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetForecastInsufficientHistory(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/items/2/forecast")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetReplenishment(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/items/1/replenishment")
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.ReplenishmentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Greater(t, report.Recommendation.EOQ.EOQ, 0.0)
}

func TestGetOptimization(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/optimization")
	require.Equal(t, http.StatusOK, w.Code)

	var report domain.OptimizationReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Summary.TotalItems)
	assert.Equal(t, 1, report.Summary.OptimizedItems)
	assert.Equal(t, 1, report.Summary.ExcludedItems)
}

func TestGetClassification(t *testing.T) {
	w := doRequest(t, newTestRouter(), "/api/v1/classification")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []domain.ClassificationEntry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Items, 2)
}
