// internal/repository/inventory_repository.go
package repository

import (
	"context"
	"time"

	"github.com/ternaklab/farmstock/internal/domain"
)

// InventoryRepository is the engine's view of the external inventory store:
// item master data plus daily-aggregated consumption events.
type InventoryRepository interface {
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	GetConsumptionEvents(ctx context.Context, itemID int64, kind domain.ItemKind, start, end time.Time) ([]domain.ConsumptionEvent, error)
}
