// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/repository"
)

// maxConcurrentQueries caps in-flight repository reads below the pool's
// 25 open connections.
const maxConcurrentQueries = 10

type inventoryRepository struct {
	db    *sqlx.DB
	guard queryGuard
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db, guard: newQueryGuard(maxConcurrentQueries)}
}

func (r *inventoryRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	query := `
		SELECT id, name, kind, unit_cost, current_stock, low_stock_threshold
		FROM inventory_items
		WHERE id = $1
	`

	var item domain.Item
	err := r.guard.do(ctx, func() error {
		return r.db.GetContext(ctx, &item, query, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, id)
		}
		return nil, fmt.Errorf("error getting item %d: %w", id, err)
	}

	return &item, nil
}

func (r *inventoryRepository) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT id, name, kind, unit_cost, current_stock, low_stock_threshold
		FROM inventory_items
		ORDER BY id
	`

	var items []domain.Item
	err := r.guard.do(ctx, func() error {
		return r.db.SelectContext(ctx, &items, query)
	})
	if err != nil {
		return nil, fmt.Errorf("error listing items: %w", err)
	}

	return items, nil
}

// GetConsumptionEvents aggregates one quantity per calendar day in SQL.
// Raw materials consume purchase quantities, finished feed consumes issued
// quantities, and egg items consume produced usable-unit counts; egg rows
// are unioned in because laying sheds record them in their own table.
func (r *inventoryRepository) GetConsumptionEvents(ctx context.Context, itemID int64, kind domain.ItemKind, start, end time.Time) ([]domain.ConsumptionEvent, error) {
	var query string
	switch kind {
	case domain.ItemKindRawMaterial:
		query = `
			SELECT purchase_date::date AS event_date, SUM(quantity) AS quantity
			FROM feed_purchases
			WHERE item_id = $1 AND purchase_date >= $2 AND purchase_date <= $3
			GROUP BY purchase_date::date
		`
	case domain.ItemKindFinishedGood:
		query = `
			SELECT event_date, SUM(quantity) AS quantity
			FROM (
				SELECT issue_date::date AS event_date, quantity
				FROM feed_issues
				WHERE item_id = $1 AND issue_date >= $2 AND issue_date <= $3
				UNION ALL
				SELECT production_date::date AS event_date, usable_units AS quantity
				FROM egg_production
				WHERE item_id = $1 AND production_date >= $2 AND production_date <= $3
			) events
			GROUP BY event_date
		`
	default:
		return nil, fmt.Errorf("unknown item kind %q", kind)
	}

	var events []domain.ConsumptionEvent
	err := r.guard.do(ctx, func() error {
		return r.db.SelectContext(ctx, &events, query, itemID, start, end)
	})
	if err != nil {
		return nil, fmt.Errorf("error getting consumption events for item %d: %w", itemID, err)
	}

	return events, nil
}
