// internal/repository/postgres/query_guard.go
package postgres

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// queryGuard bounds concurrent repository queries so an optimization fan-out
// across many items cannot exhaust the connection pool.
type queryGuard struct {
	sem *semaphore.Weighted
}

func newQueryGuard(limit int64) queryGuard {
	return queryGuard{sem: semaphore.NewWeighted(limit)}
}

func (g queryGuard) do(ctx context.Context, fn func() error) error {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire query slot: %w", err)
	}
	defer g.sem.Release(1)
	return fn()
}
