// internal/repository/postgres/query_guard_test.go
package postgres

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryGuardBoundsConcurrency(t *testing.T) {
	const limit = 3
	guard := newQueryGuard(limit)

	var (
		inFlight int64
		peak     int64
		mu       sync.Mutex
		wg       sync.WaitGroup
	)

	gate := make(chan struct{})
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := guard.do(context.Background(), func() error {
				n := atomic.AddInt64(&inFlight, 1)
				mu.Lock()
				if n > peak {
					peak = n
				}
				mu.Unlock()
				<-gate
				atomic.AddInt64(&inFlight, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}

	close(gate)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(limit))
	assert.Greater(t, peak, int64(0))
}

func TestQueryGuardHonorsContextCancellation(t *testing.T) {
	guard := newQueryGuard(1)

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = guard.do(context.Background(), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := guard.do(ctx, func() error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
}
