// internal/cache/report_cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
)

const (
	forecastKeyPrefix     = "farmstock:forecast"
	optimizationKeyPrefix = "farmstock:optimization"
	reportScanBatchSize   = 100
)

// ReportCache stores computed reports keyed by item, horizon and snapshot
// date. Reports are derived data; invalidation just forces recomputation.
type ReportCache interface {
	GetForecast(ctx context.Context, itemID int64, horizon int) (*domain.ForecastReport, bool, error)
	SetForecast(ctx context.Context, itemID int64, horizon int, report *domain.ForecastReport) error
	GetOptimization(ctx context.Context) (*domain.OptimizationReport, bool, error)
	SetOptimization(ctx context.Context, report *domain.OptimizationReport) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

// NewReportCache returns a redis-backed cache, or the no-op cache when
// caching is disabled or redis is unreachable. Caching is an optimization,
// never a requirement.
func NewReportCache(cfg config.CacheConfig) ReportCache {
	if !cfg.Enabled {
		return &noopReportCache{}
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("report cache unavailable, falling back to no-op")
		return &noopReportCache{}
	}

	return &redisReportCache{client: client, ttl: ttl}
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) GetForecast(ctx context.Context, itemID int64, horizon int) (*domain.ForecastReport, bool, error) {
	var report domain.ForecastReport
	ok, err := c.get(ctx, forecastKey(itemID, horizon), &report)
	if !ok || err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *redisReportCache) SetForecast(ctx context.Context, itemID int64, horizon int, report *domain.ForecastReport) error {
	return c.set(ctx, forecastKey(itemID, horizon), report)
}

func (c *redisReportCache) GetOptimization(ctx context.Context) (*domain.OptimizationReport, bool, error) {
	var report domain.OptimizationReport
	ok, err := c.get(ctx, optimizationKey(), &report)
	if !ok || err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *redisReportCache) SetOptimization(ctx context.Context, report *domain.OptimizationReport) error {
	return c.set(ctx, optimizationKey(), report)
}

func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	if err := deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, reportScanBatchSize); err != nil {
		return err
	}
	return deleteKeysWithPrefix(ctx, c.client, optimizationKeyPrefix, reportScanBatchSize)
}

func (c *redisReportCache) get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode cached report: %w", err)
	}
	return true, nil
}

func (c *redisReportCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode report cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Keys are date-scoped so yesterday's reports age out naturally even when a
// stale TTL survives a restart.
func forecastKey(itemID int64, horizon int) string {
	return fmt.Sprintf("%s:%s:%d:%d", forecastKeyPrefix, time.Now().UTC().Format("2006-01-02"), itemID, horizon)
}

func optimizationKey() string {
	return fmt.Sprintf("%s:%s", optimizationKeyPrefix, time.Now().UTC().Format("2006-01-02"))
}

func (n *noopReportCache) GetForecast(ctx context.Context, itemID int64, horizon int) (*domain.ForecastReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetForecast(ctx context.Context, itemID int64, horizon int, report *domain.ForecastReport) error {
	return nil
}

func (n *noopReportCache) GetOptimization(ctx context.Context) (*domain.OptimizationReport, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) SetOptimization(ctx context.Context, report *domain.OptimizationReport) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}
