// internal/service/forecast_service.go
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ternaklab/farmstock/internal/cache"
	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/optimize"
	"github.com/ternaklab/farmstock/internal/repository"
)

type ForecastService struct {
	orch  *optimize.Orchestrator
	cfg   config.EngineConfig
	cache cache.ReportCache
}

func NewForecastService(repo repository.InventoryRepository, cfg config.EngineConfig, cacheImpl cache.ReportCache) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ForecastService{
		orch:  optimize.NewOrchestrator(repo, cfg),
		cfg:   cfg,
		cache: cacheImpl,
	}
}

func (s *ForecastService) GetForecast(ctx context.Context, itemID int64, horizon int) (*domain.ForecastReport, error) {
	if horizon <= 0 {
		horizon = s.cfg.HorizonDays
	}

	if report, ok, err := s.cache.GetForecast(ctx, itemID, horizon); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Int64("item_id", itemID).Msg("forecast: cache get failed")
	}

	report, err := s.orch.ForecastItem(ctx, itemID, horizon)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetForecast(ctx, itemID, horizon, report); err != nil {
		log.Warn().Err(err).Int64("item_id", itemID).Msg("forecast: cache set failed")
	}

	return report, nil
}

func (s *ForecastService) GetReplenishment(ctx context.Context, itemID int64) (*domain.ReplenishmentReport, error) {
	return s.orch.RecommendItem(ctx, itemID)
}
