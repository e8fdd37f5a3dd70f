// internal/service/optimize_service.go
package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ternaklab/farmstock/internal/cache"
	"github.com/ternaklab/farmstock/internal/config"
	"github.com/ternaklab/farmstock/internal/domain"
	"github.com/ternaklab/farmstock/internal/export"
	"github.com/ternaklab/farmstock/internal/optimize"
	"github.com/ternaklab/farmstock/internal/repository"
	"github.com/ternaklab/farmstock/internal/storage"
)

type OptimizationService struct {
	orch  *optimize.Orchestrator
	cache cache.ReportCache
	store storage.ObjectStorage
}

// NewOptimizationService wires the orchestrator with an optional report
// cache and an optional object store for publishing CSV snapshots.
func NewOptimizationService(repo repository.InventoryRepository, cfg config.EngineConfig, cacheImpl cache.ReportCache, store storage.ObjectStorage) *OptimizationService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &OptimizationService{
		orch:  optimize.NewOrchestrator(repo, cfg),
		cache: cacheImpl,
		store: store,
	}
}

func (s *OptimizationService) Run(ctx context.Context) (*domain.OptimizationReport, error) {
	if report, ok, err := s.cache.GetOptimization(ctx); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("optimization: cache get failed")
	}

	report, err := s.orch.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetOptimization(ctx, report); err != nil {
		log.Warn().Err(err).Msg("optimization: cache set failed")
	}

	return report, nil
}

// InvalidateReports drops every cached report so the next request
// recomputes against fresh consumption data.
func (s *OptimizationService) InvalidateReports(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("invalidating cached reports: %w", err)
	}
	log.Info().Msg("cached reports invalidated")
	return nil
}

func (s *OptimizationService) GetClassification(ctx context.Context) ([]domain.ClassificationEntry, error) {
	report, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	return report.Classification, nil
}

// Publish uploads the report as CSV to the configured object store.
func (s *OptimizationService) Publish(ctx context.Context, report *domain.OptimizationReport) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("object storage is not configured")
	}

	var buf bytes.Buffer
	if err := export.WriteOptimizationCSV(&buf, report); err != nil {
		return "", fmt.Errorf("encoding optimization csv: %w", err)
	}

	key := fmt.Sprintf("reports/optimization/%s.csv", report.GeneratedAt.Format("20060102"))
	if err := s.store.UploadObject(ctx, key, buf.Bytes()); err != nil {
		return "", fmt.Errorf("uploading optimization report: %w", err)
	}

	log.Info().Str("key", key).Int("bytes", buf.Len()).Msg("optimization report published")
	return key, nil
}

// RunAndPublish runs a full optimization and publishes it when a store is
// configured. Used by the batch CLI.
func (s *OptimizationService) RunAndPublish(ctx context.Context) (*domain.OptimizationReport, error) {
	start := time.Now()
	report, err := s.Run(ctx)
	if err != nil {
		return nil, err
	}
	log.Info().Dur("took", time.Since(start)).Msg("optimization run finished")

	if s.store != nil {
		if _, err := s.Publish(ctx, report); err != nil {
			log.Warn().Err(err).Msg("optimization: publish failed")
		}
	}

	return report, nil
}
