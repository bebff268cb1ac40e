package job

import (
	"Vitrine/internal/pkg/logger"
	"Vitrine/internal/repository"
	"Vitrine/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type SimilarityJob struct {
	storeRepo     repository.StoreRepo
	similaritySvc service.SimilarityService
}

func NewSimilarityJob(storeRepo repository.StoreRepo, similaritySvc service.SimilarityService) *SimilarityJob {
	return &SimilarityJob{
		storeRepo:     storeRepo,
		similaritySvc: similaritySvc,
	}
}

func (s *SimilarityJob) Run() {
	traceID := "job-similarity-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	stores, err := s.storeRepo.ListActive(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list active stores error", "err", err)
		return
	}

	// 预算是全量扫描，限制并发免得把 MySQL 打满
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	for _, store := range stores {
		storeID := store.ID
		g.Go(func() error {
			if err := s.similaritySvc.Precompute(gctx, storeID); err != nil {
				log.ErrorContext(gctx, "precompute similarity error", "store_id", storeID, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.InfoContext(ctx, "SimilarityJob finished", "store_count", len(stores))
}
