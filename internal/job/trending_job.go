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

type TrendingJob struct {
	storeRepo   repository.StoreRepo
	trendingSvc service.TrendingService
}

func NewTrendingJob(storeRepo repository.StoreRepo, trendingSvc service.TrendingService) *TrendingJob {
	return &TrendingJob{
		storeRepo:   storeRepo,
		trendingSvc: trendingSvc,
	}
}

func (s *TrendingJob) Run() {
	traceID := "job-trending-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	stores, err := s.storeRepo.ListActive(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list active stores error", "err", err)
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, store := range stores {
		storeID := store.ID
		g.Go(func() error {
			if err := s.trendingSvc.Recalculate(gctx, storeID); err != nil {
				log.ErrorContext(gctx, "recalculate trending error", "store_id", storeID, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	log.InfoContext(ctx, "TrendingJob finished", "store_count", len(stores))
}
