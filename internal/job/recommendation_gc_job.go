package job

import (
	"Vitrine/internal/api/config"
	"Vitrine/internal/pkg/logger"
	"Vitrine/internal/pkg/mongo"
	"Vitrine/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

type RecommendationGCJob struct {
	cfg       config.RecommendConfig
	recRepo   repository.RecommendationRepo
	eventRepo mongo.InteractionEventRepo
}

func NewRecommendationGCJob(
	cfg config.RecommendConfig,
	recRepo repository.RecommendationRepo,
	eventRepo mongo.InteractionEventRepo,
) *RecommendationGCJob {
	return &RecommendationGCJob{
		cfg:       cfg,
		recRepo:   recRepo,
		eventRepo: eventRepo,
	}
}

// Run 清理保留期外的推荐行与原始事件归档
func (s *RecommendationGCJob) Run() {
	traceID := "job-gc-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	now := time.Now()
	cutoff := now.AddDate(0, 0, -s.cfg.RetentionDays)

	deleted, err := s.recRepo.DeleteStale(ctx, cutoff, now)
	if err != nil {
		log.ErrorContext(ctx, "delete stale recommendations error", "err", err)
		return
	}

	archived, err := s.eventRepo.DeleteBefore(ctx, cutoff)
	if err != nil {
		log.ErrorContext(ctx, "delete archived events error", "err", err)
	}

	log.InfoContext(ctx, "RecommendationGCJob finished",
		"recommendations_deleted", deleted, "events_deleted", archived)
}
