package job

import (
	"Vitrine/internal/pkg/consts"
	"Vitrine/internal/pkg/logger"
	"Vitrine/internal/pkg/redis"
	"Vitrine/internal/pkg/util"
	"Vitrine/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type BehaviorProfileJob struct {
	profileSvc service.BehaviorProfileService
}

func NewBehaviorProfileJob(profileSvc service.BehaviorProfileService) *BehaviorProfileJob {
	return &BehaviorProfileJob{
		profileSvc: profileSvc,
	}
}

func (s *BehaviorProfileJob) Run() {
	traceID := "job-profile-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.ProfileDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.ProfileDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get profile dirty set error", "err", err)
		return
	}

	userIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert profile set to int slice error", "err", err)
		return
	}

	log.InfoContext(ctx, "BehaviorProfileJob processing", "user_count", len(userIDs))

	for _, uid := range userIDs {
		if err := s.profileSvc.Rebuild(ctx, uid); err != nil {
			log.ErrorContext(ctx, "rebuild behavior profile error", "uid", uid, "err", err)
			continue
		}
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete profile processing set error", "err", err)
	}

	log.InfoContext(ctx, "BehaviorProfileJob finished", "processed_count", len(userIDs))
}
