package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type BehaviorProfileService interface {
	Rebuild(ctx context.Context, userID uint64) error
}

type BehaviorProfileServiceImpl struct {
	userRepo        repository.UserRepo
	interactionRepo repository.InteractionRepo
	sessionRepo     repository.SessionRepo
	profileRepo     repository.BehaviorProfileRepo
}

func NewBehaviorProfileService(
	userRepo repository.UserRepo,
	interactionRepo repository.InteractionRepo,
	sessionRepo repository.SessionRepo,
	profileRepo repository.BehaviorProfileRepo,
) BehaviorProfileService {
	return &BehaviorProfileServiceImpl{
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		sessionRepo:     sessionRepo,
		profileRepo:     profileRepo,
	}
}

// Rebuild 画像整体重算。用户不存在时静默返回，
// 脏集合里残留的已删除用户不该让任务报错。
func (s *BehaviorProfileServiceImpl) Rebuild(ctx context.Context, userID uint64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	stats, err := s.interactionRepo.UserStats(ctx, user.StoreID, userID)
	if err != nil {
		return err
	}

	sessionStats, err := s.sessionRepo.Stats(ctx, user.StoreID, userID)
	if err != nil {
		return err
	}

	purchaseStats, err := s.interactionRepo.PurchaseStats(ctx, user.StoreID, userID)
	if err != nil {
		return err
	}

	categoryWeights, err := s.interactionRepo.CategoryWeights(ctx, user.StoreID, userID, 10)
	if err != nil {
		return err
	}
	preferred := make(model.WeightMap, len(categoryWeights))
	for _, w := range categoryWeights {
		preferred[w.Category] = w.TotalWeight
	}

	profile := &model.UserBehaviorProfile{
		StoreID:             user.StoreID,
		UserID:              userID,
		TotalInteractions:   int(stats.Total),
		TotalViews:          int(stats.Views),
		TotalPurchases:      int(stats.Purchases),
		TotalCartAdds:       int(stats.CartAdds),
		AvgSessionDuration:  sessionStats.AvgDuration,
		LastActiveAt:        stats.LastActive,
		PreferredCategories: preferred,
		BrowsingPattern:     browsingPattern(stats),
		PurchaseFrequency:   purchaseFrequency(stats.Purchases),
		AvgOrderValue:       purchaseStats.Avg,
		UpdatedAt:           time.Now(),
	}

	if sessionStats.Count > 1 && sessionStats.FirstStart != nil && sessionStats.LastStart != nil {
		span := sessionStats.LastStart.Sub(*sessionStats.FirstStart)
		profile.AvgTimeBetweenSessions = span.Hours() / 24 / float64(sessionStats.Count-1)
	}

	if purchaseStats.Count > 0 {
		profile.PricePreference = &model.PricePreference{
			Min: purchaseStats.Min,
			Max: purchaseStats.Max,
			Avg: purchaseStats.Avg,
		}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return err
	}

	log.InfoContext(ctx, "behavior profile rebuilt",
		"store_id", user.StoreID, "user_id", userID, "interactions", stats.Total)
	return nil
}

// purchaseFrequency 购买次数分层标签
func purchaseFrequency(purchases int64) string {
	switch {
	case purchases > 10:
		return model.PurchaseFrequent
	case purchases > 3:
		return model.PurchaseOccasional
	default:
		return model.PurchaseRare
	}
}

// browsingPattern 浏览占比超八成算 explorer，购买/浏览比超一成算 focused
func browsingPattern(stats *repository.UserStats) string {
	if stats.Total == 0 {
		return model.BrowsingBrowser
	}
	if float64(stats.Views) > 0.8*float64(stats.Total) {
		return model.BrowsingExplorer
	}
	views := stats.Views
	if views == 0 {
		views = 1
	}
	if float64(stats.Purchases)/float64(views) > 0.1 {
		return model.BrowsingFocused
	}
	return model.BrowsingBrowser
}
