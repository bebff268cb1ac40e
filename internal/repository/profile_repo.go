package repository

import (
	"Vitrine/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BehaviorProfileRepo interface {
	Save(ctx context.Context, profile *model.UserBehaviorProfile) error
	Get(ctx context.Context, storeID, userID uint64) (*model.UserBehaviorProfile, error)
}

type behaviorProfileRepoImpl struct {
	db *gorm.DB
}

func NewBehaviorProfileRepo(db *gorm.DB) BehaviorProfileRepo {
	return &behaviorProfileRepoImpl{db: db}
}

// Save 画像整体覆盖写入
func (r *behaviorProfileRepoImpl) Save(ctx context.Context, profile *model.UserBehaviorProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_interactions",
			"total_views",
			"total_purchases",
			"total_cart_adds",
			"avg_session_duration",
			"avg_time_between_sessions",
			"last_active_at",
			"preferred_categories",
			"price_preference",
			"browsing_pattern",
			"purchase_frequency",
			"avg_order_value",
			"updated_at",
		}),
	}).Create(profile).Error
}

func (r *behaviorProfileRepoImpl) Get(ctx context.Context, storeID, userID uint64) (*model.UserBehaviorProfile, error) {
	var profile model.UserBehaviorProfile
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

type RecProfileRepo interface {
	Save(ctx context.Context, profile *model.UserRecommendationProfile) error
	Get(ctx context.Context, storeID, userID uint64) (*model.UserRecommendationProfile, error)
}

type recProfileRepoImpl struct {
	db *gorm.DB
}

func NewRecProfileRepo(db *gorm.DB) RecProfileRepo {
	return &recProfileRepoImpl{db: db}
}

func (r *recProfileRepoImpl) Save(ctx context.Context, profile *model.UserRecommendationProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_shown",
			"total_clicked",
			"total_purchased",
			"overall_ctr",
			"overall_conversion_rate",
			"last_recommendation_at",
			"updated_at",
		}),
	}).Create(profile).Error
}

func (r *recProfileRepoImpl) Get(ctx context.Context, storeID, userID uint64) (*model.UserRecommendationProfile, error) {
	var profile model.UserRecommendationProfile
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ?", storeID, userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
