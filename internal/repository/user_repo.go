package repository

import (
	"Vitrine/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByExternalID(ctx context.Context, storeID uint64, externalID string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateEmail(ctx context.Context, id uint64, email string) error
	UpdateEngagementMetrics(ctx context.Context, user *model.User) error
	TouchLastSeen(ctx context.Context, id uint64) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepoImpl{db: db}
}

func (r *userRepoImpl) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepoImpl) GetByExternalID(ctx context.Context, storeID uint64, externalID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND external_id = ?", storeID, externalID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) UpdateEmail(ctx context.Context, id uint64, email string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("email", email).Error
}

// UpdateEngagementMetrics 只回写聚合列
func (r *userRepoImpl) UpdateEngagementMetrics(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"total_interactions": user.TotalInteractions,
			"total_purchases":    user.TotalPurchases,
			"total_value":        user.TotalValue,
			"avg_order_value":    user.AvgOrderValue,
		}).Error
}

func (r *userRepoImpl) TouchLastSeen(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("last_seen", time.Now()).Error
}
