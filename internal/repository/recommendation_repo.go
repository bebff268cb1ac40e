package repository

import (
	"Vitrine/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RecommendationRepo interface {
	Upsert(ctx context.Context, rec *model.Recommendation) error
	GetByID(ctx context.Context, id uint64) (*model.Recommendation, error)
	ListBySubject(ctx context.Context, storeID, userID uint64, sessionID, algorithm string, includeExpired bool, limit int) ([]*model.Recommendation, error)
	IncrementShown(ctx context.Context, id uint64) error
	IncrementClick(ctx context.Context, id uint64) error
	IncrementPurchase(ctx context.Context, id uint64) error
	SumCountersByUser(ctx context.Context, storeID, userID uint64) (shown, clicked, purchased int64, err error)
	DeleteStale(ctx context.Context, createdBefore, now time.Time) (int64, error)
}

type recommendationRepoImpl struct {
	db *gorm.DB
}

func NewRecommendationRepo(db *gorm.DB) RecommendationRepo {
	return &recommendationRepoImpl{db: db}
}

// Upsert 同键重算只覆盖打分相关列并重置过期时间，反馈计数保持不变
func (r *recommendationRepoImpl) Upsert(ctx context.Context, rec *model.Recommendation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "user_id"}, {Name: "session_id"},
			{Name: "product_id"}, {Name: "algorithm"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"score",
			"rank_position",
			"explanation",
			"context",
			"expires_at",
		}),
	}).Create(rec).Error
}

func (r *recommendationRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListBySubject 默认排除已过期条目
func (r *recommendationRepoImpl) ListBySubject(ctx context.Context, storeID, userID uint64, sessionID, algorithm string, includeExpired bool, limit int) ([]*model.Recommendation, error) {
	recs := make([]*model.Recommendation, 0)
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND user_id = ? AND session_id = ?", storeID, userID, sessionID)
	if algorithm != "" {
		query = query.Where("algorithm = ?", algorithm)
	}
	if !includeExpired {
		query = query.Where("expires_at > ?", time.Now())
	}
	result := query.Order("rank_position ASC, score DESC").Limit(limit).Find(&recs)
	if result.Error != nil {
		return nil, result.Error
	}
	return recs, nil
}

func (r *recommendationRepoImpl) IncrementShown(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "shown_count")
}

func (r *recommendationRepoImpl) IncrementClick(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "click_count")
}

func (r *recommendationRepoImpl) IncrementPurchase(ctx context.Context, id uint64) error {
	return r.increment(ctx, id, "purchase_count")
}

// increment 单列原子自增，与重算写入的打分列互不覆盖
func (r *recommendationRepoImpl) increment(ctx context.Context, id uint64, column string) error {
	return r.db.WithContext(ctx).Model(&model.Recommendation{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1")).Error
}

func (r *recommendationRepoImpl) SumCountersByUser(ctx context.Context, storeID, userID uint64) (int64, int64, int64, error) {
	var sums struct {
		Shown     *int64
		Clicked   *int64
		Purchased *int64
	}
	err := r.db.WithContext(ctx).Model(&model.Recommendation{}).
		Select("SUM(shown_count) AS shown, SUM(click_count) AS clicked, SUM(purchase_count) AS purchased").
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Scan(&sums).Error
	if err != nil {
		return 0, 0, 0, err
	}
	var shown, clicked, purchased int64
	if sums.Shown != nil {
		shown = *sums.Shown
	}
	if sums.Clicked != nil {
		clicked = *sums.Clicked
	}
	if sums.Purchased != nil {
		purchased = *sums.Purchased
	}
	return shown, clicked, purchased, nil
}

// DeleteStale 清理 30 天前创建或已过期的推荐
func (r *recommendationRepoImpl) DeleteStale(ctx context.Context, createdBefore, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ? OR expires_at < ?", createdBefore, now).
		Delete(&model.Recommendation{})
	return result.RowsAffected, result.Error
}
