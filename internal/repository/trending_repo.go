package repository

import (
	"Vitrine/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TrendingRepo interface {
	Upsert(ctx context.Context, entry *model.TrendingProduct) error
	ListByWindow(ctx context.Context, storeID uint64, window string, limit int) ([]*model.TrendingProduct, error)
}

type trendingRepoImpl struct {
	db *gorm.DB
}

func NewTrendingRepo(db *gorm.DB) TrendingRepo {
	return &trendingRepoImpl{db: db}
}

// Upsert 同 (store, product, window) 整体覆盖，不做累加
func (r *trendingRepoImpl) Upsert(ctx context.Context, entry *model.TrendingProduct) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "product_id"}, {Name: "calculation_window"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"score",
			"velocity",
			"rank_position",
			"calculated_at",
		}),
	}).Create(entry).Error
}

func (r *trendingRepoImpl) ListByWindow(ctx context.Context, storeID uint64, window string, limit int) ([]*model.TrendingProduct, error) {
	entries := make([]*model.TrendingProduct, 0)
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND calculation_window = ?", storeID, window).
		Order("rank_position ASC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}
