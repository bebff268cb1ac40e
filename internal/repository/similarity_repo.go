package repository

import (
	"Vitrine/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SimilarityRepo interface {
	Upsert(ctx context.Context, entry *model.SimilarProduct) error
	ListBySource(ctx context.Context, storeID, sourceProductID uint64, limit int) ([]*model.SimilarProduct, error)
}

type similarityRepoImpl struct {
	db *gorm.DB
}

func NewSimilarityRepo(db *gorm.DB) SimilarityRepo {
	return &similarityRepoImpl{db: db}
}

func (r *similarityRepoImpl) Upsert(ctx context.Context, entry *model.SimilarProduct) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "source_product_id"}, {Name: "target_product_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"similarity_score",
			"similarity_type",
			"features_used",
			"calculated_at",
		}),
	}).Create(entry).Error
}

func (r *similarityRepoImpl) ListBySource(ctx context.Context, storeID, sourceProductID uint64, limit int) ([]*model.SimilarProduct, error) {
	entries := make([]*model.SimilarProduct, 0)
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND source_product_id = ?", storeID, sourceProductID).
		Order("similarity_score DESC, target_product_id ASC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}
