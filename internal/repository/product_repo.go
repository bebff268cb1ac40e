package repository

import (
	"Vitrine/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductRepo interface {
	GetByID(ctx context.Context, storeID, id uint64) (*model.Product, error)
	GetByExternalID(ctx context.Context, storeID uint64, externalID string) (*model.Product, error)
	GetByIDs(ctx context.Context, storeID uint64, ids []uint64) ([]*model.Product, error)
	ListActive(ctx context.Context, storeID uint64) ([]*model.Product, error)
	ListByCategories(ctx context.Context, storeID uint64, categories []string, excludeIDs []uint64, limit int) ([]*model.Product, error)
	ListSimilarCandidates(ctx context.Context, storeID uint64, category string, minPrice, maxPrice *float64, excludeID uint64, limit int) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return &productRepoImpl{db: db}
}

func (r *productRepoImpl) GetByID(ctx context.Context, storeID, id uint64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepoImpl) GetByExternalID(ctx context.Context, storeID uint64, externalID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND external_id = ?", storeID, externalID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepoImpl) GetByIDs(ctx context.Context, storeID uint64, ids []uint64) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(ids))
	if len(ids) == 0 {
		return products, nil
	}
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND id IN ?", storeID, ids).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

func (r *productRepoImpl) ListActive(ctx context.Context, storeID uint64) ([]*model.Product, error) {
	products := make([]*model.Product, 0)
	result := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Order("id ASC").
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

// ListByCategories 内容推荐候选，按 id 升序保证同数据下输出确定
func (r *productRepoImpl) ListByCategories(ctx context.Context, storeID uint64, categories []string, excludeIDs []uint64, limit int) ([]*model.Product, error) {
	products := make([]*model.Product, 0)
	if len(categories) == 0 {
		return products, nil
	}
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ? AND category IN ?", storeID, true, categories)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	result := query.Order("id ASC").Limit(limit).Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}

// ListSimilarCandidates 同类目价格带候选，价格未知时价格带不设限
func (r *productRepoImpl) ListSimilarCandidates(ctx context.Context, storeID uint64, category string, minPrice, maxPrice *float64, excludeID uint64, limit int) ([]*model.Product, error) {
	products := make([]*model.Product, 0)
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ? AND category = ? AND id <> ?", storeID, true, category, excludeID)
	if minPrice != nil && maxPrice != nil {
		query = query.Where("price BETWEEN ? AND ?", *minPrice, *maxPrice)
	}
	result := query.Order("id ASC").Limit(limit).Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}
	return products, nil
}
