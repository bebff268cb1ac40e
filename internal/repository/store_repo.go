package repository

import (
	"Vitrine/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type StoreRepo interface {
	GetByID(ctx context.Context, id uint64) (*model.Store, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*model.Store, error)
	ListActive(ctx context.Context) ([]*model.Store, error)
	Create(ctx context.Context, store *model.Store) error
}

type storeRepoImpl struct {
	db *gorm.DB
}

func NewStoreRepo(db *gorm.DB) StoreRepo {
	return &storeRepoImpl{db: db}
}

func (r *storeRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepoImpl) GetByAPIKey(ctx context.Context, apiKey string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).Where("api_key = ?", apiKey).First(&store).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

func (r *storeRepoImpl) ListActive(ctx context.Context) ([]*model.Store, error) {
	stores := make([]*model.Store, 0)
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&stores)
	if result.Error != nil {
		return nil, result.Error
	}
	return stores, nil
}

func (r *storeRepoImpl) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}
