package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/consts"
	"Vitrine/internal/pkg/redis"
	"Vitrine/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

const apiKeyCacheTTL = 5 * time.Minute

type StoreService interface {
	ResolveAPIKey(ctx context.Context, apiKey string) (*model.Store, error)
	GetStore(ctx context.Context, storeID uint64) (*model.Store, error)
}

type StoreServiceImpl struct {
	storeRepo repository.StoreRepo
}

func NewStoreService(storeRepo repository.StoreRepo) StoreService {
	return &StoreServiceImpl{
		storeRepo: storeRepo,
	}
}

// ResolveAPIKey API Key 换店铺，带短 TTL 缓存，认证在每个请求上
func (s *StoreServiceImpl) ResolveAPIKey(ctx context.Context, apiKey string) (*model.Store, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyInvalid
	}

	cacheKey := consts.StoreAPIKeyKey + apiKey
	cached, err := redis.GetValue(ctx, cacheKey)
	if err == nil && cached != "" {
		var store model.Store
		if err := json.Unmarshal([]byte(cached), &store); err == nil {
			return &store, nil
		}
	}

	store, err := s.storeRepo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if store == nil || !store.IsActive {
		return nil, ErrAPIKeyInvalid
	}

	if bytes, err := json.Marshal(store); err == nil {
		if err := redis.SetWithExpiration(ctx, cacheKey, string(bytes), apiKeyCacheTTL); err != nil {
			log.WarnContext(ctx, "cache store by api key failed", "store_id", store.ID, "err", err)
		}
	}

	return store, nil
}

func (s *StoreServiceImpl) GetStore(ctx context.Context, storeID uint64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}
	return store, nil
}
