package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/mongo"
	"Vitrine/internal/repository"
	"context"
	"fmt"
	"sort"
	"time"
)

// 内存版仓储实现，只覆盖测试用到的行为

type fakeInteractionRepo struct {
	popular        []repository.ProductCount
	productIDs     []uint64
	neighbors      []repository.UserShared
	neighborCounts []repository.ProductCount
	categories     []repository.CategoryWeight
	aggs           []repository.TrendingAgg
	stats          *repository.UserStats
	purchase       *repository.PurchaseStats
	created        []*model.Interaction
}

func (f *fakeInteractionRepo) Create(_ context.Context, interaction *model.Interaction) error {
	f.created = append(f.created, interaction)
	return nil
}

func (f *fakeInteractionRepo) PopularProducts(_ context.Context, _ uint64, _ time.Time, limit int) ([]repository.ProductCount, error) {
	if len(f.popular) > limit {
		return f.popular[:limit], nil
	}
	return f.popular, nil
}

func (f *fakeInteractionRepo) ProductIDsByUser(_ context.Context, _, _ uint64) ([]uint64, error) {
	return f.productIDs, nil
}

func (f *fakeInteractionRepo) NeighborUsers(_ context.Context, _, _ uint64, _ []uint64, _ int) ([]repository.UserShared, error) {
	return f.neighbors, nil
}

func (f *fakeInteractionRepo) ProductCountsByUsers(_ context.Context, _ uint64, _, _ []uint64, _ int) ([]repository.ProductCount, error) {
	return f.neighborCounts, nil
}

func (f *fakeInteractionRepo) CategoryWeights(_ context.Context, _, _ uint64, _ int) ([]repository.CategoryWeight, error) {
	return f.categories, nil
}

func (f *fakeInteractionRepo) WindowAggregates(_ context.Context, _ uint64, _, _ time.Time, _ int) ([]repository.TrendingAgg, error) {
	return f.aggs, nil
}

func (f *fakeInteractionRepo) UserStats(_ context.Context, _, _ uint64) (*repository.UserStats, error) {
	if f.stats == nil {
		return &repository.UserStats{}, nil
	}
	return f.stats, nil
}

func (f *fakeInteractionRepo) PurchaseStats(_ context.Context, _, _ uint64) (*repository.PurchaseStats, error) {
	if f.purchase == nil {
		return &repository.PurchaseStats{}, nil
	}
	return f.purchase, nil
}

type fakeProductRepo struct {
	products   map[uint64]*model.Product
	byExternal map[string]*model.Product
	byCategory []*model.Product
	candidates []*model.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, _, id uint64) (*model.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByExternalID(_ context.Context, _ uint64, externalID string) (*model.Product, error) {
	return f.byExternal[externalID], nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, _ uint64, ids []uint64) ([]*model.Product, error) {
	result := make([]*model.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) ListActive(_ context.Context, _ uint64) ([]*model.Product, error) {
	result := make([]*model.Product, 0, len(f.products))
	for _, p := range f.products {
		result = append(result, p)
	}
	return result, nil
}

func (f *fakeProductRepo) ListByCategories(_ context.Context, _ uint64, _ []string, excludeIDs []uint64, _ int) ([]*model.Product, error) {
	excluded := make(map[uint64]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	result := make([]*model.Product, 0, len(f.byCategory))
	for _, p := range f.byCategory {
		if _, ok := excluded[p.ID]; !ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) ListSimilarCandidates(_ context.Context, _ uint64, _ string, _, _ *float64, excludeID uint64, _ int) ([]*model.Product, error) {
	result := make([]*model.Product, 0, len(f.candidates))
	for _, p := range f.candidates {
		if p.ID != excludeID {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeSimilarityRepo struct {
	entries []*model.SimilarProduct
}

func (f *fakeSimilarityRepo) Upsert(_ context.Context, entry *model.SimilarProduct) error {
	for i, existing := range f.entries {
		if existing.StoreID == entry.StoreID &&
			existing.SourceProductID == entry.SourceProductID &&
			existing.TargetProductID == entry.TargetProductID {
			f.entries[i] = entry
			return nil
		}
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeSimilarityRepo) ListBySource(_ context.Context, storeID, sourceProductID uint64, limit int) ([]*model.SimilarProduct, error) {
	result := make([]*model.SimilarProduct, 0)
	for _, entry := range f.entries {
		if entry.StoreID == storeID && entry.SourceProductID == sourceProductID {
			result = append(result, entry)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

type fakeRecRepo struct {
	nextID uint64
	rows   map[uint64]*model.Recommendation
}

func newFakeRecRepo() *fakeRecRepo {
	return &fakeRecRepo{rows: make(map[uint64]*model.Recommendation)}
}

func (f *fakeRecRepo) Upsert(_ context.Context, rec *model.Recommendation) error {
	for _, existing := range f.rows {
		if existing.StoreID == rec.StoreID && existing.UserID == rec.UserID &&
			existing.SessionID == rec.SessionID && existing.ProductID == rec.ProductID &&
			existing.Algorithm == rec.Algorithm {
			existing.Score = rec.Score
			existing.Rank = rec.Rank
			existing.Explanation = rec.Explanation
			existing.Context = rec.Context
			existing.ExpiresAt = rec.ExpiresAt
			rec.ID = existing.ID
			return nil
		}
	}
	f.nextID++
	rec.ID = f.nextID
	clone := *rec
	f.rows[rec.ID] = &clone
	return nil
}

func (f *fakeRecRepo) GetByID(_ context.Context, id uint64) (*model.Recommendation, error) {
	rec, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeRecRepo) ListBySubject(_ context.Context, storeID, userID uint64, sessionID, algorithm string, includeExpired bool, limit int) ([]*model.Recommendation, error) {
	result := make([]*model.Recommendation, 0)
	for _, rec := range f.rows {
		if rec.StoreID != storeID || rec.UserID != userID || rec.SessionID != sessionID {
			continue
		}
		if algorithm != "" && rec.Algorithm != algorithm {
			continue
		}
		if !includeExpired && rec.IsExpired(time.Now()) {
			continue
		}
		result = append(result, rec)
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (f *fakeRecRepo) IncrementShown(_ context.Context, id uint64) error {
	f.rows[id].ShownCount++
	return nil
}

func (f *fakeRecRepo) IncrementClick(_ context.Context, id uint64) error {
	f.rows[id].ClickCount++
	return nil
}

func (f *fakeRecRepo) IncrementPurchase(_ context.Context, id uint64) error {
	f.rows[id].PurchaseCount++
	return nil
}

func (f *fakeRecRepo) SumCountersByUser(_ context.Context, storeID, userID uint64) (int64, int64, int64, error) {
	var shown, clicked, purchased int64
	for _, rec := range f.rows {
		if rec.StoreID == storeID && rec.UserID == userID {
			shown += int64(rec.ShownCount)
			clicked += int64(rec.ClickCount)
			purchased += int64(rec.PurchaseCount)
		}
	}
	return shown, clicked, purchased, nil
}

func (f *fakeRecRepo) DeleteStale(_ context.Context, createdBefore, now time.Time) (int64, error) {
	var deleted int64
	for id, rec := range f.rows {
		if rec.CreatedAt.Before(createdBefore) || rec.ExpiresAt.Before(now) {
			delete(f.rows, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeRecProfileRepo struct {
	profiles map[string]*model.UserRecommendationProfile
}

func newFakeRecProfileRepo() *fakeRecProfileRepo {
	return &fakeRecProfileRepo{profiles: make(map[string]*model.UserRecommendationProfile)}
}

func recProfileKey(storeID, userID uint64) string {
	return fmt.Sprintf("%d:%d", storeID, userID)
}

func (f *fakeRecProfileRepo) Save(_ context.Context, profile *model.UserRecommendationProfile) error {
	clone := *profile
	f.profiles[recProfileKey(profile.StoreID, profile.UserID)] = &clone
	return nil
}

func (f *fakeRecProfileRepo) Get(_ context.Context, storeID, userID uint64) (*model.UserRecommendationProfile, error) {
	return f.profiles[recProfileKey(storeID, userID)], nil
}

type fakeUserRepo struct {
	users        map[uint64]*model.User
	emailUpdates int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint64) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByExternalID(_ context.Context, storeID uint64, externalID string) (*model.User, error) {
	for _, u := range f.users {
		if u.StoreID == storeID && u.ExternalID == externalID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = uint64(len(f.users) + 1)
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateEmail(_ context.Context, id uint64, email string) error {
	f.emailUpdates++
	if u, ok := f.users[id]; ok {
		u.Email = email
	}
	return nil
}

func (f *fakeUserRepo) UpdateEngagementMetrics(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) TouchLastSeen(_ context.Context, id uint64) error {
	if u, ok := f.users[id]; ok {
		u.LastSeen = time.Now()
	}
	return nil
}

type fakeTrendingRepo struct {
	entries []*model.TrendingProduct
}

func (f *fakeTrendingRepo) Upsert(_ context.Context, entry *model.TrendingProduct) error {
	for i, existing := range f.entries {
		if existing.StoreID == entry.StoreID && existing.ProductID == entry.ProductID &&
			existing.Window == entry.Window {
			entry.ID = existing.ID
			f.entries[i] = entry
			return nil
		}
	}
	entry.ID = uint64(len(f.entries) + 1)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeTrendingRepo) ListByWindow(_ context.Context, storeID uint64, window string, limit int) ([]*model.TrendingProduct, error) {
	result := make([]*model.TrendingProduct, 0)
	for _, entry := range f.entries {
		if entry.StoreID == storeID && entry.Window == window {
			result = append(result, entry)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Rank != result[j].Rank {
			return result[i].Rank < result[j].Rank
		}
		return result[i].ProductID < result[j].ProductID
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeSessionRepo struct {
	sessions map[string]*model.UserSession
	stats    *repository.SessionStats
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*model.UserSession)}
}

func (f *fakeSessionRepo) GetBySessionID(_ context.Context, _ uint64, sessionID string) (*model.UserSession, error) {
	return f.sessions[sessionID], nil
}

func (f *fakeSessionRepo) Create(_ context.Context, session *model.UserSession) error {
	session.ID = uint64(len(f.sessions) + 1)
	session.StartTime = time.Now()
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeSessionRepo) UpdateMetrics(_ context.Context, session *model.UserSession) error {
	f.sessions[session.SessionID] = session
	return nil
}

func (f *fakeSessionRepo) Stats(_ context.Context, _, _ uint64) (*repository.SessionStats, error) {
	if f.stats == nil {
		return &repository.SessionStats{}, nil
	}
	return f.stats, nil
}

type fakeStoreRepo struct {
	stores map[uint64]*model.Store
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id uint64) (*model.Store, error) {
	return f.stores[id], nil
}

func (f *fakeStoreRepo) GetByAPIKey(_ context.Context, apiKey string) (*model.Store, error) {
	for _, store := range f.stores {
		if store.APIKey == apiKey {
			return store, nil
		}
	}
	return nil, nil
}

func (f *fakeStoreRepo) ListActive(_ context.Context) ([]*model.Store, error) {
	result := make([]*model.Store, 0, len(f.stores))
	for _, store := range f.stores {
		if store.IsActive {
			result = append(result, store)
		}
	}
	return result, nil
}

func (f *fakeStoreRepo) Create(_ context.Context, store *model.Store) error {
	f.stores[store.ID] = store
	return nil
}

type fakeBehaviorProfileRepo struct {
	saved *model.UserBehaviorProfile
}

func (f *fakeBehaviorProfileRepo) Save(_ context.Context, profile *model.UserBehaviorProfile) error {
	f.saved = profile
	return nil
}

func (f *fakeBehaviorProfileRepo) Get(_ context.Context, _, _ uint64) (*model.UserBehaviorProfile, error) {
	return f.saved, nil
}

type fakeEventRepo struct {
	events []*mongo.InteractionEvent
}

func (f *fakeEventRepo) SaveEvent(_ context.Context, evt *mongo.InteractionEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeEventRepo) GetRecentByUser(_ context.Context, _ uint64, _ string, _ int) ([]*mongo.InteractionEvent, error) {
	return f.events, nil
}

func (f *fakeEventRepo) DeleteBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}
