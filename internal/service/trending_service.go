package service

import (
	"Vitrine/internal/api/config"
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/consts"
	"Vitrine/internal/pkg/redis"
	"Vitrine/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"time"

	"github.com/goccy/go-json"
)

const trendingCacheTTL = 5 * time.Minute

// TrendingItem 榜单条目及其商品快照，商品可能已下架为 nil
type TrendingItem struct {
	Entry   *model.TrendingProduct
	Product *model.Product
}

type TrendingService interface {
	Recalculate(ctx context.Context, storeID uint64) error
	GetTrending(ctx context.Context, storeID uint64, window string, limit int) ([]*model.TrendingProduct, error)
	GetTrendingItems(ctx context.Context, storeID uint64, window string, limit int) ([]*TrendingItem, error)
}

type TrendingServiceImpl struct {
	cfg             config.RecommendConfig
	interactionRepo repository.InteractionRepo
	trendingRepo    repository.TrendingRepo
	productRepo     repository.ProductRepo
}

func NewTrendingService(
	cfg config.RecommendConfig,
	interactionRepo repository.InteractionRepo,
	trendingRepo repository.TrendingRepo,
	productRepo repository.ProductRepo,
) TrendingService {
	return &TrendingServiceImpl{
		cfg:             cfg,
		interactionRepo: interactionRepo,
		trendingRepo:    trendingRepo,
		productRepo:     productRepo,
	}
}

// Recalculate 对固定的四个时间窗逐一重算趋势榜
func (s *TrendingServiceImpl) Recalculate(ctx context.Context, storeID uint64) error {
	for _, window := range model.TrendingWindows {
		if err := s.recalculateWindow(ctx, storeID, window); err != nil {
			return err
		}
	}
	return nil
}

func (s *TrendingServiceImpl) recalculateWindow(ctx context.Context, storeID uint64, window string) error {
	duration, ok := model.WindowDuration(window)
	if !ok {
		return ErrWindowInvalid
	}

	now := time.Now()
	since := now.Add(-duration)
	halfSince := now.Add(-duration / 2)

	// 先按原始互动量多取一批，打完分再截断，避免漏掉购买占比高的商品
	aggs, err := s.interactionRepo.WindowAggregates(ctx, storeID, since, halfSince, s.cfg.TrendingKeep*4)
	if err != nil {
		return err
	}

	type scored struct {
		productID uint64
		score     float64
		velocity  float64
	}
	entries := make([]scored, 0, len(aggs))
	for _, agg := range aggs {
		entries = append(entries, scored{
			productID: agg.ProductID,
			score:     model.TrendingScore(agg.InteractionCount, agg.PurchaseCount, agg.VelocityCount),
			velocity:  model.TrendingVelocity(agg.VelocityCount, agg.InteractionCount),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].productID < entries[j].productID
	})
	if len(entries) > s.cfg.TrendingKeep {
		entries = entries[:s.cfg.TrendingKeep]
	}

	rank := 0
	var prevScore float64
	for i, entry := range entries {
		if i == 0 || entry.score != prevScore {
			rank++
			prevScore = entry.score
		}
		err := s.trendingRepo.Upsert(ctx, &model.TrendingProduct{
			StoreID:   storeID,
			ProductID: entry.productID,
			Window:    window,
			Score:     entry.score,
			Velocity:  entry.velocity,
			Rank:      rank,
		})
		if err != nil {
			return err
		}
	}

	cacheKey := trendingCacheKey(storeID, window)
	if err := redis.DeleteKey(ctx, cacheKey); err != nil {
		log.WarnContext(ctx, "invalidate trending cache failed", "key", cacheKey, "err", err)
	}

	log.InfoContext(ctx, "trending window recalculated",
		"store_id", storeID, "window", window, "entries", len(entries))
	return nil
}

// GetTrending 榜单读多算少，用 Redis 列表缓存 JSON 化的条目
func (s *TrendingServiceImpl) GetTrending(ctx context.Context, storeID uint64, window string, limit int) ([]*model.TrendingProduct, error) {
	if _, ok := model.WindowDuration(window); !ok {
		return nil, ErrWindowInvalid
	}
	if limit <= 0 || limit > s.cfg.TrendingKeep {
		limit = s.cfg.TrendingKeep
	}

	cacheKey := trendingCacheKey(storeID, window)
	cached, err := redis.GetList(ctx, cacheKey)
	if err == nil && len(cached) > 0 {
		entries := make([]*model.TrendingProduct, 0, len(cached))
		for _, raw := range cached {
			var entry model.TrendingProduct
			if err := json.Unmarshal([]byte(raw), &entry); err != nil {
				entries = nil
				break
			}
			entries = append(entries, &entry)
		}
		if len(entries) > 0 {
			if len(entries) > limit {
				entries = entries[:limit]
			}
			return entries, nil
		}
	}

	entries, err := s.trendingRepo.ListByWindow(ctx, storeID, window, s.cfg.TrendingKeep)
	if err != nil {
		return nil, err
	}

	if len(entries) > 0 {
		raw := make([]string, 0, len(entries))
		for _, entry := range entries {
			bytes, err := json.Marshal(entry)
			if err != nil {
				raw = nil
				break
			}
			raw = append(raw, string(bytes))
		}
		if raw != nil {
			if err := redis.SetListWithExpiration(ctx, cacheKey, raw, trendingCacheTTL); err != nil {
				log.WarnContext(ctx, "cache trending window failed", "key", cacheKey, "err", err)
			}
		}
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetTrendingItems 榜单条目连同商品快照一起返回
func (s *TrendingServiceImpl) GetTrendingItems(ctx context.Context, storeID uint64, window string, limit int) ([]*TrendingItem, error) {
	entries, err := s.GetTrending(ctx, storeID, window, limit)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		productIDs = append(productIDs, entry.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, storeID, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint64]*model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	items := make([]*TrendingItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, &TrendingItem{
			Entry:   entry,
			Product: productByID[entry.ProductID],
		})
	}
	return items, nil
}

func trendingCacheKey(storeID uint64, window string) string {
	return fmt.Sprintf("%s%d:%s", consts.TrendingWindowKey, storeID, window)
}
