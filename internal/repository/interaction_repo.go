package repository

import (
	"Vitrine/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// ProductCount 按商品聚合的互动/购买计数
type ProductCount struct {
	ProductID        uint64
	InteractionCount int64
	PurchaseCount    int64
}

// UserShared 协同过滤的邻居用户
type UserShared struct {
	UserID      uint64
	SharedCount int64
}

// CategoryWeight 类目互动权重和
type CategoryWeight struct {
	Category    string
	TotalWeight float64
}

// TrendingAgg 趋势窗口聚合，VelocityCount 为窗口后半段互动数
type TrendingAgg struct {
	ProductID        uint64
	InteractionCount int64
	PurchaseCount    int64
	VelocityCount    int64
}

// UserStats 画像重算的互动计数
type UserStats struct {
	Total      int64
	Views      int64
	Purchases  int64
	CartAdds   int64
	LastActive *time.Time
}

// PurchaseStats 购买价格统计 (只统计 value > 0 的购买)
type PurchaseStats struct {
	Count int64
	Min   float64
	Max   float64
	Avg   float64
	Total float64
}

type InteractionRepo interface {
	Create(ctx context.Context, interaction *model.Interaction) error
	PopularProducts(ctx context.Context, storeID uint64, since time.Time, limit int) ([]ProductCount, error)
	ProductIDsByUser(ctx context.Context, storeID, userID uint64) ([]uint64, error)
	NeighborUsers(ctx context.Context, storeID, userID uint64, productIDs []uint64, limit int) ([]UserShared, error)
	ProductCountsByUsers(ctx context.Context, storeID uint64, userIDs, excludeProductIDs []uint64, limit int) ([]ProductCount, error)
	CategoryWeights(ctx context.Context, storeID, userID uint64, limit int) ([]CategoryWeight, error)
	WindowAggregates(ctx context.Context, storeID uint64, since, halfSince time.Time, limit int) ([]TrendingAgg, error)
	UserStats(ctx context.Context, storeID, userID uint64) (*UserStats, error)
	PurchaseStats(ctx context.Context, storeID, userID uint64) (*PurchaseStats, error)
}

type interactionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &interactionRepoImpl{db: db}
}

func (r *interactionRepoImpl) Create(ctx context.Context, interaction *model.Interaction) error {
	return r.db.WithContext(ctx).Create(interaction).Error
}

// PopularProducts 近 N 天热门商品，按 互动数 + 5×购买数 降序
func (r *interactionRepoImpl) PopularProducts(ctx context.Context, storeID uint64, since time.Time, limit int) ([]ProductCount, error) {
	counts := make([]ProductCount, 0)
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("product_id, COUNT(*) AS interaction_count, SUM(CASE WHEN interaction_type = 'purchase' THEN 1 ELSE 0 END) AS purchase_count").
		Where("store_id = ? AND product_id <> 0 AND created_at >= ?", storeID, since).
		Group("product_id").
		Order("interaction_count + purchase_count * 5 DESC, product_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *interactionRepoImpl) ProductIDsByUser(ctx context.Context, storeID, userID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Distinct("product_id").
		Where("store_id = ? AND user_id = ? AND product_id <> 0", storeID, userID).
		Order("product_id ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// NeighborUsers 与目标用户有共同互动商品的用户，按重合互动数降序
func (r *interactionRepoImpl) NeighborUsers(ctx context.Context, storeID, userID uint64, productIDs []uint64, limit int) ([]UserShared, error) {
	neighbors := make([]UserShared, 0)
	if len(productIDs) == 0 {
		return neighbors, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("user_id, COUNT(*) AS shared_count").
		Where("store_id = ? AND user_id <> 0 AND user_id <> ? AND product_id IN ?", storeID, userID, productIDs).
		Group("user_id").
		Order("shared_count DESC, user_id ASC").
		Limit(limit).
		Scan(&neighbors).Error
	if err != nil {
		return nil, err
	}
	return neighbors, nil
}

// ProductCountsByUsers 邻居用户互动过的候选商品，按 互动数 + 3×购买数 降序
func (r *interactionRepoImpl) ProductCountsByUsers(ctx context.Context, storeID uint64, userIDs, excludeProductIDs []uint64, limit int) ([]ProductCount, error) {
	counts := make([]ProductCount, 0)
	if len(userIDs) == 0 {
		return counts, nil
	}
	query := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("product_id, COUNT(*) AS interaction_count, SUM(CASE WHEN interaction_type = 'purchase' THEN 1 ELSE 0 END) AS purchase_count").
		Where("store_id = ? AND product_id <> 0 AND user_id IN ?", storeID, userIDs)
	if len(excludeProductIDs) > 0 {
		query = query.Where("product_id NOT IN ?", excludeProductIDs)
	}
	err := query.
		Group("product_id").
		Order("interaction_count + purchase_count * 3 DESC, product_id ASC").
		Limit(limit).
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// CategoryWeights 用户互动权重按类目求和，同分按类目名升序
func (r *interactionRepoImpl) CategoryWeights(ctx context.Context, storeID, userID uint64, limit int) ([]CategoryWeight, error) {
	weights := make([]CategoryWeight, 0)
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("product_category AS category, SUM(weight) AS total_weight").
		Where("store_id = ? AND user_id = ? AND product_id <> 0 AND product_category <> ''", storeID, userID).
		Group("product_category").
		Order("total_weight DESC, product_category ASC").
		Limit(limit).
		Scan(&weights).Error
	if err != nil {
		return nil, err
	}
	return weights, nil
}

// WindowAggregates 窗口内按商品聚合，VelocityCount 取后半段
func (r *interactionRepoImpl) WindowAggregates(ctx context.Context, storeID uint64, since, halfSince time.Time, limit int) ([]TrendingAgg, error) {
	aggs := make([]TrendingAgg, 0)
	err := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("product_id, COUNT(*) AS interaction_count, "+
			"SUM(CASE WHEN interaction_type = 'purchase' THEN 1 ELSE 0 END) AS purchase_count, "+
			"SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END) AS velocity_count", halfSince).
		Where("store_id = ? AND product_id <> 0 AND created_at >= ?", storeID, since).
		Group("product_id").
		Order("interaction_count DESC, product_id ASC").
		Limit(limit).
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}
	return aggs, nil
}

func (r *interactionRepoImpl) UserStats(ctx context.Context, storeID, userID uint64) (*UserStats, error) {
	var stats UserStats
	row := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("COUNT(*), "+
			"SUM(CASE WHEN interaction_type = 'view' THEN 1 ELSE 0 END), "+
			"SUM(CASE WHEN interaction_type = 'purchase' THEN 1 ELSE 0 END), "+
			"SUM(CASE WHEN interaction_type = 'cart_add' THEN 1 ELSE 0 END), "+
			"MAX(created_at)").
		Where("store_id = ? AND user_id = ?", storeID, userID).
		Row()
	var views, purchases, cartAdds *int64
	if err := row.Scan(&stats.Total, &views, &purchases, &cartAdds, &stats.LastActive); err != nil {
		return nil, err
	}
	if views != nil {
		stats.Views = *views
	}
	if purchases != nil {
		stats.Purchases = *purchases
	}
	if cartAdds != nil {
		stats.CartAdds = *cartAdds
	}
	return &stats, nil
}

func (r *interactionRepoImpl) PurchaseStats(ctx context.Context, storeID, userID uint64) (*PurchaseStats, error) {
	var stats PurchaseStats
	row := r.db.WithContext(ctx).Model(&model.Interaction{}).
		Select("COUNT(*), COALESCE(MIN(value), 0), COALESCE(MAX(value), 0), COALESCE(AVG(value), 0), COALESCE(SUM(value), 0)").
		Where("store_id = ? AND user_id = ? AND interaction_type = ? AND value > 0", storeID, userID, model.InteractionPurchase).
		Row()
	if err := row.Scan(&stats.Count, &stats.Min, &stats.Max, &stats.Avg, &stats.Total); err != nil {
		return nil, err
	}
	return &stats, nil
}
