package model

import (
	"time"
)

// 推荐算法闭集
const (
	AlgorithmPopularity    = "popularity"
	AlgorithmCollaborative = "collaborative_filtering"
	AlgorithmContent       = "content_based"
	AlgorithmHybrid        = "hybrid"
)

// IsAlgorithm 校验算法标识
func IsAlgorithm(a string) bool {
	switch a {
	case AlgorithmPopularity, AlgorithmCollaborative, AlgorithmContent, AlgorithmHybrid:
		return true
	}
	return false
}

// Recommendation 推荐结果。唯一键 (store, user, session, product, algorithm)，
// 同键重算走 Upsert，曝光/点击/购买计数保持不变。
type Recommendation struct {
	ID        uint64 `gorm:"primaryKey"`
	StoreID   uint64 `gorm:"not null;index:idx_rec_key,unique" json:"store_id"`
	UserID    uint64 `gorm:"not null;default:0;index:idx_rec_key,unique" json:"user_id"`
	SessionID string `gorm:"type:varchar(255);not null;default:'';index:idx_rec_key,unique" json:"session_id"`
	ProductID uint64 `gorm:"not null;index:idx_rec_key,unique" json:"product_id"`
	Algorithm string `gorm:"type:varchar(50);not null;index:idx_rec_key,unique" json:"algorithm"`

	Score       float64 `gorm:"not null" json:"score"`
	Rank        int     `gorm:"not null;column:rank_position" json:"rank"`
	Explanation string  `gorm:"type:text" json:"explanation"`
	Context     JSONMap `gorm:"type:json" json:"context"`

	// 反馈计数，只增不减，仅由反馈回路写
	ShownCount    int `gorm:"not null;default:0" json:"shown_count"`
	ClickCount    int `gorm:"not null;default:0" json:"click_count"`
	PurchaseCount int `gorm:"not null;default:0" json:"purchase_count"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// ClickThroughRate 百分比，shown 为 0 时恒为 0
func (r *Recommendation) ClickThroughRate() float64 {
	if r.ShownCount == 0 {
		return 0
	}
	return float64(r.ClickCount) / float64(r.ShownCount) * 100
}

// ConversionRate 百分比，shown 为 0 时恒为 0
func (r *Recommendation) ConversionRate() float64 {
	if r.ShownCount == 0 {
		return 0
	}
	return float64(r.PurchaseCount) / float64(r.ShownCount) * 100
}

// IsExpired 过期判定
func (r *Recommendation) IsExpired(now time.Time) bool {
	return r.ExpiresAt.Before(now)
}
