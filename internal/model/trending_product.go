package model

import (
	"time"
)

// 趋势计算时间窗闭集
const (
	Window1h  = "1h"
	Window6h  = "6h"
	Window24h = "24h"
	Window7d  = "7d"
)

// TrendingWindows 固定计算顺序
var TrendingWindows = []string{Window1h, Window6h, Window24h, Window7d}

// WindowDuration 窗口标识转时长
func WindowDuration(window string) (time.Duration, bool) {
	switch window {
	case Window1h:
		return time.Hour, true
	case Window6h:
		return 6 * time.Hour, true
	case Window24h:
		return 24 * time.Hour, true
	case Window7d:
		return 7 * 24 * time.Hour, true
	}
	return 0, false
}

// TrendingProduct 每 (store, product, window) 唯一，重算整体覆盖
type TrendingProduct struct {
	ID        uint64 `gorm:"primaryKey"`
	StoreID   uint64 `gorm:"not null;index:idx_trend_key,unique" json:"store_id"`
	ProductID uint64 `gorm:"not null;index:idx_trend_key,unique" json:"product_id"`
	Window    string `gorm:"type:varchar(20);not null;index:idx_trend_key,unique;column:calculation_window" json:"window"`

	Score    float64 `gorm:"not null" json:"score"`
	Velocity float64 `gorm:"not null" json:"velocity"` // 窗口后半段互动占比
	Rank     int     `gorm:"not null;column:rank_position" json:"rank"`

	CalculatedAt time.Time `gorm:"autoUpdateTime" json:"calculated_at"`
}

func (TrendingProduct) TableName() string {
	return "trending_products"
}

// TrendingScore 互动数 + 5×购买数 + 2×后半段互动数
func TrendingScore(interactions, purchases, velocityCount int64) float64 {
	return float64(interactions) + float64(purchases)*5 + float64(velocityCount)*2
}

// TrendingVelocity 总数为 0 时恒为 0
func TrendingVelocity(velocityCount, interactions int64) float64 {
	if interactions == 0 {
		return 0
	}
	return float64(velocityCount) / float64(interactions)
}
