package model

import (
	"time"
)

// User 店铺侧用户，ExternalID 为店铺自己的用户标识
type User struct {
	ID         uint64 `gorm:"primaryKey"`
	StoreID    uint64 `gorm:"not null;index:idx_store_external,unique" json:"store_id"`
	ExternalID string `gorm:"type:varchar(255);not null;index:idx_store_external,unique;column:external_id" json:"external_id"`
	Email      string `gorm:"type:varchar(255)" json:"email"`

	// 互动统计，由 update_engagement_metrics 回写
	TotalInteractions int     `gorm:"not null;default:0" json:"total_interactions"`
	TotalPurchases    int     `gorm:"not null;default:0" json:"total_purchases"`
	TotalValue        float64 `gorm:"type:decimal(12,2);not null;default:0" json:"total_value"`
	AvgOrderValue     float64 `gorm:"type:decimal(10,2);not null;default:0" json:"avg_order_value"`

	IsActive  bool      `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	FirstSeen time.Time `gorm:"autoCreateTime" json:"first_seen"`
	LastSeen  time.Time `gorm:"autoUpdateTime" json:"last_seen"`
}

func (User) TableName() string {
	return "users"
}

type UserSession struct {
	ID        uint64 `gorm:"primaryKey"`
	StoreID   uint64 `gorm:"not null;index:idx_store_session" json:"store_id"`
	UserID    uint64 `gorm:"not null;default:0;index:idx_user_start" json:"user_id"` // 0 表示匿名会话
	SessionID string `gorm:"type:varchar(255);not null;index:idx_store_session" json:"session_id"`

	StartTime       time.Time  `gorm:"autoCreateTime;index:idx_user_start" json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds int        `gorm:"not null;default:0" json:"duration_seconds"`

	PageViews         int     `gorm:"not null;default:0" json:"page_views"`
	ProductsViewed    int     `gorm:"not null;default:0" json:"products_viewed"`
	TotalInteractions int     `gorm:"not null;default:0" json:"total_interactions"`
	AddedToCart       bool    `gorm:"type:tinyint(1);not null;default:0" json:"added_to_cart"`
	Purchased         bool    `gorm:"type:tinyint(1);not null;default:0" json:"purchased"`
	TotalValue        float64 `gorm:"type:decimal(12,2);not null;default:0" json:"total_value"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}

// IsOpen 会话是否仍在进行
func (s *UserSession) IsOpen() bool {
	return s.EndTime == nil
}
