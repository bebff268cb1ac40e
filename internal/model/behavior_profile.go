package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// 行为画像标签
const (
	PurchaseFrequent   = "frequent"
	PurchaseOccasional = "occasional"
	PurchaseRare       = "rare"

	BrowsingExplorer = "explorer"
	BrowsingFocused  = "focused"
	BrowsingBrowser  = "browser"
)

// PricePreference 购买价格统计，无购买记录时整体为空
type PricePreference struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

func (p *PricePreference) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PricePreference) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New(fmt.Sprint("Failed to unmarshal JSON value:", value))
	}
	return json.Unmarshal(bytes, p)
}

// UserBehaviorProfile 用户行为画像，每次重算整体覆盖，不做增量修补
type UserBehaviorProfile struct {
	ID      uint64 `gorm:"primaryKey"`
	StoreID uint64 `gorm:"not null;index:idx_store_user,unique" json:"store_id"`
	UserID  uint64 `gorm:"not null;index:idx_store_user,unique" json:"user_id"`

	TotalInteractions int `gorm:"not null;default:0" json:"total_interactions"`
	TotalViews        int `gorm:"not null;default:0" json:"total_views"`
	TotalPurchases    int `gorm:"not null;default:0" json:"total_purchases"`
	TotalCartAdds     int `gorm:"not null;default:0" json:"total_cart_adds"`

	AvgSessionDuration     float64    `gorm:"not null;default:0" json:"avg_session_duration"`
	AvgTimeBetweenSessions float64    `gorm:"not null;default:0" json:"avg_time_between_sessions"` // days
	LastActiveAt           *time.Time `json:"last_active_at"`

	PreferredCategories WeightMap        `gorm:"type:json;not null" json:"preferred_categories"`
	PricePreference     *PricePreference `gorm:"type:json" json:"price_preference"`

	BrowsingPattern   string  `gorm:"type:varchar(50)" json:"browsing_pattern"`
	PurchaseFrequency string  `gorm:"type:varchar(50)" json:"purchase_frequency"`
	AvgOrderValue     float64 `gorm:"type:decimal(10,2);not null;default:0" json:"avg_order_value"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (UserBehaviorProfile) TableName() string {
	return "user_behavior_profiles"
}
