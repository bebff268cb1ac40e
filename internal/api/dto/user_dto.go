package dto

import "time"

// CreateUserDTO 注册店铺侧用户
type CreateUserDTO struct {
	ExternalID string `json:"user_id" binding:"required"`
	Email      string `json:"email"`
}

// UserDTO 用户及其互动聚合
type UserDTO struct {
	ExternalID        string    `json:"user_id"`
	Email             string    `json:"email"`
	TotalInteractions int       `json:"total_interactions"`
	TotalPurchases    int       `json:"total_purchases"`
	TotalValue        float64   `json:"total_value"`
	AvgOrderValue     float64   `json:"avg_order_value"`
	FirstSeen         time.Time `json:"first_seen"`
	LastSeen          time.Time `json:"last_seen"`
}

// BehaviorProfileDTO 行为画像
type BehaviorProfileDTO struct {
	TotalInteractions      int                `json:"total_interactions"`
	TotalViews             int                `json:"total_views"`
	TotalPurchases         int                `json:"total_purchases"`
	TotalCartAdds          int                `json:"total_cart_adds"`
	AvgSessionDuration     float64            `json:"avg_session_duration"`
	AvgTimeBetweenSessions float64            `json:"avg_time_between_sessions"`
	LastActiveAt           *time.Time         `json:"last_active_at"`
	PreferredCategories    map[string]float64 `json:"preferred_categories"`
	PricePreference        interface{}        `json:"price_preference"`
	BrowsingPattern        string             `json:"browsing_pattern"`
	PurchaseFrequency      string             `json:"purchase_frequency"`
	AvgOrderValue          float64            `json:"avg_order_value"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// RecProfileDTO 推荐效果画像
type RecProfileDTO struct {
	TotalShown            int        `json:"total_shown"`
	TotalClicked          int        `json:"total_clicked"`
	TotalPurchased        int        `json:"total_purchased"`
	OverallCTR            float64    `json:"overall_ctr"`
	OverallConversionRate float64    `json:"overall_conversion_rate"`
	LastRecommendationAt  *time.Time `json:"last_recommendation_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}
