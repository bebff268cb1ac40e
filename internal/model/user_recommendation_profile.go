package model

import (
	"time"
)

// UserRecommendationProfile 推荐效果聚合，每次反馈后从当前总量整体重算，避免漂移
type UserRecommendationProfile struct {
	ID      uint64 `gorm:"primaryKey"`
	StoreID uint64 `gorm:"not null;index:idx_recprofile_key,unique" json:"store_id"`
	UserID  uint64 `gorm:"not null;index:idx_recprofile_key,unique" json:"user_id"`

	TotalShown     int `gorm:"not null;default:0" json:"total_shown"`
	TotalClicked   int `gorm:"not null;default:0" json:"total_clicked"`
	TotalPurchased int `gorm:"not null;default:0" json:"total_purchased"`

	OverallCTR            float64 `gorm:"not null;default:0;column:overall_ctr" json:"overall_ctr"`
	OverallConversionRate float64 `gorm:"not null;default:0" json:"overall_conversion_rate"`

	LastRecommendationAt *time.Time `json:"last_recommendation_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (UserRecommendationProfile) TableName() string {
	return "user_recommendation_profiles"
}

// RecomputeRates 派生比率整体重算，shown 为 0 时恒为 0
func (p *UserRecommendationProfile) RecomputeRates() {
	if p.TotalShown == 0 {
		p.OverallCTR = 0
		p.OverallConversionRate = 0
		return
	}
	p.OverallCTR = float64(p.TotalClicked) / float64(p.TotalShown) * 100
	p.OverallConversionRate = float64(p.TotalPurchased) / float64(p.TotalShown) * 100
}
