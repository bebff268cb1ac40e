package model

import (
	"time"
)

// SimilarProduct 预计算的相似商品，单向 source→target
type SimilarProduct struct {
	ID              uint64 `gorm:"primaryKey"`
	StoreID         uint64 `gorm:"not null;index:idx_sim_key,unique" json:"store_id"`
	SourceProductID uint64 `gorm:"not null;index:idx_sim_key,unique" json:"source_product_id"`
	TargetProductID uint64 `gorm:"not null;index:idx_sim_key,unique" json:"target_product_id"`

	SimilarityScore float64    `gorm:"not null" json:"similarity_score"`
	SimilarityType  string     `gorm:"type:varchar(50);not null" json:"similarity_type"`
	FeaturesUsed    StringList `gorm:"type:json;not null" json:"features_used"`

	CalculatedAt time.Time `gorm:"autoUpdateTime" json:"calculated_at"`
}

func (SimilarProduct) TableName() string {
	return "similar_products"
}

// ContentSimilarity 同类目基础 0.7，价格越接近加成越接近 0.3
func ContentSimilarity(sourcePrice, targetPrice *float64) float64 {
	score := 0.7
	if sourcePrice != nil && targetPrice != nil && *sourcePrice > 0 {
		diff := *sourcePrice - *targetPrice
		if diff < 0 {
			diff = -diff
		}
		score += (1 - diff / *sourcePrice) * 0.3
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}
