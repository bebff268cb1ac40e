package model

import (
	"time"

	"gorm.io/gorm"
)

// 互动类型闭集
const (
	InteractionView           = "view"
	InteractionClick          = "click"
	InteractionDetailView     = "detail_view"
	InteractionCartAdd        = "cart_add"
	InteractionCartRemove     = "cart_remove"
	InteractionWishlistAdd    = "wishlist_add"
	InteractionWishlistRemove = "wishlist_remove"
	InteractionPurchase       = "purchase"
	InteractionReview         = "review"
	InteractionShare          = "share"
	InteractionLike           = "like"
	InteractionDislike        = "dislike"
	InteractionSearch         = "search"
	InteractionFilter         = "filter"
)

// DefaultEngagementWeight 未列出类型的权重
const DefaultEngagementWeight = 1.0

var engagementWeights = map[string]float64{
	InteractionPurchase:    5.0,
	InteractionReview:      3.0,
	InteractionCartAdd:     2.0,
	InteractionWishlistAdd: 1.5,
	InteractionLike:        1.0,
	InteractionDetailView:  0.5,
	InteractionDislike:     0.5,
	InteractionClick:       0.3,
	InteractionView:        0.1,
}

// OverrideEngagementWeights 启动期用配置覆盖默认权重，key 已在配置校验时拦下非法类型
func OverrideEngagementWeights(overrides map[string]float64) {
	for k, v := range overrides {
		engagementWeights[k] = v
	}
}

// EngagementWeight 权重是类型的纯函数，每次写入时重新计算，绝不独立存储
func EngagementWeight(interactionType string) float64 {
	if w, ok := engagementWeights[interactionType]; ok {
		return w
	}
	return DefaultEngagementWeight
}

// IsInteractionType 校验类型是否属于闭集
func IsInteractionType(t string) bool {
	switch t {
	case InteractionView, InteractionClick, InteractionDetailView,
		InteractionCartAdd, InteractionCartRemove,
		InteractionWishlistAdd, InteractionWishlistRemove,
		InteractionPurchase, InteractionReview, InteractionShare,
		InteractionLike, InteractionDislike,
		InteractionSearch, InteractionFilter:
		return true
	}
	return false
}

type Interaction struct {
	ID        uint64  `gorm:"primaryKey"`
	StoreID   uint64  `gorm:"not null;index:idx_store_created" json:"store_id"`
	UserID    uint64  `gorm:"not null;default:0;index:idx_user_created" json:"user_id"`    // 0 表示匿名
	ProductID uint64  `gorm:"not null;default:0;index:idx_product_created" json:"product_id"` // 0 表示无商品
	SessionID uint64  `gorm:"not null;default:0" json:"session_id"`

	Type   string  `gorm:"type:varchar(20);not null;column:interaction_type" json:"interaction_type"`
	Value  float64 `gorm:"type:decimal(10,2);not null;default:1" json:"value"`
	Weight float64 `gorm:"not null;default:1" json:"weight"`

	// 商品上下文快照
	ProductCategory string   `gorm:"type:varchar(255)" json:"product_category"`
	ProductPrice    *float64 `gorm:"type:decimal(10,2)" json:"product_price"`

	Metadata JSONMap `gorm:"type:json" json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_store_created;index:idx_user_created;index:idx_product_created" json:"created_at"`
}

func (Interaction) TableName() string {
	return "interactions"
}

// BeforeSave 权重永远由类型推导
func (i *Interaction) BeforeSave(_ *gorm.DB) error {
	i.Weight = EngagementWeight(i.Type)
	return nil
}
