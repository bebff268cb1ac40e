package model

import (
	"time"
)

type Product struct {
	ID         uint64 `gorm:"primaryKey"`
	StoreID    uint64 `gorm:"not null;index:idx_store_product,unique" json:"store_id"`
	ExternalID string `gorm:"type:varchar(255);not null;index:idx_store_product,unique;column:external_id" json:"external_id"`

	Title    string   `gorm:"type:varchar(500);not null" json:"title"`
	Category string   `gorm:"type:varchar(255);index" json:"category"`
	Brand    string   `gorm:"type:varchar(255)" json:"brand"`
	Price    *float64 `gorm:"type:decimal(10,2)" json:"price"`
	ImageURL string   `gorm:"type:varchar(1000)" json:"image_url"`

	IsActive bool `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	InStock  bool `gorm:"type:tinyint(1);not null;default:1" json:"in_stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
