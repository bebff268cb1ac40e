package model

import (
	"time"
)

type Store struct {
	ID       uint64 `gorm:"primaryKey"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Domain   string `gorm:"type:varchar(255);uniqueIndex;not null" json:"domain"`
	Platform string `gorm:"type:varchar(20);not null" json:"platform"` // shopify, woocommerce, bigcommerce, custom
	APIKey   string `gorm:"type:varchar(64);uniqueIndex;not null;column:api_key" json:"-"`

	IsActive   bool `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	IsVerified bool `gorm:"type:tinyint(1);not null;default:0" json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Store) TableName() string {
	return "stores"
}
