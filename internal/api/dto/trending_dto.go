package dto

import "time"

// TrendingQueryDTO 榜单查询参数
type TrendingQueryDTO struct {
	Window string `form:"window"`
	Limit  int    `form:"limit"`
}

// TrendingProductDTO 榜单条目
type TrendingProductDTO struct {
	Product      *ProductDTO `json:"product"`
	Window       string      `json:"window"`
	Score        float64     `json:"score"`
	Velocity     float64     `json:"velocity"`
	Rank         int         `json:"rank"`
	CalculatedAt time.Time   `json:"calculated_at"`
}
