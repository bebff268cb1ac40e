package dto

// ProductDTO 商品快照
type ProductDTO struct {
	ExternalID string   `json:"product_id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Brand      string   `json:"brand"`
	Price      *float64 `json:"price"`
	ImageURL   string   `json:"image_url"`
	InStock    bool     `json:"in_stock"`
}
