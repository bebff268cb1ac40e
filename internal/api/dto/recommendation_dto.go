package dto

// RecommendationQueryDTO 推荐查询参数，user_id 与 session_id 至少带一个
type RecommendationQueryDTO struct {
	UserID    string `form:"user_id"`
	SessionID string `form:"session_id"`
	Algorithm string `form:"algorithm"`  // 缺省为 hybrid
	ProductID string `form:"product_id"` // 当前浏览商品，匿名请求的内容算法锚点
	Limit     int    `form:"max_results"`
}

// RecommendationDTO 单条推荐
type RecommendationDTO struct {
	RecommendationID uint64      `json:"recommendation_id"`
	Product          *ProductDTO `json:"product"`
	Algorithm        string      `json:"algorithm"`
	Score            float64     `json:"score"`
	Rank             int         `json:"rank"`
	Explanation      string      `json:"explanation"`
	ClickThroughRate float64     `json:"click_through_rate"`
	ConversionRate   float64     `json:"conversion_rate"`
}
