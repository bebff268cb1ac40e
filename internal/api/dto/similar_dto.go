package dto

// SimilarProductDTO 相似商品条目
type SimilarProductDTO struct {
	Product         *ProductDTO `json:"product"`
	SimilarityScore float64     `json:"similarity_score"`
	SimilarityType  string      `json:"similarity_type"`
	FeaturesUsed    []string    `json:"features_used"`
}
