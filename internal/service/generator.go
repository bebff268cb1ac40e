package service

import (
	"Vitrine/internal/model"
	"context"
)

// Candidate 单个候选商品及其来源解释
type Candidate struct {
	ProductID uint64
	Score     float64
	Reason    string
}

// Generator 候选生成器。anchor 是请求上下文里的锚点商品（可为 nil），
// 目前只有内容算法在匿名请求时用它。Generate 返回空切片表示
// 该算法对当前主体无话可说，不算失败。
type Generator interface {
	Algorithm() string
	Generate(ctx context.Context, storeID, userID uint64, anchor *model.Product, limit int) ([]Candidate, error)
}

func clampScore(score float64) float64 {
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}
