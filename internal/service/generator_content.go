package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
)

const preferredCategoryLimit = 5

type ContentGenerator struct {
	interactionRepo repository.InteractionRepo
	productRepo     repository.ProductRepo
}

func NewContentGenerator(interactionRepo repository.InteractionRepo, productRepo repository.ProductRepo) *ContentGenerator {
	return &ContentGenerator{
		interactionRepo: interactionRepo,
		productRepo:     productRepo,
	}
}

func (g *ContentGenerator) Algorithm() string {
	return model.AlgorithmContent
}

// Generate 从用户互动权重最高的类目里取没碰过的商品，
// 候选分数继承类目权重。匿名但带锚点商品时退化为"看了又看"：
// 推同类目价格相近的商品。
func (g *ContentGenerator) Generate(ctx context.Context, storeID, userID uint64, anchor *model.Product, limit int) ([]Candidate, error) {
	if userID == 0 {
		if anchor != nil {
			return g.anchorCandidates(ctx, anchor, limit)
		}
		return []Candidate{}, nil
	}

	weights, err := g.interactionRepo.CategoryWeights(ctx, storeID, userID, preferredCategoryLimit)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return []Candidate{}, nil
	}

	categories := make([]string, 0, len(weights))
	weightByCategory := make(map[string]float64, len(weights))
	for _, w := range weights {
		categories = append(categories, w.Category)
		weightByCategory[w.Category] = w.TotalWeight
	}

	seenProductIDs, err := g.interactionRepo.ProductIDsByUser(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}

	products, err := g.productRepo.ListByCategories(ctx, storeID, categories, seenProductIDs, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, Candidate{
			ProductID: p.ID,
			Score:     clampScore(weightByCategory[p.Category] / 10),
			Reason:    "Matches your interest in " + p.Category,
		})
	}
	return candidates, nil
}

// anchorCandidates 同类目、价格带 ±50% 的商品，价格未知时不设价格带
func (g *ContentGenerator) anchorCandidates(ctx context.Context, anchor *model.Product, limit int) ([]Candidate, error) {
	if anchor.Category == "" {
		return []Candidate{}, nil
	}

	var minPrice, maxPrice *float64
	if anchor.Price != nil && *anchor.Price > 0 {
		lower := *anchor.Price * (1 - priceBandRatio)
		upper := *anchor.Price * (1 + priceBandRatio)
		minPrice, maxPrice = &lower, &upper
	}

	products, err := g.productRepo.ListSimilarCandidates(
		ctx, anchor.StoreID, anchor.Category, minPrice, maxPrice, anchor.ID, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(products))
	for _, p := range products {
		candidates = append(candidates, Candidate{
			ProductID: p.ID,
			Score:     model.ContentSimilarity(anchor.Price, p.Price),
			Reason:    "Similar to " + anchor.Title,
		})
	}
	return candidates, nil
}
