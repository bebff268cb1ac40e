package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
	"time"
)

const popularityLookbackDays = 30

type PopularityGenerator struct {
	interactionRepo repository.InteractionRepo
}

func NewPopularityGenerator(interactionRepo repository.InteractionRepo) *PopularityGenerator {
	return &PopularityGenerator{
		interactionRepo: interactionRepo,
	}
}

func (g *PopularityGenerator) Algorithm() string {
	return model.AlgorithmPopularity
}

// Generate 近 30 天热门商品，购买按 5 倍计入
func (g *PopularityGenerator) Generate(ctx context.Context, storeID, userID uint64, _ *model.Product, limit int) ([]Candidate, error) {
	since := time.Now().AddDate(0, 0, -popularityLookbackDays)
	counts, err := g.interactionRepo.PopularProducts(ctx, storeID, since, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(counts))
	for idx, c := range counts {
		weighted := float64(c.InteractionCount + c.PurchaseCount*5)
		candidates = append(candidates, Candidate{
			ProductID: c.ProductID,
			Score:     clampScore(weighted / float64(idx+1) / 100),
			Reason:    "Popular with other customers",
		})
	}
	return candidates, nil
}
