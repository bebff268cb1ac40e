package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
)

const neighborLimit = 10

type CollaborativeGenerator struct {
	interactionRepo repository.InteractionRepo
}

func NewCollaborativeGenerator(interactionRepo repository.InteractionRepo) *CollaborativeGenerator {
	return &CollaborativeGenerator{
		interactionRepo: interactionRepo,
	}
}

func (g *CollaborativeGenerator) Algorithm() string {
	return model.AlgorithmCollaborative
}

// Generate 基于共同互动商品找邻居用户，再取邻居互动过而目标用户没碰过的商品。
// 匿名或没有历史的用户直接返回空。
func (g *CollaborativeGenerator) Generate(ctx context.Context, storeID, userID uint64, _ *model.Product, limit int) ([]Candidate, error) {
	if userID == 0 {
		return []Candidate{}, nil
	}

	seenProductIDs, err := g.interactionRepo.ProductIDsByUser(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if len(seenProductIDs) == 0 {
		return []Candidate{}, nil
	}

	neighbors, err := g.interactionRepo.NeighborUsers(ctx, storeID, userID, seenProductIDs, neighborLimit)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return []Candidate{}, nil
	}

	neighborIDs := make([]uint64, 0, len(neighbors))
	for _, n := range neighbors {
		neighborIDs = append(neighborIDs, n.UserID)
	}

	counts, err := g.interactionRepo.ProductCountsByUsers(ctx, storeID, neighborIDs, seenProductIDs, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(counts))
	for _, c := range counts {
		weighted := float64(c.InteractionCount + c.PurchaseCount*3)
		candidates = append(candidates, Candidate{
			ProductID: c.ProductID,
			Score:     clampScore(weighted / 10),
			Reason:    "Customers with similar taste also engaged with this",
		})
	}
	return candidates, nil
}
