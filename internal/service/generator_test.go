package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopularityGenerator(t *testing.T) {
	repo := &fakeInteractionRepo{
		popular: []repository.ProductCount{
			{ProductID: 1, InteractionCount: 80, PurchaseCount: 4},
			{ProductID: 2, InteractionCount: 50, PurchaseCount: 0},
		},
	}
	g := NewPopularityGenerator(repo)
	assert.Equal(t, model.AlgorithmPopularity, g.Algorithm())

	candidates, err := g.Generate(context.Background(), 1, 0, nil, 10)
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)

	// 80 + 4×5 = 100，首位不衰减
	assert.Equal(t, uint64(1), candidates[0].ProductID)
	assert.InDelta(t, 1.0, candidates[0].Score, 0.0001)
	assert.Equal(t, "Popular with other customers", candidates[0].Reason)

	// 第二位按位次衰减：50 / 2 / 100
	assert.Equal(t, uint64(2), candidates[1].ProductID)
	assert.InDelta(t, 0.25, candidates[1].Score, 0.0001)
}

func TestCollaborativeGeneratorAnonymous(t *testing.T) {
	g := NewCollaborativeGenerator(&fakeInteractionRepo{})

	candidates, err := g.Generate(context.Background(), 1, 0, nil, 10)
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCollaborativeGeneratorNoHistory(t *testing.T) {
	g := NewCollaborativeGenerator(&fakeInteractionRepo{})

	candidates, err := g.Generate(context.Background(), 1, 7, nil, 10)
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestCollaborativeGeneratorScoresNeighborProducts(t *testing.T) {
	repo := &fakeInteractionRepo{
		productIDs: []uint64{1, 2},
		neighbors: []repository.UserShared{
			{UserID: 8, SharedCount: 3},
			{UserID: 9, SharedCount: 1},
		},
		neighborCounts: []repository.ProductCount{
			{ProductID: 5, InteractionCount: 4, PurchaseCount: 2},
			{ProductID: 6, InteractionCount: 3, PurchaseCount: 0},
		},
	}
	g := NewCollaborativeGenerator(repo)
	assert.Equal(t, model.AlgorithmCollaborative, g.Algorithm())

	candidates, err := g.Generate(context.Background(), 1, 7, nil, 10)
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)

	// (4 + 2×3) / 10 = 1.0
	assert.Equal(t, uint64(5), candidates[0].ProductID)
	assert.InDelta(t, 1.0, candidates[0].Score, 0.0001)
	assert.Equal(t, "Customers with similar taste also engaged with this", candidates[0].Reason)

	assert.Equal(t, uint64(6), candidates[1].ProductID)
	assert.InDelta(t, 0.3, candidates[1].Score, 0.0001)
}

func TestContentGeneratorAnonymous(t *testing.T) {
	g := NewContentGenerator(&fakeInteractionRepo{}, &fakeProductRepo{})

	candidates, err := g.Generate(context.Background(), 1, 0, nil, 10)
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestContentGeneratorScoresByCategoryWeight(t *testing.T) {
	interactionRepo := &fakeInteractionRepo{
		categories: []repository.CategoryWeight{
			{Category: "Shoes", TotalWeight: 8},
			{Category: "Hats", TotalWeight: 2},
		},
		productIDs: []uint64{1},
	}
	productRepo := &fakeProductRepo{
		byCategory: []*model.Product{
			{ID: 1, StoreID: 1, Category: "Shoes"}, // 用户已互动过，应排除
			{ID: 2, StoreID: 1, Category: "Shoes"},
			{ID: 3, StoreID: 1, Category: "Hats"},
		},
	}
	g := NewContentGenerator(interactionRepo, productRepo)
	assert.Equal(t, model.AlgorithmContent, g.Algorithm())

	candidates, err := g.Generate(context.Background(), 1, 7, nil, 10)
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)

	assert.Equal(t, uint64(2), candidates[0].ProductID)
	assert.InDelta(t, 0.8, candidates[0].Score, 0.0001)
	assert.Equal(t, "Matches your interest in Shoes", candidates[0].Reason)

	assert.Equal(t, uint64(3), candidates[1].ProductID)
	assert.InDelta(t, 0.2, candidates[1].Score, 0.0001)
}

func TestContentGeneratorAnchorsAnonymousOnProduct(t *testing.T) {
	productRepo := &fakeProductRepo{
		candidates: []*model.Product{
			{ID: 2, StoreID: 1, Category: "Shoes", Price: ptrFloat(100)},
			{ID: 3, StoreID: 1, Category: "Shoes", Price: ptrFloat(50)},
		},
	}
	g := NewContentGenerator(&fakeInteractionRepo{}, productRepo)

	anchor := &model.Product{ID: 1, StoreID: 1, Title: "Running Shoes", Category: "Shoes", Price: ptrFloat(100)}
	candidates, err := g.Generate(context.Background(), 1, 0, anchor, 10)
	assert.NoError(t, err)
	assert.Len(t, candidates, 2)

	// 同类目同价 0.7 + 0.3，价差一半 0.7 + 0.15
	assert.Equal(t, uint64(2), candidates[0].ProductID)
	assert.InDelta(t, 1.0, candidates[0].Score, 0.0001)
	assert.Equal(t, "Similar to Running Shoes", candidates[0].Reason)
	assert.InDelta(t, 0.85, candidates[1].Score, 0.0001)

	// 锚点商品没有类目时无话可说
	empty, err := g.Generate(context.Background(), 1, 0, &model.Product{ID: 9, StoreID: 1}, 10)
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 1.0, clampScore(3.7))
	assert.Equal(t, 0.0, clampScore(-0.2))
	assert.Equal(t, 0.5, clampScore(0.5))
}
