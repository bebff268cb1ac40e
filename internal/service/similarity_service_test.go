package service

import (
	"Vitrine/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newSimilarityFixture() (*fakeProductRepo, *fakeSimilarityRepo, SimilarityService) {
	source := &model.Product{ID: 1, StoreID: 1, ExternalID: "sku-1", Category: "Shoes", Price: ptrFloat(100)}
	samePrice := &model.Product{ID: 2, StoreID: 1, ExternalID: "sku-2", Category: "Shoes", Price: ptrFloat(100)}
	halfPrice := &model.Product{ID: 3, StoreID: 1, ExternalID: "sku-3", Category: "Shoes", Price: ptrFloat(50)}

	productRepo := &fakeProductRepo{
		products:   map[uint64]*model.Product{1: source, 2: samePrice, 3: halfPrice},
		byExternal: map[string]*model.Product{"sku-1": source, "sku-2": samePrice, "sku-3": halfPrice},
		candidates: []*model.Product{samePrice, halfPrice},
	}
	similarityRepo := &fakeSimilarityRepo{}
	svc := NewSimilarityService(defaultRecommendConfig(), productRepo, similarityRepo)
	return productRepo, similarityRepo, svc
}

func ptrFloat(f float64) *float64 { return &f }

func TestPrecomputePersistsEntries(t *testing.T) {
	ctx := context.Background()
	_, similarityRepo, svc := newSimilarityFixture()

	assert.NoError(t, svc.Precompute(ctx, 1))
	assert.NotEmpty(t, similarityRepo.entries)

	entries, err := similarityRepo.ListBySource(ctx, 1, 1, 20)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	byTarget := make(map[uint64]*model.SimilarProduct, len(entries))
	for _, entry := range entries {
		byTarget[entry.TargetProductID] = entry
	}
	assert.InDelta(t, 1.0, byTarget[2].SimilarityScore, 0.0001)
	assert.InDelta(t, 0.85, byTarget[3].SimilarityScore, 0.0001)
	assert.Equal(t, "content", byTarget[2].SimilarityType)
	assert.Equal(t, model.StringList{"category", "price"}, byTarget[2].FeaturesUsed)
}

func TestGetSimilarReadsPrecomputed(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newSimilarityFixture()
	assert.NoError(t, svc.Precompute(ctx, 1))

	items, err := svc.GetSimilar(ctx, 1, "sku-1", 10)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "sku-2", items[0].Product.ExternalID)
}

func TestGetSimilarFallbackComputesWithoutPersisting(t *testing.T) {
	ctx := context.Background()
	_, similarityRepo, svc := newSimilarityFixture()

	items, err := svc.GetSimilar(ctx, 1, "sku-1", 10)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	// 兜底现算不落库
	assert.Empty(t, similarityRepo.entries)
}

func TestGetSimilarUnknownProduct(t *testing.T) {
	_, _, svc := newSimilarityFixture()

	_, err := svc.GetSimilar(context.Background(), 1, "sku-missing", 10)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
