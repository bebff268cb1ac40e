package service

import (
	"Vitrine/internal/api/config"
	"Vitrine/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func defaultRecommendConfig() config.RecommendConfig {
	var cfg config.RecommendConfig
	cfg.ApplyDefaults()
	return cfg
}

func TestCombineNormalizesOverPresentAlgorithms(t *testing.T) {
	cfg := defaultRecommendConfig()
	byAlgorithm := map[string][]Candidate{
		model.AlgorithmCollaborative: {{ProductID: 1, Score: 1.0, Reason: "Customers with similar taste also engaged with this"}},
		model.AlgorithmPopularity:    {{ProductID: 1, Score: 0.5, Reason: "Popular with other customers"}},
	}

	result := combine(cfg.Weights, byAlgorithm)
	assert.Len(t, result, 1)

	// 权重只在协同 0.40 和热门 0.25 之间归一化
	expected := 1.0*(0.40/0.65) + 0.5*(0.25/0.65)
	assert.InDelta(t, expected, result[0].Score, 0.0001)
	assert.Equal(t, []string{model.AlgorithmCollaborative, model.AlgorithmPopularity}, result[0].Sources)
}

func TestCombineDisjointProductsKeepRawScores(t *testing.T) {
	cfg := defaultRecommendConfig()
	byAlgorithm := map[string][]Candidate{
		model.AlgorithmCollaborative: {{ProductID: 1, Score: 0.9, Reason: "Customers with similar taste also engaged with this"}},
		model.AlgorithmPopularity:    {{ProductID: 2, Score: 0.5, Reason: "Popular with other customers"}},
	}

	result := combine(cfg.Weights, byAlgorithm)
	assert.Len(t, result, 2)

	// 归一化按商品算：只被热门算法命中的商品不被协同的权重稀释
	assert.Equal(t, uint64(1), result[0].ProductID)
	assert.InDelta(t, 0.9, result[0].Score, 0.0001)
	assert.Equal(t, uint64(2), result[1].ProductID)
	assert.InDelta(t, 0.5, result[1].Score, 0.0001)
	assert.Equal(t, "Popular with other customers", result[1].Reason)
}

func TestCombineSingleAlgorithmTakesFullWeight(t *testing.T) {
	cfg := defaultRecommendConfig()
	byAlgorithm := map[string][]Candidate{
		model.AlgorithmPopularity: {{ProductID: 9, Score: 0.42, Reason: "Popular with other customers"}},
	}

	result := combine(cfg.Weights, byAlgorithm)
	assert.Len(t, result, 1)

	// 单算法可用时归一化权重为 1，不吃缺席算法的惩罚
	assert.InDelta(t, 0.42, result[0].Score, 0.0001)
	assert.Equal(t, 1, result[0].Rank)
}

func TestCombineDenseRanking(t *testing.T) {
	cfg := defaultRecommendConfig()
	byAlgorithm := map[string][]Candidate{
		model.AlgorithmPopularity: {
			{ProductID: 5, Score: 0.3},
			{ProductID: 2, Score: 0.5},
			{ProductID: 1, Score: 0.5},
		},
	}

	result := combine(cfg.Weights, byAlgorithm)
	assert.Len(t, result, 3)

	// 同分同名次，同分内按商品 ID 升序
	assert.Equal(t, uint64(1), result[0].ProductID)
	assert.Equal(t, 1, result[0].Rank)
	assert.Equal(t, uint64(2), result[1].ProductID)
	assert.Equal(t, 1, result[1].Rank)
	assert.Equal(t, uint64(5), result[2].ProductID)
	assert.Equal(t, 2, result[2].Rank)
}

func TestCombineEmptyInput(t *testing.T) {
	cfg := defaultRecommendConfig()
	assert.Empty(t, combine(cfg.Weights, map[string][]Candidate{}))
	assert.Empty(t, combine(cfg.Weights, map[string][]Candidate{
		model.AlgorithmCollaborative: {},
	}))
}

func TestJoinReasons(t *testing.T) {
	assert.Equal(t, "", joinReasons(nil))
	assert.Equal(t, "Popular with other customers", joinReasons([]string{"Popular with other customers"}))

	merged := joinReasons([]string{"Matches your interest in Shoes", "Popular with other customers"})
	assert.Equal(t, "Matches your interest in Shoes and popular with other customers", merged)

	// 最多两条，第三条丢弃
	assert.Equal(t, merged, joinReasons([]string{
		"Matches your interest in Shoes",
		"Popular with other customers",
		"Customers with similar taste also engaged with this",
	}))

	// 类目名自带 and 时第二条解释不能被吞掉
	assert.Equal(t,
		"Matches your interest in Food and Drink and popular with other customers",
		joinReasons([]string{"Matches your interest in Food and Drink", "Popular with other customers"}))
}

func newFeedbackService(recRepo *fakeRecRepo, profileRepo *fakeRecProfileRepo, productRepo *fakeProductRepo) *RecommendationServiceImpl {
	if productRepo == nil {
		productRepo = &fakeProductRepo{}
	}
	return &RecommendationServiceImpl{
		cfg:            defaultRecommendConfig(),
		recRepo:        recRepo,
		recProfileRepo: profileRepo,
		productRepo:    productRepo,
	}
}

func TestFeedbackUpdatesCountersAndProfile(t *testing.T) {
	ctx := context.Background()
	recRepo := newFakeRecRepo()
	profileRepo := newFakeRecProfileRepo()
	svc := newFeedbackService(recRepo, profileRepo, nil)

	rec := &model.Recommendation{
		StoreID:   1,
		UserID:    7,
		SessionID: "sess-1",
		ProductID: 3,
		Algorithm: model.AlgorithmHybrid,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, recRepo.Upsert(ctx, rec))

	for i := 0; i < 3; i++ {
		assert.NoError(t, svc.RecordImpression(ctx, 1, rec.ID))
	}
	assert.NoError(t, svc.RecordClick(ctx, 1, rec.ID))

	stored, _ := recRepo.GetByID(ctx, rec.ID)
	assert.Equal(t, 3, stored.ShownCount)
	assert.Equal(t, 1, stored.ClickCount)

	profile, _ := profileRepo.Get(ctx, 1, 7)
	assert.NotNil(t, profile)
	assert.Equal(t, 3, profile.TotalShown)
	assert.Equal(t, 1, profile.TotalClicked)
	assert.InDelta(t, 33.33, profile.OverallCTR, 0.01)
}

func TestFeedbackRejectsForeignStore(t *testing.T) {
	ctx := context.Background()
	recRepo := newFakeRecRepo()
	svc := newFeedbackService(recRepo, newFakeRecProfileRepo(), nil)

	rec := &model.Recommendation{
		StoreID:   1,
		UserID:    7,
		SessionID: "sess-1",
		ProductID: 3,
		Algorithm: model.AlgorithmHybrid,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, recRepo.Upsert(ctx, rec))

	// 别的店铺拿不到这条推荐
	assert.ErrorIs(t, svc.RecordClick(ctx, 2, rec.ID), ErrRecommendationNotFound)
	assert.ErrorIs(t, svc.RecordImpression(ctx, 1, 999), ErrRecommendationNotFound)
}

func TestFeedbackAnonymousSkipsProfile(t *testing.T) {
	ctx := context.Background()
	recRepo := newFakeRecRepo()
	profileRepo := newFakeRecProfileRepo()
	svc := newFeedbackService(recRepo, profileRepo, nil)

	rec := &model.Recommendation{
		StoreID:   1,
		UserID:    0,
		SessionID: "sess-anon",
		ProductID: 3,
		Algorithm: model.AlgorithmHybrid,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, recRepo.Upsert(ctx, rec))
	assert.NoError(t, svc.RecordImpression(ctx, 1, rec.ID))

	stored, _ := recRepo.GetByID(ctx, rec.ID)
	assert.Equal(t, 1, stored.ShownCount)
	assert.Empty(t, profileRepo.profiles)
}

func TestUpsertSameKeyKeepsFeedbackCounters(t *testing.T) {
	ctx := context.Background()
	recRepo := newFakeRecRepo()
	profileRepo := newFakeRecProfileRepo()
	svc := newFeedbackService(recRepo, profileRepo, nil)

	rec := &model.Recommendation{
		StoreID:   1,
		UserID:    7,
		SessionID: "sess-1",
		ProductID: 3,
		Algorithm: model.AlgorithmHybrid,
		Score:     0.6,
		Rank:      2,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	assert.NoError(t, recRepo.Upsert(ctx, rec))
	assert.NoError(t, svc.RecordImpression(ctx, 1, rec.ID))
	assert.NoError(t, svc.RecordImpression(ctx, 1, rec.ID))
	assert.NoError(t, svc.RecordClick(ctx, 1, rec.ID))

	// 同键重算只覆盖打分列，反馈计数原样保留
	again := &model.Recommendation{
		StoreID:   1,
		UserID:    7,
		SessionID: "sess-1",
		ProductID: 3,
		Algorithm: model.AlgorithmHybrid,
		Score:     0.8,
		Rank:      1,
		ExpiresAt: time.Now().Add(2 * time.Hour),
	}
	assert.NoError(t, recRepo.Upsert(ctx, again))
	assert.Equal(t, rec.ID, again.ID)

	stored, _ := recRepo.GetByID(ctx, rec.ID)
	assert.Equal(t, 0.8, stored.Score)
	assert.Equal(t, 1, stored.Rank)
	assert.Equal(t, 2, stored.ShownCount)
	assert.Equal(t, 1, stored.ClickCount)
}

func TestGetRecommendationsRejectsUnknownAlgorithm(t *testing.T) {
	svc := newFeedbackService(newFakeRecRepo(), newFakeRecProfileRepo(), nil)

	_, err := svc.GetRecommendations(context.Background(), 1, 7, "sess-1", "matrix_factorization", "", 10)
	assert.ErrorIs(t, err, ErrAlgorithmInvalid)
}

func TestGenerateWithoutCandidates(t *testing.T) {
	svc := newFeedbackService(newFakeRecRepo(), newFakeRecProfileRepo(), nil)

	// 没有任何生成器产出候选时返回空，不加锁不落库
	recs, err := svc.Generate(context.Background(), 1, 7, "sess-1", model.AlgorithmPopularity, "", 10)
	assert.NoError(t, err)
	assert.Empty(t, recs)
}

func TestGetRecommendedItemsJoinsProducts(t *testing.T) {
	ctx := context.Background()
	recRepo := newFakeRecRepo()
	productRepo := &fakeProductRepo{
		products: map[uint64]*model.Product{
			3: {ID: 3, StoreID: 1, ExternalID: "sku-3", Title: "Running Shoes"},
		},
	}
	svc := newFeedbackService(recRepo, newFakeRecProfileRepo(), productRepo)

	expiresAt := time.Now().Add(time.Hour)
	assert.NoError(t, recRepo.Upsert(ctx, &model.Recommendation{
		StoreID: 1, UserID: 7, SessionID: "sess-1", ProductID: 3,
		Algorithm: model.AlgorithmHybrid, Rank: 1, ExpiresAt: expiresAt,
	}))
	assert.NoError(t, recRepo.Upsert(ctx, &model.Recommendation{
		StoreID: 1, UserID: 7, SessionID: "sess-1", ProductID: 4,
		Algorithm: model.AlgorithmHybrid, Rank: 2, ExpiresAt: expiresAt,
	}))

	items, err := svc.GetRecommendedItems(ctx, 1, 7, "sess-1", "", "", 10)
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	byProduct := make(map[uint64]*RecommendedItem, len(items))
	for _, item := range items {
		byProduct[item.Recommendation.ProductID] = item
	}
	assert.Equal(t, "Running Shoes", byProduct[3].Product.Title)
	// 商品已下架时快照为 nil，推荐行仍然返回
	assert.Nil(t, byProduct[4].Product)
}
