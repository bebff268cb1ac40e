package service

import (
	"Vitrine/internal/api/config"
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/consts"
	"Vitrine/internal/pkg/redis"
	"Vitrine/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecommendedItem 推荐行及其商品快照，商品可能已下架为 nil
type RecommendedItem struct {
	Recommendation *model.Recommendation
	Product        *model.Product
}

type RecommendationService interface {
	GetRecommendations(ctx context.Context, storeID, userID uint64, sessionID, algorithm, anchorProductID string, limit int) ([]*model.Recommendation, error)
	GetRecommendedItems(ctx context.Context, storeID, userID uint64, sessionID, algorithm, anchorProductID string, limit int) ([]*RecommendedItem, error)
	Generate(ctx context.Context, storeID, userID uint64, sessionID, algorithm, anchorProductID string, limit int) ([]*model.Recommendation, error)
	RecordImpression(ctx context.Context, storeID, recommendationID uint64) error
	RecordClick(ctx context.Context, storeID, recommendationID uint64) error
	AttributePurchase(ctx context.Context, storeID, recommendationID uint64) error
}

type RecommendationServiceImpl struct {
	cfg            config.RecommendConfig
	generators     []Generator
	recRepo        repository.RecommendationRepo
	recProfileRepo repository.RecProfileRepo
	productRepo    repository.ProductRepo
}

func NewRecommendationService(
	cfg config.RecommendConfig,
	generators []Generator,
	recRepo repository.RecommendationRepo,
	recProfileRepo repository.RecProfileRepo,
	productRepo repository.ProductRepo,
) RecommendationService {
	return &RecommendationServiceImpl{
		cfg:            cfg,
		generators:     generators,
		recRepo:        recRepo,
		recProfileRepo: recProfileRepo,
		productRepo:    productRepo,
	}
}

// GetRecommendations 先读有效的存量推荐，没有再现算。
// algorithm 为空时走混合推荐，anchorProductID 是接入方传来的
// 当前浏览商品（店铺侧外部 ID），匿名请求靠它触发内容算法。
func (s *RecommendationServiceImpl) GetRecommendations(ctx context.Context, storeID, userID uint64, sessionID, algorithm, anchorProductID string, limit int) ([]*model.Recommendation, error) {
	if algorithm == "" {
		algorithm = model.AlgorithmHybrid
	}
	if !model.IsAlgorithm(algorithm) {
		return nil, ErrAlgorithmInvalid
	}
	if limit <= 0 || limit > s.cfg.MaxResults {
		limit = s.cfg.MaxResults
	}

	recs, err := s.recRepo.ListBySubject(ctx, storeID, userID, sessionID, algorithm, false, limit)
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return recs, nil
	}

	return s.Generate(ctx, storeID, userID, sessionID, algorithm, anchorProductID, limit)
}

// GetRecommendedItems 推荐行连同商品快照一起返回
func (s *RecommendationServiceImpl) GetRecommendedItems(ctx context.Context, storeID, userID uint64, sessionID, algorithm, anchorProductID string, limit int) ([]*RecommendedItem, error) {
	recs, err := s.GetRecommendations(ctx, storeID, userID, sessionID, algorithm, anchorProductID, limit)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint64, 0, len(recs))
	for _, rec := range recs {
		productIDs = append(productIDs, rec.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, storeID, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint64]*model.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	items := make([]*RecommendedItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, &RecommendedItem{
			Recommendation: rec,
			Product:        productByID[rec.ProductID],
		})
	}
	return items, nil
}

// Generate 跑生成器打分并落库。algorithm 为 hybrid 时全部生成器参与混合，
// 指定单算法时只跑对应生成器。单个生成器失败只降级跳过，不拖垮整个请求。
func (s *RecommendationServiceImpl) Generate(ctx context.Context, storeID, userID uint64, sessionID, algorithm, anchorProductID string, limit int) ([]*model.Recommendation, error) {
	if algorithm == "" {
		algorithm = model.AlgorithmHybrid
	}
	if !model.IsAlgorithm(algorithm) {
		return nil, ErrAlgorithmInvalid
	}
	if limit <= 0 || limit > s.cfg.MaxResults {
		limit = s.cfg.MaxResults
	}

	// 锚点商品查不到就当没带，其余算法照常产出
	var anchor *model.Product
	if anchorProductID != "" {
		var err error
		anchor, err = s.productRepo.GetByExternalID(ctx, storeID, anchorProductID)
		if err != nil {
			return nil, err
		}
		if anchor == nil {
			log.DebugContext(ctx, "anchor product not found",
				"store_id", storeID, "product_id", anchorProductID)
		}
	}

	byAlgorithm := make(map[string][]Candidate, len(s.generators))
	for _, g := range s.generators {
		if algorithm != model.AlgorithmHybrid && g.Algorithm() != algorithm {
			continue
		}
		candidates, err := g.Generate(ctx, storeID, userID, anchor, limit)
		if err != nil {
			log.WarnContext(ctx, "candidate generator failed",
				"algorithm", g.Algorithm(), "store_id", storeID, "user_id", userID, "err", err)
			continue
		}
		byAlgorithm[g.Algorithm()] = candidates
	}

	// 单算法时 combine 把该算法的权重归一化为 1，分数原样保留
	combined := combine(s.cfg.Weights, byAlgorithm)
	if len(combined) > limit {
		combined = combined[:limit]
	}
	if len(combined) == 0 {
		return []*model.Recommendation{}, nil
	}

	lockKey := fmt.Sprintf("%s%d:%d:%s:%s", consts.RecommendLock, storeID, userID, sessionID, algorithm)
	lockValue := uuid.NewString()
	ok, err := redis.TryLock(ctx, lockKey, lockValue, 10*time.Second, 3)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 别的请求正在算同一个主体，直接读它的结果
		return s.recRepo.ListBySubject(ctx, storeID, userID, sessionID, algorithm, false, limit)
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	expiresAt := time.Now().Add(time.Duration(s.cfg.TTLHours) * time.Hour)
	for _, c := range combined {
		recContext := model.JSONMap{"sources": c.Sources}
		if anchorProductID != "" {
			recContext["anchor_product_id"] = anchorProductID
		}
		rec := &model.Recommendation{
			StoreID:     storeID,
			UserID:      userID,
			SessionID:   sessionID,
			ProductID:   c.ProductID,
			Algorithm:   algorithm,
			Score:       c.Score,
			Rank:        c.Rank,
			Explanation: c.Reason,
			Context:     recContext,
			ExpiresAt:   expiresAt,
		}
		if err := s.recRepo.Upsert(ctx, rec); err != nil {
			return nil, err
		}
	}

	if userID != 0 {
		if err := s.recomputeRecProfile(ctx, storeID, userID, true); err != nil {
			log.WarnContext(ctx, "recompute recommendation profile failed",
				"store_id", storeID, "user_id", userID, "err", err)
		}
	}

	return s.recRepo.ListBySubject(ctx, storeID, userID, sessionID, algorithm, false, limit)
}

func (s *RecommendationServiceImpl) RecordImpression(ctx context.Context, storeID, recommendationID uint64) error {
	return s.recordFeedback(ctx, storeID, recommendationID, s.recRepo.IncrementShown)
}

func (s *RecommendationServiceImpl) RecordClick(ctx context.Context, storeID, recommendationID uint64) error {
	return s.recordFeedback(ctx, storeID, recommendationID, s.recRepo.IncrementClick)
}

func (s *RecommendationServiceImpl) AttributePurchase(ctx context.Context, storeID, recommendationID uint64) error {
	return s.recordFeedback(ctx, storeID, recommendationID, s.recRepo.IncrementPurchase)
}

func (s *RecommendationServiceImpl) recordFeedback(ctx context.Context, storeID, recommendationID uint64, increment func(context.Context, uint64) error) error {
	rec, err := s.recRepo.GetByID(ctx, recommendationID)
	if err != nil {
		return err
	}
	if rec == nil || rec.StoreID != storeID {
		return ErrRecommendationNotFound
	}

	if err := increment(ctx, recommendationID); err != nil {
		return err
	}

	if rec.UserID == 0 {
		return nil
	}
	return s.recomputeRecProfile(ctx, storeID, rec.UserID, false)
}

// recomputeRecProfile 从计数总量整体重算派生比率，避免增量漂移
func (s *RecommendationServiceImpl) recomputeRecProfile(ctx context.Context, storeID, userID uint64, touchLastRecommendation bool) error {
	shown, clicked, purchased, err := s.recRepo.SumCountersByUser(ctx, storeID, userID)
	if err != nil {
		return err
	}

	profile, err := s.recProfileRepo.Get(ctx, storeID, userID)
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &model.UserRecommendationProfile{
			StoreID: storeID,
			UserID:  userID,
		}
	}

	profile.TotalShown = int(shown)
	profile.TotalClicked = int(clicked)
	profile.TotalPurchased = int(purchased)
	profile.RecomputeRates()
	if touchLastRecommendation {
		now := time.Now()
		profile.LastRecommendationAt = &now
	}
	profile.UpdatedAt = time.Now()

	return s.recProfileRepo.Save(ctx, profile)
}

// combinedCandidate 混合打分后的候选
type combinedCandidate struct {
	ProductID uint64
	Score     float64
	Rank      int
	Reason    string
	Sources   []string
}

// combineOrder 算法参与混合的固定顺序，保证解释文案与归一化结果可复现
var combineOrder = []string{model.AlgorithmCollaborative, model.AlgorithmContent, model.AlgorithmPopularity}

func weightFor(weights config.CombinerWeights, algorithm string) float64 {
	switch algorithm {
	case model.AlgorithmCollaborative:
		return weights.Collaborative
	case model.AlgorithmContent:
		return weights.Content
	case model.AlgorithmPopularity:
		return weights.Popularity
	}
	return weights.Default
}

// combine 加权混合。每个商品的权重只在对它产出过候选的算法之间归一化，
// 所以只被单一算法命中的商品保留该算法的原始分数。
func combine(weights config.CombinerWeights, byAlgorithm map[string][]Candidate) []combinedCandidate {
	type mergedCandidate struct {
		combinedCandidate
		weightSum float64
		reasons   []string
	}

	merged := make(map[uint64]*mergedCandidate)
	for _, algorithm := range combineOrder {
		candidates := byAlgorithm[algorithm]
		if len(candidates) == 0 {
			continue
		}
		weight := weightFor(weights, algorithm)
		for _, c := range candidates {
			entry, ok := merged[c.ProductID]
			if !ok {
				entry = &mergedCandidate{combinedCandidate: combinedCandidate{ProductID: c.ProductID}}
				merged[c.ProductID] = entry
			}
			entry.Score += c.Score * weight
			entry.weightSum += weight
			entry.Sources = append(entry.Sources, algorithm)
			if c.Reason != "" {
				entry.reasons = append(entry.reasons, c.Reason)
			}
		}
	}

	result := make([]combinedCandidate, 0, len(merged))
	for _, entry := range merged {
		if entry.weightSum > 0 {
			entry.Score /= entry.weightSum
		}
		entry.Reason = joinReasons(entry.reasons)
		result = append(result, entry.combinedCandidate)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].ProductID < result[j].ProductID
	})

	// 密集排名：同分同名次
	rank := 0
	var prevScore float64
	for i := range result {
		if i == 0 || result[i].Score != prevScore {
			rank++
			prevScore = result[i].Score
		}
		result[i].Rank = rank
	}
	return result
}

// joinReasons 最多拼前两条解释，第二条首字母小写。
// 按条数截断而不是在文案里找连接词，类目名自带 and 也不会误判。
func joinReasons(reasons []string) string {
	if len(reasons) == 0 {
		return ""
	}
	if len(reasons) == 1 {
		return reasons[0]
	}
	second := reasons[1]
	return reasons[0] + " and " + strings.ToLower(second[:1]) + second[1:]
}
