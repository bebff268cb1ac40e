package service

import (
	"Vitrine/internal/api/config"
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
	log "log/slog"
	"time"
)

const priceBandRatio = 0.5

// SimilarItem 相似商品条目及其商品快照
type SimilarItem struct {
	Product         *model.Product
	SimilarityScore float64
	SimilarityType  string
	FeaturesUsed    model.StringList
}

type SimilarityService interface {
	Precompute(ctx context.Context, storeID uint64) error
	GetSimilar(ctx context.Context, storeID uint64, externalProductID string, limit int) ([]*SimilarItem, error)
}

type SimilarityServiceImpl struct {
	cfg            config.RecommendConfig
	productRepo    repository.ProductRepo
	similarityRepo repository.SimilarityRepo
}

func NewSimilarityService(
	cfg config.RecommendConfig,
	productRepo repository.ProductRepo,
	similarityRepo repository.SimilarityRepo,
) SimilarityService {
	return &SimilarityServiceImpl{
		cfg:            cfg,
		productRepo:    productRepo,
		similarityRepo: similarityRepo,
	}
}

// Precompute 给店铺每个在售商品预算一批相似商品
func (s *SimilarityServiceImpl) Precompute(ctx context.Context, storeID uint64) error {
	products, err := s.productRepo.ListActive(ctx, storeID)
	if err != nil {
		return err
	}

	for _, product := range products {
		if product.Category == "" {
			continue
		}
		candidates, err := s.candidatesFor(ctx, product)
		if err != nil {
			return err
		}
		for _, entry := range candidates {
			if err := s.similarityRepo.Upsert(ctx, entry); err != nil {
				return err
			}
		}
	}

	log.InfoContext(ctx, "similarity precompute finished",
		"store_id", storeID, "products", len(products))
	return nil
}

// GetSimilar 优先读预算结果，缺失时现算兜底（不落库）
func (s *SimilarityServiceImpl) GetSimilar(ctx context.Context, storeID uint64, externalProductID string, limit int) ([]*SimilarItem, error) {
	if limit <= 0 || limit > s.cfg.SimilarFanout {
		limit = s.cfg.SimilarFanout
	}

	product, err := s.productRepo.GetByExternalID(ctx, storeID, externalProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	entries, err := s.similarityRepo.ListBySource(ctx, storeID, product.ID, limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		if product.Category == "" {
			return []*SimilarItem{}, nil
		}
		entries, err = s.candidatesFor(ctx, product)
		if err != nil {
			return nil, err
		}
		if len(entries) > limit {
			entries = entries[:limit]
		}
	}

	targetIDs := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		targetIDs = append(targetIDs, entry.TargetProductID)
	}
	targets, err := s.productRepo.GetByIDs(ctx, storeID, targetIDs)
	if err != nil {
		return nil, err
	}
	targetByID := make(map[uint64]*model.Product, len(targets))
	for _, p := range targets {
		targetByID[p.ID] = p
	}

	items := make([]*SimilarItem, 0, len(entries))
	for _, entry := range entries {
		target := targetByID[entry.TargetProductID]
		if target == nil {
			continue
		}
		items = append(items, &SimilarItem{
			Product:         target,
			SimilarityScore: entry.SimilarityScore,
			SimilarityType:  entry.SimilarityType,
			FeaturesUsed:    entry.FeaturesUsed,
		})
	}
	return items, nil
}

// candidatesFor 同类目、价格带 ±50% 的候选，价格未知时不设价格带
func (s *SimilarityServiceImpl) candidatesFor(ctx context.Context, product *model.Product) ([]*model.SimilarProduct, error) {
	var minPrice, maxPrice *float64
	features := model.StringList{"category"}
	if product.Price != nil && *product.Price > 0 {
		lower := *product.Price * (1 - priceBandRatio)
		upper := *product.Price * (1 + priceBandRatio)
		minPrice, maxPrice = &lower, &upper
		features = model.StringList{"category", "price"}
	}

	candidates, err := s.productRepo.ListSimilarCandidates(
		ctx, product.StoreID, product.Category, minPrice, maxPrice, product.ID, s.cfg.SimilarFanout)
	if err != nil {
		return nil, err
	}

	entries := make([]*model.SimilarProduct, 0, len(candidates))
	for _, candidate := range candidates {
		entries = append(entries, &model.SimilarProduct{
			StoreID:         product.StoreID,
			SourceProductID: product.ID,
			TargetProductID: candidate.ID,
			SimilarityScore: model.ContentSimilarity(product.Price, candidate.Price),
			SimilarityType:  "content",
			FeaturesUsed:    features,
			CalculatedAt:    time.Now(),
		})
	}
	return entries, nil
}
