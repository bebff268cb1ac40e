package handler

import (
	"Vitrine/internal/api/dto"
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/response"
	"Vitrine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type TrendingHandler struct {
	trendingSvc service.TrendingService
}

func NewTrendingHandler(trendingSvc service.TrendingService) *TrendingHandler {
	return &TrendingHandler{
		trendingSvc: trendingSvc,
	}
}

func (s *TrendingHandler) Get(c *gin.Context) {
	storeID := c.GetUint64("store_id")

	var query dto.TrendingQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if query.Window == "" {
		query.Window = model.Window24h
	}

	items, err := s.trendingSvc.GetTrendingItems(c.Request.Context(), storeID, query.Window, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]*dto.TrendingProductDTO, 0, len(items))
	for _, item := range items {
		entry := &dto.TrendingProductDTO{
			Window:       item.Entry.Window,
			Score:        item.Entry.Score,
			Velocity:     item.Entry.Velocity,
			Rank:         item.Entry.Rank,
			CalculatedAt: item.Entry.CalculatedAt,
		}
		if item.Product != nil {
			productDTO := &dto.ProductDTO{}
			if err := copier.Copy(productDTO, item.Product); err != nil {
				response.Error(c, err)
				return
			}
			entry.Product = productDTO
		}
		result = append(result, entry)
	}
	response.Success(c, result)
}
