package handler

import (
	"Vitrine/internal/api/dto"
	"Vitrine/internal/pkg/response"
	"Vitrine/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type SimilarHandler struct {
	similaritySvc service.SimilarityService
}

func NewSimilarHandler(similaritySvc service.SimilarityService) *SimilarHandler {
	return &SimilarHandler{
		similaritySvc: similaritySvc,
	}
}

func (s *SimilarHandler) Get(c *gin.Context) {
	storeID := c.GetUint64("store_id")
	productID := c.Param("product_id")

	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := s.similaritySvc.GetSimilar(c.Request.Context(), storeID, productID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]*dto.SimilarProductDTO, 0, len(items))
	for _, item := range items {
		productDTO := &dto.ProductDTO{}
		if err := copier.Copy(productDTO, item.Product); err != nil {
			response.Error(c, err)
			return
		}
		result = append(result, &dto.SimilarProductDTO{
			Product:         productDTO,
			SimilarityScore: item.SimilarityScore,
			SimilarityType:  item.SimilarityType,
			FeaturesUsed:    item.FeaturesUsed,
		})
	}
	response.Success(c, result)
}
