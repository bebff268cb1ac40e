package handler

import (
	"Vitrine/internal/api/dto"
	"Vitrine/internal/pkg/response"
	"Vitrine/internal/service"
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type RecommendationHandler struct {
	recSvc  service.RecommendationService
	userSvc service.UserService
}

func NewRecommendationHandler(recSvc service.RecommendationService, userSvc service.UserService) *RecommendationHandler {
	return &RecommendationHandler{
		recSvc:  recSvc,
		userSvc: userSvc,
	}
}

// Get 拉取推荐。user_id 只做解析不建档，建档走 POST /users；
// 没注册过的 user_id 退化为匿名请求，连会话都没有时直接返回空。
func (s *RecommendationHandler) Get(c *gin.Context) {
	storeID := c.GetUint64("store_id")

	var query dto.RecommendationQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if query.UserID == "" && query.SessionID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var userID uint64
	if query.UserID != "" {
		user, err := s.userSvc.GetUserByExternalID(c.Request.Context(), storeID, query.UserID)
		if err != nil && !errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, err)
			return
		}
		if user != nil {
			userID = user.ID
		} else if query.SessionID == "" {
			response.Success(c, []*dto.RecommendationDTO{})
			return
		}
	}

	items, err := s.recSvc.GetRecommendedItems(c.Request.Context(), storeID, userID, query.SessionID, query.Algorithm, query.ProductID, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := make([]*dto.RecommendationDTO, 0, len(items))
	for _, item := range items {
		entry := &dto.RecommendationDTO{
			RecommendationID: item.Recommendation.ID,
			Algorithm:        item.Recommendation.Algorithm,
			Score:            item.Recommendation.Score,
			Rank:             item.Recommendation.Rank,
			Explanation:      item.Recommendation.Explanation,
			ClickThroughRate: item.Recommendation.ClickThroughRate(),
			ConversionRate:   item.Recommendation.ConversionRate(),
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

func (s *RecommendationHandler) RecordImpression(c *gin.Context) {
	s.recordFeedback(c, s.recSvc.RecordImpression)
}

func (s *RecommendationHandler) RecordClick(c *gin.Context) {
	s.recordFeedback(c, s.recSvc.RecordClick)
}

func (s *RecommendationHandler) recordFeedback(c *gin.Context, record func(ctx context.Context, storeID, recommendationID uint64) error) {
	storeID := c.GetUint64("store_id")

	recommendationID, err := strconv.ParseUint(c.Param("recommendation_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := record(c.Request.Context(), storeID, recommendationID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
