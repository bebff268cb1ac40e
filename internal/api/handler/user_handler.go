package handler

import (
	"Vitrine/internal/api/dto"
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/response"
	"Vitrine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// Create 幂等注册：同一外部标识重复调用返回既有用户
func (s *UserHandler) Create(c *gin.Context) {
	storeID := c.GetUint64("store_id")

	var req dto.CreateUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.userSvc.EnsureUser(c.Request.Context(), storeID, req.ExternalID, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, userDTO)
}

func (s *UserHandler) GetBehaviorProfile(c *gin.Context) {
	user, ok := s.resolveUser(c)
	if !ok {
		return
	}

	profile, err := s.userSvc.GetBehaviorProfile(c.Request.Context(), user.StoreID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	profileDTO := &dto.BehaviorProfileDTO{
		TotalInteractions:      profile.TotalInteractions,
		TotalViews:             profile.TotalViews,
		TotalPurchases:         profile.TotalPurchases,
		TotalCartAdds:          profile.TotalCartAdds,
		AvgSessionDuration:     profile.AvgSessionDuration,
		AvgTimeBetweenSessions: profile.AvgTimeBetweenSessions,
		LastActiveAt:           profile.LastActiveAt,
		PreferredCategories:    profile.PreferredCategories,
		BrowsingPattern:        profile.BrowsingPattern,
		PurchaseFrequency:      profile.PurchaseFrequency,
		AvgOrderValue:          profile.AvgOrderValue,
		UpdatedAt:              profile.UpdatedAt,
	}
	if profile.PricePreference != nil {
		profileDTO.PricePreference = profile.PricePreference
	}
	response.Success(c, profileDTO)
}

func (s *UserHandler) GetRecommendationProfile(c *gin.Context) {
	user, ok := s.resolveUser(c)
	if !ok {
		return
	}

	profile, err := s.userSvc.GetRecommendationProfile(c.Request.Context(), user.StoreID, user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	profileDTO := &dto.RecProfileDTO{}
	if err := copier.Copy(profileDTO, profile); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, profileDTO)
}

func (s *UserHandler) resolveUser(c *gin.Context) (*model.User, bool) {
	storeID := c.GetUint64("store_id")
	externalID := c.Param("user_id")

	user, err := s.userSvc.GetUserByExternalID(c.Request.Context(), storeID, externalID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return user, true
}
