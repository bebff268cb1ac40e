package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
)

type UserService interface {
	EnsureUser(ctx context.Context, storeID uint64, externalID, email string) (*model.User, error)
	GetUser(ctx context.Context, storeID, userID uint64) (*model.User, error)
	GetUserByExternalID(ctx context.Context, storeID uint64, externalID string) (*model.User, error)
	GetBehaviorProfile(ctx context.Context, storeID, userID uint64) (*model.UserBehaviorProfile, error)
	GetRecommendationProfile(ctx context.Context, storeID, userID uint64) (*model.UserRecommendationProfile, error)
}

type UserServiceImpl struct {
	userRepo            repository.UserRepo
	behaviorProfileRepo repository.BehaviorProfileRepo
	recProfileRepo      repository.RecProfileRepo
}

func NewUserService(
	userRepo repository.UserRepo,
	behaviorProfileRepo repository.BehaviorProfileRepo,
	recProfileRepo repository.RecProfileRepo,
) UserService {
	return &UserServiceImpl{
		userRepo:            userRepo,
		behaviorProfileRepo: behaviorProfileRepo,
		recProfileRepo:      recProfileRepo,
	}
}

// EnsureUser 按店铺外部标识取或建用户
func (s *UserServiceImpl) EnsureUser(ctx context.Context, storeID uint64, externalID, email string) (*model.User, error) {
	if externalID == "" {
		return nil, ErrParamInvalid
	}

	user, err := s.userRepo.GetByExternalID(ctx, storeID, externalID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if email != "" && user.Email != email {
			user.Email = email
			if err := s.userRepo.UpdateEmail(ctx, user.ID, email); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	user = &model.User{
		StoreID:    storeID,
		ExternalID: externalID,
		Email:      email,
		IsActive:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 并发创建同一外部标识时唯一键会拦下后到者，回读一次
		existing, getErr := s.userRepo.GetByExternalID(ctx, storeID, externalID)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetUser(ctx context.Context, storeID, userID uint64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.StoreID != storeID {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByExternalID(ctx context.Context, storeID uint64, externalID string) (*model.User, error) {
	if externalID == "" {
		return nil, ErrParamInvalid
	}
	user, err := s.userRepo.GetByExternalID(ctx, storeID, externalID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserServiceImpl) GetBehaviorProfile(ctx context.Context, storeID, userID uint64) (*model.UserBehaviorProfile, error) {
	if _, err := s.GetUser(ctx, storeID, userID); err != nil {
		return nil, err
	}
	profile, err := s.behaviorProfileRepo.Get(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *UserServiceImpl) GetRecommendationProfile(ctx context.Context, storeID, userID uint64) (*model.UserRecommendationProfile, error) {
	if _, err := s.GetUser(ctx, storeID, userID); err != nil {
		return nil, err
	}
	profile, err := s.recProfileRepo.Get(ctx, storeID, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}
