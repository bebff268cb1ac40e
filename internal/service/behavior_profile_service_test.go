package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseFrequency(t *testing.T) {
	assert.Equal(t, model.PurchaseRare, purchaseFrequency(0))
	assert.Equal(t, model.PurchaseRare, purchaseFrequency(3))
	assert.Equal(t, model.PurchaseOccasional, purchaseFrequency(4))
	assert.Equal(t, model.PurchaseOccasional, purchaseFrequency(10))
	assert.Equal(t, model.PurchaseFrequent, purchaseFrequency(11))
}

func TestBrowsingPattern(t *testing.T) {
	// 浏览占比超八成
	assert.Equal(t, model.BrowsingExplorer, browsingPattern(&repository.UserStats{Total: 10, Views: 9}))

	// 购买/浏览比超一成
	assert.Equal(t, model.BrowsingFocused, browsingPattern(&repository.UserStats{Total: 10, Views: 5, Purchases: 1}))

	assert.Equal(t, model.BrowsingBrowser, browsingPattern(&repository.UserStats{Total: 10, Views: 5}))
	assert.Equal(t, model.BrowsingBrowser, browsingPattern(&repository.UserStats{}))
}

func TestRebuildUnknownUserIsNoop(t *testing.T) {
	profileRepo := &fakeBehaviorProfileRepo{}
	svc := NewBehaviorProfileService(newFakeUserRepo(), &fakeInteractionRepo{}, newFakeSessionRepo(), profileRepo)

	// 脏集合里残留已删除用户时任务不该报错
	assert.NoError(t, svc.Rebuild(context.Background(), 42))
	assert.Nil(t, profileRepo.saved)
}

func TestRebuildAggregatesProfile(t *testing.T) {
	ctx := context.Background()
	lastActive := time.Now().Add(-time.Hour)
	firstStart := time.Now().AddDate(0, 0, -10)
	lastStart := time.Now()

	userRepo := newFakeUserRepo()
	userRepo.users[7] = &model.User{ID: 7, StoreID: 1, ExternalID: "cust-7"}

	interactionRepo := &fakeInteractionRepo{
		stats: &repository.UserStats{
			Total:      40,
			Views:      20,
			Purchases:  5,
			CartAdds:   6,
			LastActive: &lastActive,
		},
		purchase: &repository.PurchaseStats{Count: 5, Min: 10, Max: 90, Avg: 45, Total: 225},
		categories: []repository.CategoryWeight{
			{Category: "Shoes", TotalWeight: 12.5},
			{Category: "Hats", TotalWeight: 3},
		},
	}
	sessionRepo := newFakeSessionRepo()
	sessionRepo.stats = &repository.SessionStats{
		Count:       6,
		AvgDuration: 300,
		FirstStart:  &firstStart,
		LastStart:   &lastStart,
	}
	profileRepo := &fakeBehaviorProfileRepo{}

	svc := NewBehaviorProfileService(userRepo, interactionRepo, sessionRepo, profileRepo)
	assert.NoError(t, svc.Rebuild(ctx, 7))

	profile := profileRepo.saved
	assert.NotNil(t, profile)
	assert.Equal(t, uint64(1), profile.StoreID)
	assert.Equal(t, uint64(7), profile.UserID)
	assert.Equal(t, 40, profile.TotalInteractions)
	assert.Equal(t, 20, profile.TotalViews)
	assert.Equal(t, 5, profile.TotalPurchases)
	assert.Equal(t, 6, profile.TotalCartAdds)
	assert.Equal(t, 300.0, profile.AvgSessionDuration)
	assert.Equal(t, lastActive, *profile.LastActiveAt)

	// 10 天跨 6 个会话 = 平均 2 天一次
	assert.InDelta(t, 2.0, profile.AvgTimeBetweenSessions, 0.01)

	assert.Equal(t, model.WeightMap{"Shoes": 12.5, "Hats": 3}, profile.PreferredCategories)
	assert.Equal(t, model.PurchaseOccasional, profile.PurchaseFrequency)
	assert.Equal(t, model.BrowsingFocused, profile.BrowsingPattern)
	assert.Equal(t, 45.0, profile.AvgOrderValue)

	assert.NotNil(t, profile.PricePreference)
	assert.Equal(t, 10.0, profile.PricePreference.Min)
	assert.Equal(t, 90.0, profile.PricePreference.Max)
}

func TestRebuildWithoutPurchasesOmitsPricePreference(t *testing.T) {
	userRepo := newFakeUserRepo()
	userRepo.users[7] = &model.User{ID: 7, StoreID: 1, ExternalID: "cust-7"}
	profileRepo := &fakeBehaviorProfileRepo{}

	svc := NewBehaviorProfileService(userRepo, &fakeInteractionRepo{
		stats: &repository.UserStats{Total: 3, Views: 3},
	}, newFakeSessionRepo(), profileRepo)

	assert.NoError(t, svc.Rebuild(context.Background(), 7))
	assert.NotNil(t, profileRepo.saved)
	assert.Nil(t, profileRepo.saved.PricePreference)
	assert.Equal(t, model.PurchaseRare, profileRepo.saved.PurchaseFrequency)

	// 单会话算不出会话间隔
	assert.Equal(t, 0.0, profileRepo.saved.AvgTimeBetweenSessions)
}
