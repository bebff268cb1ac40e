package service

import (
	"Vitrine/internal/model"
	"Vitrine/internal/pkg/consts"
	"Vitrine/internal/pkg/mongo"
	"Vitrine/internal/pkg/redis"
	"Vitrine/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// IngestEvent 入站互动事件，HTTP 与 Kafka 两条链路共用
type IngestEvent struct {
	StoreID         uint64
	UserExternalID  string
	SessionID       string
	ProductID       string // 店铺侧商品外部 ID
	InteractionType string
	Value           float64
	Metadata        map[string]interface{}
	OccurredAt      time.Time
}

type EventService interface {
	Ingest(ctx context.Context, evt *IngestEvent) error
}

type EventServiceImpl struct {
	storeRepo       repository.StoreRepo
	userRepo        repository.UserRepo
	sessionRepo     repository.SessionRepo
	productRepo     repository.ProductRepo
	interactionRepo repository.InteractionRepo
	eventRepo       mongo.InteractionEventRepo
	userSvc         UserService
	recSvc          RecommendationService
}

func NewEventService(
	storeRepo repository.StoreRepo,
	userRepo repository.UserRepo,
	sessionRepo repository.SessionRepo,
	productRepo repository.ProductRepo,
	interactionRepo repository.InteractionRepo,
	eventRepo mongo.InteractionEventRepo,
	userSvc UserService,
	recSvc RecommendationService,
) EventService {
	return &EventServiceImpl{
		storeRepo:       storeRepo,
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		productRepo:     productRepo,
		interactionRepo: interactionRepo,
		eventRepo:       eventRepo,
		userSvc:         userSvc,
		recSvc:          recSvc,
	}
}

// Ingest 单个事件的完整落库链路：
// 归档原始负载 → 确保用户/会话存在 → 写互动行 → 回写聚合 → 标脏画像 → 购买归因
func (s *EventServiceImpl) Ingest(ctx context.Context, evt *IngestEvent) error {
	if !model.IsInteractionType(evt.InteractionType) {
		return ErrInteractionTypeInvalid
	}
	if evt.UserExternalID == "" && evt.SessionID == "" {
		return ErrParamInvalid
	}

	store, err := s.storeRepo.GetByID(ctx, evt.StoreID)
	if err != nil {
		return errors.Wrap(err, "load store")
	}
	if store == nil || !store.IsActive {
		return ErrStoreNotFound
	}

	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	// 原始负载归档失败不阻断主链路
	archiveErr := s.eventRepo.SaveEvent(ctx, &mongo.InteractionEvent{
		StoreID:         evt.StoreID,
		UserExternalID:  evt.UserExternalID,
		SessionID:       evt.SessionID,
		ProductID:       evt.ProductID,
		InteractionType: evt.InteractionType,
		Metadata:        evt.Metadata,
		OccurredAt:      occurredAt,
		ReceivedAt:      time.Now(),
	})
	if archiveErr != nil {
		log.WarnContext(ctx, "archive raw event failed", "store_id", evt.StoreID, "err", archiveErr)
	}

	var user *model.User
	if evt.UserExternalID != "" {
		user, err = s.userSvc.EnsureUser(ctx, evt.StoreID, evt.UserExternalID, "")
		if err != nil {
			return errors.Wrap(err, "ensure user")
		}
	}

	var product *model.Product
	if evt.ProductID != "" {
		product, err = s.productRepo.GetByExternalID(ctx, evt.StoreID, evt.ProductID)
		if err != nil {
			return errors.Wrap(err, "load product")
		}
	}

	value := evt.Value
	if value == 0 {
		value = 1
	}

	interaction := &model.Interaction{
		StoreID:  evt.StoreID,
		Type:     evt.InteractionType,
		Value:    value,
		Metadata: evt.Metadata,
	}
	if user != nil {
		interaction.UserID = user.ID
	}
	if product != nil {
		interaction.ProductID = product.ID
		interaction.ProductCategory = product.Category
		interaction.ProductPrice = product.Price
	}

	if evt.SessionID != "" {
		session, err := s.touchSession(ctx, evt, user, product)
		if err != nil {
			return errors.Wrap(err, "touch session")
		}
		interaction.SessionID = session.ID
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return errors.Wrap(err, "create interaction")
	}

	if user != nil {
		if err := s.updateEngagement(ctx, user, evt.InteractionType, value); err != nil {
			return errors.Wrap(err, "update engagement metrics")
		}
		if err := redis.SAdd(ctx, consts.ProfileDirtyKey, strconv.FormatUint(user.ID, 10)); err != nil {
			log.WarnContext(ctx, "mark profile dirty failed", "user_id", user.ID, "err", err)
		}
	}

	s.attributePurchase(ctx, evt)
	return nil
}

// touchSession 按 (store, session_id) 取或建会话并回写本次事件的指标
func (s *EventServiceImpl) touchSession(ctx context.Context, evt *IngestEvent, user *model.User, product *model.Product) (*model.UserSession, error) {
	session, err := s.sessionRepo.GetBySessionID(ctx, evt.StoreID, evt.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &model.UserSession{
			StoreID:   evt.StoreID,
			SessionID: evt.SessionID,
		}
		if user != nil {
			session.UserID = user.ID
		}
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	session.TotalInteractions++
	switch evt.InteractionType {
	case model.InteractionView:
		session.PageViews++
		if product != nil {
			session.ProductsViewed++
		}
	case model.InteractionDetailView:
		if product != nil {
			session.ProductsViewed++
		}
	case model.InteractionCartAdd:
		session.AddedToCart = true
	case model.InteractionPurchase:
		session.Purchased = true
		session.TotalValue += evt.Value
	}

	now := time.Now()
	session.EndTime = &now
	session.DurationSeconds = int(now.Sub(session.StartTime).Seconds())

	if err := s.sessionRepo.UpdateMetrics(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// updateEngagement 回写用户聚合列，均单为总额除以购买次数
func (s *EventServiceImpl) updateEngagement(ctx context.Context, user *model.User, interactionType string, value float64) error {
	user.TotalInteractions++
	if interactionType == model.InteractionPurchase {
		user.TotalPurchases++
		user.TotalValue += value
		user.AvgOrderValue = user.TotalValue / float64(user.TotalPurchases)
	}
	if err := s.userRepo.UpdateEngagementMetrics(ctx, user); err != nil {
		return err
	}
	return s.userRepo.TouchLastSeen(ctx, user.ID)
}

// attributePurchase 购买事件带 recommendation_id 时记一次转化。
// 归因失败只告警，事件本身已经落库。
func (s *EventServiceImpl) attributePurchase(ctx context.Context, evt *IngestEvent) {
	if evt.InteractionType != model.InteractionPurchase || evt.Metadata == nil {
		return
	}
	raw, ok := evt.Metadata["recommendation_id"]
	if !ok {
		return
	}

	var recommendationID uint64
	switch v := raw.(type) {
	case float64:
		recommendationID = uint64(v)
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return
		}
		recommendationID = parsed
	default:
		return
	}
	if recommendationID == 0 {
		return
	}

	if err := s.recSvc.AttributePurchase(ctx, evt.StoreID, recommendationID); err != nil {
		log.WarnContext(ctx, "purchase attribution failed",
			"store_id", evt.StoreID, "recommendation_id", recommendationID, "err", err)
	}
}
