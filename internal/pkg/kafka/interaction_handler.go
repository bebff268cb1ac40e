package kafka

import (
	"Vitrine/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type InteractionHandler struct {
	eventSvc service.EventService
}

func NewInteractionHandler(eventSvc service.EventService) *InteractionHandler {
	return &InteractionHandler{
		eventSvc: eventSvc,
	}
}

func (s *InteractionHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("interaction consumer setup")
	return nil
}

func (s *InteractionHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("interaction consumer cleanup")
	return nil
}

func (s *InteractionHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-interaction consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-interaction process batch error", "err", err)
		return err
	}
	return nil
}

func (s *InteractionHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	evt, err := ToInteractionEvent(msg)
	if err != nil {
		// 结构非法的消息没有重试价值，记录后跳过
		log.WarnContext(ctx, "skip malformed interaction event", "err", err)
		return nil
	}

	return s.eventSvc.Ingest(ctx, &service.IngestEvent{
		StoreID:         evt.StoreID,
		UserExternalID:  evt.UserID,
		SessionID:       evt.SessionID,
		ProductID:       evt.ProductID,
		InteractionType: evt.InteractionType,
		Value:           evt.Value,
		Metadata:        evt.Metadata,
		OccurredAt:      evt.OccurredAt,
	})
}
