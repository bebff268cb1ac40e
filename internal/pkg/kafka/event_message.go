package kafka

import (
	"errors"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// InteractionEventMessage 互动事件消息结构体
type InteractionEventMessage struct {
	StoreID         uint64                 `json:"store_id"`
	UserID          string                 `json:"user_id"`
	SessionID       string                 `json:"session_id"`
	ProductID       string                 `json:"product_id"`
	InteractionType string                 `json:"interaction_type"`
	Value           float64                `json:"value"`
	Metadata        map[string]interface{} `json:"metadata"`
	OccurredAt      time.Time              `json:"occurred_at"`
}

// ToInteractionEvent 将kafka消息转换为互动事件结构体
func ToInteractionEvent(msg *sarama.ConsumerMessage) (*InteractionEventMessage, error) {
	var evt InteractionEventMessage
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Error("unmarshal interaction event error", "err", err)
		return nil, err
	}

	if evt.StoreID == 0 {
		return nil, errors.New("store_id is empty")
	}
	if evt.UserID == "" && evt.SessionID == "" {
		return nil, errors.New("event has no subject")
	}
	if evt.ProductID == "" {
		return nil, errors.New("product_id is empty")
	}

	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}

	return &evt, nil
}
