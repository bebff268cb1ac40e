package dto

import "time"

// EventDTO 入站互动事件，user_id 与 session_id 至少带一个
type EventDTO struct {
	UserID          string                 `json:"user_id"`
	SessionID       string                 `json:"session_id"`
	ProductID       string                 `json:"product_id"`
	InteractionType string                 `json:"interaction_type" binding:"required"`
	Value           float64                `json:"value"`
	Metadata        map[string]interface{} `json:"metadata"`
	OccurredAt      time.Time              `json:"occurred_at"`
}
