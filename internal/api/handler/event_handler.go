package handler

import (
	"Vitrine/internal/api/dto"
	"Vitrine/internal/pkg/response"
	"Vitrine/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventSvc service.EventService
}

func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{
		eventSvc: eventSvc,
	}
}

func (s *EventHandler) Ingest(c *gin.Context) {
	storeID := c.GetUint64("store_id")

	var req dto.EventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	err := s.eventSvc.Ingest(c.Request.Context(), &service.IngestEvent{
		StoreID:         storeID,
		UserExternalID:  req.UserID,
		SessionID:       req.SessionID,
		ProductID:       req.ProductID,
		InteractionType: req.InteractionType,
		Value:           req.Value,
		Metadata:        req.Metadata,
		OccurredAt:      req.OccurredAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
