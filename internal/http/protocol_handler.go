package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/service"
)

// ProtocolHandler mantiene dependencias para endpoints de protocolos.
type ProtocolHandler struct {
	logger       *zap.Logger
	protocolServ *service.ProtocolService
}

func NewProtocolHandler(logger *zap.Logger, protocolServ *service.ProtocolService) *ProtocolHandler {
	return &ProtocolHandler{logger: logger, protocolServ: protocolServ}
}

// CreateProtocol maneja POST /protocols.
func (h *ProtocolHandler) CreateProtocol(c *gin.Context) {
	var req struct {
		UserID           string            `json:"user_id" binding:"required"`
		Type             string            `json:"type" binding:"required"`
		StartDate        string            `json:"start_date" binding:"required"`
		CycleLengthWeeks int               `json:"cycle_length_weeks" binding:"required"`
		DoseDays         []int             `json:"dose_days"`
		ReminderTime     string            `json:"reminder_time"`
		Dose             doseParamsRequest `json:"dose" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create protocol request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	startDate, err := domain.ParseDay(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}

	protocol, err := h.protocolServ.Create(c.Request.Context(), service.CreateProtocolInput{
		UserID: req.UserID,
		Definition: domain.ProtocolDefinition{
			Type:             domain.ProtocolType(req.Type),
			StartDate:        startDate,
			CycleLengthWeeks: req.CycleLengthWeeks,
			DoseDays:         req.DoseDays,
			ReminderTime:     req.ReminderTime,
		},
		DoseParams: req.Dose.toDomain(),
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": vErr.Messages, "is_valid": false})
			return
		}
		h.logger.Error("create protocol failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create protocol"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"protocol": protocol})
}

// GetProtocol maneja GET /protocols/:id.
func (h *ProtocolHandler) GetProtocol(c *gin.Context) {
	protocol, err := h.protocolServ.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProtocolNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "protocol not found"})
			return
		}
		h.logger.Error("get protocol failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load protocol"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"protocol": protocol})
}

// ListProtocols maneja GET /protocols?user_id=.
func (h *ProtocolHandler) ListProtocols(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	protocols, err := h.protocolServ.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list protocols failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list protocols"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"protocols": protocols})
}
