package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/service"
)

// DoseHandler mantiene dependencias para endpoints de cálculo de dosis.
type DoseHandler struct {
	logger   *zap.Logger
	doseServ *service.DoseService
}

func NewDoseHandler(logger *zap.Logger, doseServ *service.DoseService) *DoseHandler {
	return &DoseHandler{logger: logger, doseServ: doseServ}
}

// doseParamsRequest es el cuerpo compartido de parámetros de dosis.
type doseParamsRequest struct {
	Gender            string  `json:"gender" binding:"required"`
	WeightKg          float64 `json:"weight_kg" binding:"required"`
	Substance         string  `json:"substance" binding:"required"`
	IntakeForm        string  `json:"intake_form" binding:"required"`
	Sensitivity       float64 `json:"sensitivity" binding:"required"`
	Goal              string  `json:"goal" binding:"required"`
	Experience        string  `json:"experience"`
	CurrentMedication string  `json:"current_medication"`
}

func (r doseParamsRequest) toDomain() domain.DoseParameters {
	return domain.DoseParameters{
		Gender:            domain.Gender(r.Gender),
		WeightKg:          r.WeightKg,
		Substance:         domain.Substance(r.Substance),
		IntakeForm:        domain.IntakeForm(r.IntakeForm),
		Sensitivity:       r.Sensitivity,
		Goal:              domain.DoseGoal(r.Goal),
		Experience:        domain.Experience(r.Experience),
		CurrentMedication: r.CurrentMedication,
	}
}

// Calculate maneja POST /dose/calculate.
func (h *DoseHandler) Calculate(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		doseParamsRequest
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid dose calculate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.doseServ.CalculateAndStore(c.Request.Context(), req.UserID, req.toDomain())
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": vErr.Messages, "is_valid": false})
			return
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		default:
			h.logger.Error("dose calculate failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not calculate dose"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// History maneja GET /dose/history?user_id=&limit=.
func (h *DoseHandler) History(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	results, err := h.doseServ.History(c.Request.Context(), userID, limit)
	if err != nil {
		h.logger.Error("dose history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
