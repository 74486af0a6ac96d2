package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/service"
)

// JournalHandler mantiene dependencias para endpoints de diario.
type JournalHandler struct {
	logger      *zap.Logger
	journalServ *service.JournalService
}

func NewJournalHandler(logger *zap.Logger, journalServ *service.JournalService) *JournalHandler {
	return &JournalHandler{logger: logger, journalServ: journalServ}
}

// CreateEntry maneja POST /journal.
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	var req struct {
		UserID      string `json:"user_id" binding:"required"`
		EntryDate   string `json:"entry_date" binding:"required"`
		Mood        int    `json:"mood" binding:"required"`
		DoseTaken   bool   `json:"dose_taken"`
		Notes       string `json:"notes"`
		SideEffects string `json:"side_effects"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create journal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entryDate, err := domain.ParseDay(req.EntryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry_date, expected YYYY-MM-DD"})
		return
	}

	entry, err := h.journalServ.CreateEntry(c.Request.Context(), service.CreateEntryInput{
		UserID:      req.UserID,
		EntryDate:   entryDate,
		Mood:        req.Mood,
		DoseTaken:   req.DoseTaken,
		Notes:       req.Notes,
		SideEffects: req.SideEffects,
	})
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": vErr.Messages, "is_valid": false})
			return
		}
		h.logger.Error("create journal entry failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

// ListEntries maneja GET /journal?user_id=&from=&to=.
func (h *JournalHandler) ListEntries(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id required"})
		return
	}

	var from, to *domain.Day
	if raw := c.Query("from"); raw != "" {
		day, err := domain.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from, expected YYYY-MM-DD"})
			return
		}
		from = &day
	}
	if raw := c.Query("to"); raw != "" {
		day, err := domain.ParseDay(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to, expected YYYY-MM-DD"})
			return
		}
		to = &day
	}

	entries, err := h.journalServ.ListEntries(c.Request.Context(), userID, from, to)
	if err != nil {
		h.logger.Error("list journal entries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list entries"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
