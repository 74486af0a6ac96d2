package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/repository"
)

// JournalService maneja las entradas de diario del usuario.
type JournalService struct {
	logger  *zap.Logger
	entries repository.JournalRepository
}

func NewJournalService(logger *zap.Logger, entries repository.JournalRepository) *JournalService {
	return &JournalService{logger: logger, entries: entries}
}

// CreateEntryInput son los campos editables de una entrada nueva.
type CreateEntryInput struct {
	UserID      string
	EntryDate   domain.Day
	Mood        int
	DoseTaken   bool
	Notes       string
	SideEffects string
}

func (s *JournalService) CreateEntry(ctx context.Context, input CreateEntryInput) (domain.JournalEntry, error) {
	var msgs []string
	if input.UserID == "" {
		msgs = append(msgs, "user_id requerido")
	}
	if input.EntryDate.IsZero() {
		msgs = append(msgs, "fecha de entrada requerida")
	}
	if input.Mood < 1 || input.Mood > 10 {
		msgs = append(msgs, fmt.Sprintf("estado de ánimo fuera de rango: %d (permitido 1-10)", input.Mood))
	}
	if len(msgs) > 0 {
		return domain.JournalEntry{}, &ValidationError{Messages: msgs}
	}

	entry := domain.JournalEntry{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		EntryDate:   input.EntryDate,
		Mood:        input.Mood,
		DoseTaken:   input.DoseTaken,
		Notes:       input.Notes,
		SideEffects: input.SideEffects,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return domain.JournalEntry{}, err
	}

	s.logger.Info("journal entry created",
		zap.String("user_id", entry.UserID),
		zap.String("entry_date", entry.EntryDate.String()),
	)
	return entry, nil
}

// ListEntries devuelve las entradas del usuario, opcionalmente acotadas por
// rango de fechas inclusivo.
func (s *JournalService) ListEntries(ctx context.Context, userID string, from, to *domain.Day) ([]domain.JournalEntry, error) {
	return s.entries.ListByUser(ctx, userID, from, to)
}
