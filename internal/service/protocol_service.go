package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/metrics"
	"microdose-api/internal/repository"
)

// ProtocolService orquesta la creación de protocolos: valida definición y
// parámetros de dosis, calcula la dosis, genera el calendario, lo persiste
// y encola los recordatorios de los días de dosis.
type ProtocolService struct {
	logger    *zap.Logger
	protocols repository.ProtocolRepository
	reminders ReminderQueue
}

func NewProtocolService(logger *zap.Logger, protocols repository.ProtocolRepository, reminders ReminderQueue) *ProtocolService {
	return &ProtocolService{
		logger:    logger,
		protocols: protocols,
		reminders: reminders,
	}
}

// CreateProtocolInput agrupa la definición del calendario y los parámetros
// con los que se calcula la dosis a estampar en los días de dosis.
type CreateProtocolInput struct {
	UserID     string
	Definition domain.ProtocolDefinition
	DoseParams domain.DoseParameters
}

// Create valida todo junto (una sola respuesta con todas las violaciones),
// genera el calendario y lo deja persistido de forma atómica.
func (s *ProtocolService) Create(ctx context.Context, input CreateProtocolInput) (domain.Protocol, error) {
	var msgs []string
	if vr := ValidateProtocolDefinition(input.Definition); !vr.IsValid {
		msgs = append(msgs, vr.Errors...)
	}
	if vr := ValidateDoseParameters(input.DoseParams); !vr.IsValid {
		msgs = append(msgs, vr.Errors...)
	}
	if len(msgs) > 0 {
		metrics.ValidationFailures.WithLabelValues("protocol").Inc()
		return domain.Protocol{}, &ValidationError{Messages: msgs}
	}

	doseResult := CalculateDose(input.DoseParams)
	doseRef := domain.DoseRef{
		Substance: doseResult.Substance,
		Dose:      doseResult.CalculatedDose,
		Unit:      doseResult.DoseUnit,
	}

	protocol := domain.Protocol{
		ID:               uuid.NewString(),
		UserID:           input.UserID,
		Type:             input.Definition.Type,
		StartDate:        input.Definition.StartDate,
		CycleLengthWeeks: input.Definition.CycleLengthWeeks,
		DoseDays:         input.Definition.DoseDays,
		ReminderTime:     input.Definition.ReminderTime,
		Substance:        doseRef.Substance,
		Dose:             doseRef.Dose,
		DoseUnit:         doseRef.Unit,
		CreatedAt:        time.Now().UTC(),
	}

	events := GenerateSchedule(input.Definition, doseRef)
	for i := range events {
		events[i].ID = uuid.NewString()
		events[i].ProtocolID = protocol.ID
	}
	protocol.Events = events

	if err := s.protocols.Create(ctx, protocol, events); err != nil {
		return domain.Protocol{}, err
	}

	for _, ev := range events {
		metrics.ProtocolEventsGenerated.WithLabelValues(string(protocol.Type), string(ev.Type)).Inc()
	}
	metrics.ProtocolsCreated.WithLabelValues(string(protocol.Type)).Inc()

	s.enqueueReminders(ctx, protocol, events)

	s.logger.Info("protocol created",
		zap.String("protocol_id", protocol.ID),
		zap.String("user_id", input.UserID),
		zap.String("type", string(protocol.Type)),
		zap.Int("events", len(events)),
	)
	return protocol, nil
}

// enqueueReminders planifica los recordatorios de los días de dosis. Falla
// abierto: un problema con la cola no invalida el protocolo ya persistido.
func (s *ProtocolService) enqueueReminders(ctx context.Context, protocol domain.Protocol, events []domain.ProtocolEvent) {
	if s.reminders == nil {
		return
	}
	reminders, err := PlanReminders(protocol.ID, events, protocol.ReminderTime)
	if err != nil {
		s.logger.Warn("reminder planning failed", zap.Error(err), zap.String("protocol_id", protocol.ID))
		return
	}
	if err := s.reminders.Enqueue(ctx, reminders); err != nil {
		s.logger.Warn("reminder enqueue failed", zap.Error(err), zap.String("protocol_id", protocol.ID))
	}
}

// GetByID devuelve un protocolo con su calendario completo.
func (s *ProtocolService) GetByID(ctx context.Context, id string) (domain.Protocol, error) {
	protocol, err := s.protocols.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Protocol{}, ErrProtocolNotFound
	}
	return protocol, err
}

// ListByUser devuelve los protocolos del usuario, sin eventos.
func (s *ProtocolService) ListByUser(ctx context.Context, userID string) ([]domain.Protocol, error) {
	return s.protocols.ListByUser(ctx, userID)
}
