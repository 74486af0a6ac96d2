package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"microdose-api/internal/domain"
	"microdose-api/internal/metrics"
	"microdose-api/internal/repository"
)

// DoseService orquesta el cálculo de dosis: límite de tasa, validación,
// cálculo puro y persistencia del historial.
type DoseService struct {
	logger  *zap.Logger
	doses   repository.DoseResultRepository
	limiter CalcRateLimiter
}

func NewDoseService(logger *zap.Logger, doses repository.DoseResultRepository, limiter CalcRateLimiter) *DoseService {
	return &DoseService{
		logger:  logger,
		doses:   doses,
		limiter: limiter,
	}
}

// CalculateAndStore valida, calcula y guarda un resultado de dosis para el
// usuario. El cálculo en sí (CalculateDose) nunca falla: los errores de aquí
// son de dominio de entrada, de tasa o de persistencia.
func (s *DoseService) CalculateAndStore(ctx context.Context, userID string, params domain.DoseParameters) (domain.DoseResult, error) {
	if s.limiter != nil && !s.limiter.Allow(userID) {
		return domain.DoseResult{}, ErrRateLimited
	}

	if vr := ValidateDoseParameters(params); !vr.IsValid {
		metrics.ValidationFailures.WithLabelValues("dose").Inc()
		return domain.DoseResult{}, &ValidationError{Messages: vr.Errors}
	}

	result := CalculateDose(params)
	result.ID = uuid.NewString()
	result.UserID = userID
	result.CreatedAt = time.Now().UTC()

	if s.doses != nil {
		if err := s.doses.Create(ctx, result); err != nil {
			return domain.DoseResult{}, err
		}
	}

	metrics.DoseCalculations.WithLabelValues(string(params.Substance)).Inc()
	s.logger.Info("dose calculated",
		zap.String("user_id", userID),
		zap.String("substance", string(params.Substance)),
		zap.Float64("dose", result.CalculatedDose),
		zap.String("unit", string(result.DoseUnit)),
	)
	return result, nil
}

// History devuelve los últimos cálculos guardados del usuario.
func (s *DoseService) History(ctx context.Context, userID string, limit int) ([]domain.DoseResult, error) {
	return s.doses.ListByUser(ctx, userID, limit)
}
