package service

import (
	"fmt"
	"time"

	"microdose-api/internal/domain"
)

const defaultReminderTime = "09:00"

// Reminder es el dato mínimo que necesita el colaborador de notificaciones:
// cuándo avisar y qué dosis corresponde. El envío en sí no ocurre aquí.
type Reminder struct {
	ProtocolID string           `json:"protocol_id"`
	EventID    string           `json:"event_id"`
	At         time.Time        `json:"at"`
	Substance  domain.Substance `json:"substance"`
	Dose       float64          `json:"dose"`
	DoseUnit   domain.DoseUnit  `json:"dose_unit"`
}

// PlanReminders deriva un instante de recordatorio por cada día de dosis del
// calendario, combinando la fecha del evento con la hora "HH:MM" configurada
// en el protocolo (o 09:00 si no hay). Los días de pausa no generan nada.
func PlanReminders(protocolID string, events []domain.ProtocolEvent, reminderTime string) ([]Reminder, error) {
	if reminderTime == "" {
		reminderTime = defaultReminderTime
	}
	at, err := time.Parse("15:04", reminderTime)
	if err != nil {
		return nil, fmt.Errorf("hora de recordatorio inválida %q: %w", reminderTime, err)
	}
	hour, minute := at.Hour(), at.Minute()

	var out []Reminder
	for _, ev := range events {
		if ev.Type != domain.EventDose {
			continue
		}
		out = append(out, Reminder{
			ProtocolID: protocolID,
			EventID:    ev.ID,
			At:         ev.Date.At(hour, minute),
			Substance:  ev.Substance,
			Dose:       ev.Dose,
			DoseUnit:   ev.DoseUnit,
		})
	}
	return out, nil
}
