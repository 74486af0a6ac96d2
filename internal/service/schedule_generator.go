package service

import (
	"fmt"
	"time"

	"microdose-api/internal/domain"
)

// Límites de dominio de una definición de protocolo.
const (
	minCycleWeeks = 2
	maxCycleWeeks = 6
	maxCustomDays = 4 // tope de densidad de días de dosis por semana
	daysPerWeek   = 7
)

// ValidateProtocolDefinition revisa la definición contra su dominio declarado.
// Misma disciplina que ValidateDoseParameters: todas las violaciones en una
// pasada, sin mutar la entrada.
func ValidateProtocolDefinition(def domain.ProtocolDefinition) domain.ValidationResult {
	var errs []string

	switch def.Type {
	case domain.ProtocolFadiman, domain.ProtocolStamets, domain.ProtocolCustom:
	default:
		errs = append(errs, fmt.Sprintf("tipo de protocolo inválido %q: debe ser fadiman, stamets o custom", def.Type))
	}
	if def.StartDate.IsZero() {
		errs = append(errs, "fecha de inicio requerida")
	}
	if def.CycleLengthWeeks < minCycleWeeks || def.CycleLengthWeeks > maxCycleWeeks {
		errs = append(errs, fmt.Sprintf("duración de ciclo fuera de rango: %d semanas (permitido %d-%d)", def.CycleLengthWeeks, minCycleWeeks, maxCycleWeeks))
	}
	if def.Type == domain.ProtocolCustom {
		if len(def.DoseDays) == 0 {
			errs = append(errs, "protocolo custom requiere al menos un día de dosis")
		}
		if len(def.DoseDays) > maxCustomDays {
			errs = append(errs, fmt.Sprintf("protocolo custom admite máximo %d días de dosis, recibidos %d", maxCustomDays, len(def.DoseDays)))
		}
		seen := make(map[int]bool, len(def.DoseDays))
		for _, d := range def.DoseDays {
			if d < 0 || d > 6 {
				errs = append(errs, fmt.Sprintf("día de semana inválido %d: debe estar entre 0 y 6", d))
				continue
			}
			if seen[d] {
				errs = append(errs, fmt.Sprintf("día de semana duplicado %d", d))
			}
			seen[d] = true
		}
	}

	return domain.ValidationResult{Errors: errs, IsValid: len(errs) == 0}
}

// GenerateSchedule expande la definición en la secuencia día a día de eventos
// dose/pause, en orden ascendente, sin huecos ni duplicados. El rango es
// [startDate, startDate + semanas×7] inclusive: exactamente 7×semanas + 1
// eventos. Asume definición ya validada; es una pasada pura y determinista
// sin estado entre días.
func GenerateSchedule(def domain.ProtocolDefinition, dose domain.DoseRef) []domain.ProtocolEvent {
	totalDays := def.CycleLengthWeeks * daysPerWeek

	events := make([]domain.ProtocolEvent, 0, totalDays+1)
	for i := 0; i <= totalDays; i++ {
		date := def.StartDate.AddDays(i)
		ev := domain.ProtocolEvent{
			Date: date,
			Type: domain.EventPause,
			Metadata: domain.EventMetadata{
				DayIndex: i,
				Weekday:  date.Weekday(),
				Rule:     def.Type,
			},
		}
		if isDoseDay(def, i, date.Weekday()) {
			ev.Type = domain.EventDose
			ev.Substance = dose.Substance
			ev.Dose = dose.Dose
			ev.DoseUnit = dose.Unit
		}
		events = append(events, ev)
	}
	return events
}

// isDoseDay clasifica un día según la regla del protocolo.
//   - fadiman: 1 día de dosis, 2 de pausa (período 3, arranca en dosis).
//   - stamets: 4 días de dosis, 3 de pausa (período 7, arranca en dosis).
//   - custom: pertenencia del día de semana al conjunto configurado,
//     independiente de daysSinceStart.
func isDoseDay(def domain.ProtocolDefinition, daysSinceStart int, weekday time.Weekday) bool {
	switch def.Type {
	case domain.ProtocolFadiman:
		return daysSinceStart%3 == 0
	case domain.ProtocolStamets:
		return daysSinceStart%7 < 4
	case domain.ProtocolCustom:
		for _, d := range def.DoseDays {
			if int(weekday) == d {
				return true
			}
		}
		return false
	}
	return false
}
