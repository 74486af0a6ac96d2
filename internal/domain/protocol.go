package domain

import "time"

type ProtocolType string

const (
	ProtocolFadiman ProtocolType = "fadiman"
	ProtocolStamets ProtocolType = "stamets"
	ProtocolCustom  ProtocolType = "custom"
)

// ProtocolDefinition describe el calendario solicitado. StartDate ya viene
// normalizada a límite de día (ver Day). DoseDays solo aplica al tipo custom:
// índices de día de semana 0-6 (0 = domingo), máximo 4 seleccionados.
type ProtocolDefinition struct {
	Type             ProtocolType `json:"type"`
	StartDate        Day          `json:"start_date"`
	CycleLengthWeeks int          `json:"cycle_length_weeks"`
	DoseDays         []int        `json:"dose_days,omitempty"`
	ReminderTime     string       `json:"reminder_time,omitempty"` // "HH:MM", hora local del recordatorio
}

type EventType string

const (
	EventDose  EventType = "dose"
	EventPause EventType = "pause"
)

// EventMetadata deja rastro de cómo se clasificó cada día, para auditoría
// posterior sin recomputar.
type EventMetadata struct {
	DayIndex int          `json:"day_index"`
	Weekday  time.Weekday `json:"weekday"`
	Rule     ProtocolType `json:"rule"`
}

// ProtocolEvent es un día del calendario generado. Los campos de dosis solo
// se completan cuando Type == EventDose. La secuencia es append-only: las
// transiciones de estado (completado/omitido) viven en la capa de seguimiento.
type ProtocolEvent struct {
	ID         string        `json:"id,omitempty"`
	ProtocolID string        `json:"protocol_id,omitempty"`
	Date       Day           `json:"date"`
	Type       EventType     `json:"type"`
	Substance  Substance     `json:"substance,omitempty"`
	Dose       float64       `json:"dose,omitempty"`
	DoseUnit   DoseUnit      `json:"dose_unit,omitempty"`
	Metadata   EventMetadata `json:"metadata"`
}

// Protocol es el protocolo persistido junto con su dosis calculada.
type Protocol struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Type             ProtocolType    `json:"type"`
	StartDate        Day             `json:"start_date"`
	CycleLengthWeeks int             `json:"cycle_length_weeks"`
	DoseDays         []int           `json:"dose_days,omitempty"`
	ReminderTime     string          `json:"reminder_time,omitempty"`
	Substance        Substance       `json:"substance"`
	Dose             float64         `json:"dose"`
	DoseUnit         DoseUnit        `json:"dose_unit"`
	CreatedAt        time.Time       `json:"created_at"`
	Events           []ProtocolEvent `json:"events,omitempty"`
}
