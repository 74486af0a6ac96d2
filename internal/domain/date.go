package domain

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day representa una fecha de calendario anclada a medianoche UTC.
// Toda la aritmética de protocolos se hace en días completos, así que
// los cambios de horario (DST) no pueden mover una clasificación.
type Day struct {
	t time.Time
}

// NewDay construye un Day a partir de año/mes/día.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf descarta la hora de un timestamp y lo fija a medianoche UTC.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return NewDay(y, m, d)
}

// ParseDay interpreta una fecha en formato "2006-01-02".
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return DayOf(t), nil
}

// AddDays devuelve el día n días después (n puede ser negativo).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// DaysSince devuelve los días completos transcurridos desde other.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t) / (24 * time.Hour))
}

// Weekday devuelve el día de la semana (0 = domingo, como time.Weekday).
func (d Day) Weekday() time.Weekday {
	return d.t.Weekday()
}

// Time expone el instante de medianoche UTC del día.
func (d Day) Time() time.Time {
	return d.t
}

// At combina el día con una hora del día, en UTC.
func (d Day) At(hour, minute int) time.Time {
	return d.t.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool  { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool  { return d.t.Equal(other.t) }
func (d Day) IsZero() bool          { return d.t.IsZero() }

func (d Day) String() string {
	return d.t.Format(dayLayout)
}

// MarshalJSON serializa como "2006-01-02".
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON acepta "2006-01-02".
func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("fecha inválida: %s", s)
	}
	day, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = day
	return nil
}
