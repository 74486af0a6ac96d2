package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"microdose-api/internal/domain"
)

// ProtocolRepository persiste protocolos junto con su calendario de eventos.
type ProtocolRepository interface {
	Create(ctx context.Context, protocol domain.Protocol, events []domain.ProtocolEvent) error
	GetByID(ctx context.Context, id string) (domain.Protocol, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Protocol, error)
}

// PgProtocolRepository implementa ProtocolRepository usando pgxpool.
type PgProtocolRepository struct {
	pool *pgxpool.Pool
}

func NewPgProtocolRepository(pool *pgxpool.Pool) *PgProtocolRepository {
	return &PgProtocolRepository{pool: pool}
}

// Create inserta protocolo y eventos en una sola transacción: o queda el
// calendario completo o no queda nada.
func (r *PgProtocolRepository) Create(ctx context.Context, protocol domain.Protocol, events []domain.ProtocolEvent) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const protocolQuery = `
		INSERT INTO protocols (
			id, user_id, type, start_date, cycle_length_weeks,
			dose_days, reminder_time, substance, dose, dose_unit, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.Exec(ctx, protocolQuery,
		protocol.ID,
		protocol.UserID,
		string(protocol.Type),
		protocol.StartDate.Time(),
		protocol.CycleLengthWeeks,
		toInt32Slice(protocol.DoseDays),
		protocol.ReminderTime,
		string(protocol.Substance),
		protocol.Dose,
		string(protocol.DoseUnit),
		protocol.CreatedAt,
	)
	if err != nil {
		return err
	}

	const eventQuery = `
		INSERT INTO protocol_events (
			id, protocol_id, event_date, type, substance, dose, dose_unit,
			day_index, weekday, rule
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	batch := &pgx.Batch{}
	for _, ev := range events {
		batch.Queue(eventQuery,
			ev.ID,
			ev.ProtocolID,
			ev.Date.Time(),
			string(ev.Type),
			string(ev.Substance),
			ev.Dose,
			string(ev.DoseUnit),
			ev.Metadata.DayIndex,
			int(ev.Metadata.Weekday),
			string(ev.Metadata.Rule),
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PgProtocolRepository) GetByID(ctx context.Context, id string) (domain.Protocol, error) {
	const query = `
		SELECT id, user_id, type, start_date, cycle_length_weeks,
		       dose_days, reminder_time, substance, dose, dose_unit, created_at
		FROM protocols
		WHERE id = $1
	`
	p, err := scanProtocol(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return domain.Protocol{}, err
	}

	events, err := r.listEvents(ctx, id)
	if err != nil {
		return domain.Protocol{}, err
	}
	p.Events = events
	return p, nil
}

func (r *PgProtocolRepository) ListByUser(ctx context.Context, userID string) ([]domain.Protocol, error) {
	const query = `
		SELECT id, user_id, type, start_date, cycle_length_weeks,
		       dose_days, reminder_time, substance, dose, dose_unit, created_at
		FROM protocols
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Protocol
	for rows.Next() {
		p, err := scanProtocol(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PgProtocolRepository) listEvents(ctx context.Context, protocolID string) ([]domain.ProtocolEvent, error) {
	const query = `
		SELECT id, protocol_id, event_date, type, substance, dose, dose_unit,
		       day_index, weekday, rule
		FROM protocol_events
		WHERE protocol_id = $1
		ORDER BY event_date ASC
	`
	rows, err := r.pool.Query(ctx, query, protocolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProtocolEvent
	for rows.Next() {
		var (
			ev      domain.ProtocolEvent
			date    time.Time
			weekday int
		)
		if err := rows.Scan(
			&ev.ID,
			&ev.ProtocolID,
			&date,
			&ev.Type,
			&ev.Substance,
			&ev.Dose,
			&ev.DoseUnit,
			&ev.Metadata.DayIndex,
			&weekday,
			&ev.Metadata.Rule,
		); err != nil {
			return nil, err
		}
		ev.Date = domain.DayOf(date)
		ev.Metadata.Weekday = time.Weekday(weekday)
		out = append(out, ev)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProtocol(row rowScanner) (domain.Protocol, error) {
	var (
		p         domain.Protocol
		startDate time.Time
		doseDays  []int32
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Type,
		&startDate,
		&p.CycleLengthWeeks,
		&doseDays,
		&p.ReminderTime,
		&p.Substance,
		&p.Dose,
		&p.DoseUnit,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Protocol{}, err
	}
	if err != nil {
		return domain.Protocol{}, err
	}
	p.StartDate = domain.DayOf(startDate)
	p.DoseDays = toIntSlice(doseDays)
	return p, nil
}

func toInt32Slice(in []int) []int32 {
	if in == nil {
		return nil
	}
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func toIntSlice(in []int32) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
