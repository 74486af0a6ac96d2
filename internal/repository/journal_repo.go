package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"microdose-api/internal/domain"
)

// JournalRepository persiste las entradas de diario.
type JournalRepository interface {
	Create(ctx context.Context, entry domain.JournalEntry) error
	ListByUser(ctx context.Context, userID string, from, to *domain.Day) ([]domain.JournalEntry, error)
}

// PgJournalRepository implementa JournalRepository usando pgxpool.
type PgJournalRepository struct {
	pool *pgxpool.Pool
}

func NewPgJournalRepository(pool *pgxpool.Pool) *PgJournalRepository {
	return &PgJournalRepository{pool: pool}
}

func (r *PgJournalRepository) Create(ctx context.Context, entry domain.JournalEntry) error {
	const query = `
		INSERT INTO journal_entries (
			id, user_id, entry_date, mood, dose_taken, notes, side_effects, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.EntryDate.Time(),
		entry.Mood,
		entry.DoseTaken,
		entry.Notes,
		entry.SideEffects,
		entry.CreatedAt,
	)
	return err
}

func (r *PgJournalRepository) ListByUser(ctx context.Context, userID string, from, to *domain.Day) ([]domain.JournalEntry, error) {
	query := `
		SELECT id, user_id, entry_date, mood, dose_taken, notes, side_effects, created_at
		FROM journal_entries
		WHERE user_id = $1
	`
	args := []any{userID}
	if from != nil {
		args = append(args, from.Time())
		query += ` AND entry_date >= $2`
	}
	if to != nil {
		args = append(args, to.Time())
		if from != nil {
			query += ` AND entry_date <= $3`
		} else {
			query += ` AND entry_date <= $2`
		}
	}
	query += ` ORDER BY entry_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		var (
			e    domain.JournalEntry
			date time.Time
		)
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&date,
			&e.Mood,
			&e.DoseTaken,
			&e.Notes,
			&e.SideEffects,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.EntryDate = domain.DayOf(date)
		out = append(out, e)
	}
	return out, rows.Err()
}
