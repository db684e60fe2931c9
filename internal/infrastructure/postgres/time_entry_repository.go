package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/timeclock-pro/internal/domain"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

var _ repository.TimeEntryRepository = (*TimeEntryRepo)(nil)

// TimeEntryRepo implementación del puerto TimeEntryRepository sobre PostgreSQL (usable con pool o tx).
type TimeEntryRepo struct {
	q Querier
}

// NewTimeEntryRepository construye el adaptador de entradas de fichaje. Pasar pool o tx (Querier).
func NewTimeEntryRepository(q Querier) *TimeEntryRepo {
	return &TimeEntryRepo{q: q}
}

const timeEntryColumns = `id, shift_id, clock_in_time, clock_out_time,
		clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude,
		note, created_at, updated_at`

// Create persiste una entrada nueva y le asigna ID. El índice único parcial
// time_entries(shift_id) WHERE clock_out_time IS NULL convierte una carrera de
// doble fichaje en violación 23505, que se mapea a ErrAlreadyClockedIn.
func (r *TimeEntryRepo) Create(ctx context.Context, entry *entity.TimeEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO time_entries (id, shift_id, clock_in_time, clock_in_latitude, clock_in_longitude, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.ShiftID, entry.ClockInTime, entry.ClockInLatitude, entry.ClockInLongitude, entry.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClockedIn
		}
		return fmt.Errorf("insert time entry: %w", err)
	}
	return nil
}

// GetOpenByShift obtiene la entrada abierta del turno, (nil, nil) si no hay.
func (r *TimeEntryRepo) GetOpenByShift(ctx context.Context, shiftID string) (*entity.TimeEntry, error) {
	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries WHERE shift_id = $1 AND clock_out_time IS NULL`
	var e entity.TimeEntry
	err := r.q.QueryRow(ctx, query, shiftID).Scan(
		&e.ID, &e.ShiftID, &e.ClockInTime, &e.ClockOutTime,
		&e.ClockInLatitude, &e.ClockInLongitude, &e.ClockOutLatitude, &e.ClockOutLongitude,
		&e.Note, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open time entry: %w", err)
	}
	return &e, nil
}

// Close fija clock_out_time, posición de salida y nota de la entrada.
// Solo cierra entradas aún abiertas: una entrada cerrada es inmutable.
func (r *TimeEntryRepo) Close(ctx context.Context, entry *entity.TimeEntry) error {
	query := `
		UPDATE time_entries
		SET clock_out_time = $2, clock_out_latitude = $3, clock_out_longitude = $4, note = $5, updated_at = now()
		WHERE id = $1 AND clock_out_time IS NULL`
	tag, err := r.q.Exec(ctx, query,
		entry.ID, entry.ClockOutTime, entry.ClockOutLatitude, entry.ClockOutLongitude, entry.Note,
	)
	if err != nil {
		return fmt.Errorf("close time entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotClockedIn
	}
	return nil
}

// CountOpenByShift cuenta las entradas abiertas del turno.
func (r *TimeEntryRepo) CountOpenByShift(ctx context.Context, shiftID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM time_entries WHERE shift_id = $1 AND clock_out_time IS NULL`,
		shiftID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open time entries: %w", err)
	}
	return n, nil
}

// ListByWorker lista las entradas del trabajador, más recientes primero.
func (r *TimeEntryRepo) ListByWorker(ctx context.Context, workerID string, limit int) ([]*entity.TimeEntry, error) {
	query := `
		SELECT e.id, e.shift_id, e.clock_in_time, e.clock_out_time,
		       e.clock_in_latitude, e.clock_in_longitude, e.clock_out_latitude, e.clock_out_longitude,
		       e.note, e.created_at, e.updated_at
		FROM time_entries e
		JOIN shifts s ON s.id = e.shift_id
		WHERE s.worker_id = $1
		ORDER BY e.clock_in_time DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, workerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.TimeEntry
	for rows.Next() {
		var e entity.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.ShiftID, &e.ClockInTime, &e.ClockOutTime,
			&e.ClockInLatitude, &e.ClockInLongitude, &e.ClockOutLatitude, &e.ClockOutLongitude,
			&e.Note, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan time entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
