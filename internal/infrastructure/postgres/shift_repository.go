package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/timeclock-pro/internal/domain"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo implementación del puerto ShiftRepository sobre PostgreSQL (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de turnos. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

// Create persiste un turno nuevo y le asigna ID. El índice único parcial
// shifts(worker_id) WHERE end_time IS NULL rechaza un segundo turno abierto
// del mismo trabajador aunque la carrera venga de otra instancia del proceso.
func (r *ShiftRepo) Create(ctx context.Context, shift *entity.Shift) error {
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shifts (id, worker_id, location_id, start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(ctx, query, shift.ID, shift.WorkerID, shift.LocationID, shift.StartTime)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClockedIn
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetOpenByWorker obtiene el turno abierto del trabajador, (nil, nil) si no hay.
func (r *ShiftRepo) GetOpenByWorker(ctx context.Context, workerID string) (*entity.Shift, error) {
	query := `
		SELECT id, worker_id, location_id, start_time, end_time, created_at, updated_at
		FROM shifts WHERE worker_id = $1 AND end_time IS NULL`
	var s entity.Shift
	err := r.q.QueryRow(ctx, query, workerID).Scan(
		&s.ID, &s.WorkerID, &s.LocationID, &s.StartTime, &s.EndTime, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open shift: %w", err)
	}
	return &s, nil
}

// Close fija end_time del turno. Solo cierra turnos aún abiertos.
func (r *ShiftRepo) Close(ctx context.Context, shiftID string, endTime time.Time) error {
	query := `
		UPDATE shifts SET end_time = $2, updated_at = now()
		WHERE id = $1 AND end_time IS NULL`
	tag, err := r.q.Exec(ctx, query, shiftID, endTime)
	if err != nil {
		return fmt.Errorf("close shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
