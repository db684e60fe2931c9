package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo implementación del puerto WorkerRepository sobre PostgreSQL (usable con pool o tx).
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador de trabajadores. Pasar pool o tx (Querier).
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

const workerColumns = `id, name, email, role, location_id, created_at, updated_at`

// GetByID obtiene un trabajador por ID. Devuelve (nil, nil) si no existe.
func (r *WorkerRepo) GetByID(ctx context.Context, id string) (*entity.Worker, error) {
	query := `
		SELECT ` + workerColumns + `
		FROM workers WHERE id = $1`
	return r.scanOne(ctx, query, id, "get worker by id")
}

// GetForUpdate obtiene el trabajador y bloquea su fila (SELECT FOR UPDATE).
// Es la primera sentencia de la transacción de fichaje: serializa las
// operaciones del mismo trabajador sin bloquear a los demás.
func (r *WorkerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Worker, error) {
	query := `
		SELECT ` + workerColumns + `
		FROM workers WHERE id = $1
		FOR UPDATE`
	return r.scanOne(ctx, query, id, "get worker for update")
}

func (r *WorkerRepo) scanOne(ctx context.Context, query, id, op string) (*entity.Worker, error) {
	var w entity.Worker
	err := r.q.QueryRow(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.Email, &w.Role, &w.LocationID, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &w, nil
}
