package repository

import (
	"context"

	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
)

// WorkerRepository puerto de solo lectura sobre workers: el alta y la asignación
// de ubicación las gestiona un colaborador externo.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Worker, error)
	// GetForUpdate bloquea la fila del trabajador (SELECT FOR UPDATE). Usado
	// dentro de la transacción de fichaje para serializar por trabajador.
	GetForUpdate(ctx context.Context, id string) (*entity.Worker, error)
}
