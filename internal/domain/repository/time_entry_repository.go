package repository

import (
	"context"

	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
)

// TimeEntryRepository puerto para los registros de fichaje.
// Las entradas son append-only: la única mutación permitida es Close, una vez.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *entity.TimeEntry) error
	// GetOpenByShift devuelve la entrada abierta del turno (clock_out_time IS NULL)
	// o nil si no existe.
	GetOpenByShift(ctx context.Context, shiftID string) (*entity.TimeEntry, error)
	// Close fija clock_out_time, posición de salida y nota de la entrada.
	Close(ctx context.Context, entry *entity.TimeEntry) error
	// ListByWorker lista las entradas del trabajador, más recientes primero.
	ListByWorker(ctx context.Context, workerID string, limit int) ([]*entity.TimeEntry, error)
	// CountOpenByShift cuenta las entradas abiertas del turno. El cierre del
	// turno depende de que llegue a cero.
	CountOpenByShift(ctx context.Context, shiftID string) (int, error)
}
