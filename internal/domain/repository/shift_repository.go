package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
)

// ShiftRepository puerto para turnos. Create y Close se usan solo dentro de la
// transacción de fichaje.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	// GetOpenByWorker devuelve el turno abierto del trabajador (end_time IS NULL)
	// o nil si no existe.
	GetOpenByWorker(ctx context.Context, workerID string) (*entity.Shift, error)
	// Close fija end_time del turno.
	Close(ctx context.Context, shiftID string, endTime time.Time) error
}
