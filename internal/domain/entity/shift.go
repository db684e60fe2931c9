package entity

import "time"

// Shift es el período continuo de servicio de un trabajador en una ubicación.
// Agrupa una o más TimeEntries; está abierto mientras EndTime es nil.
// Invariante: un trabajador tiene como máximo un Shift abierto en todo momento
// (índice único parcial en shifts(worker_id) WHERE end_time IS NULL).
type Shift struct {
	ID         string
	WorkerID   string
	LocationID string
	StartTime  time.Time
	EndTime    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen indica si el turno sigue abierto.
func (s *Shift) IsOpen() bool {
	return s.EndTime == nil
}
