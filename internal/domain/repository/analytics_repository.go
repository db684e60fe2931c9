package repository

import (
	"context"
	"time"
)

// WindowEntry es la proyección mínima de una TimeEntry que necesita el agregador:
// quién fichó, cuándo entró y cuándo salió (nil si sigue abierta).
type WindowEntry struct {
	WorkerID     string
	WorkerName   string
	ClockInTime  time.Time
	ClockOutTime *time.Time
}

// AnalyticsRepository consultas de solo lectura para los reportes de asistencia.
// Lee únicamente registros confirmados; puede ejecutarse sobre un snapshot
// ligeramente desfasado respecto a las mutaciones.
type AnalyticsRepository interface {
	// ListEntriesInWindow devuelve las entradas con clock_in_time en [start, end),
	// solo de trabajadores CARE_WORKER, opcionalmente filtradas por ubicación
	// del turno (locationID vacío = todas), ordenadas por clock_in_time.
	ListEntriesInWindow(ctx context.Context, start, end time.Time, locationID string) ([]WindowEntry, error)
}
