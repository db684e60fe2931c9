package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los reportes de asistencia.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// ListEntriesInWindow devuelve las entradas de la ventana [start, end) sobre
// clock_in_time, solo de trabajadores CARE_WORKER, con filtro opcional por
// ubicación del turno. Las entradas abiertas (clock_out_time NULL) se incluyen:
// el caso de uso decide cómo las pondera. Un solo scan por reporte.
func (r *AnalyticsRepo) ListEntriesInWindow(
	ctx context.Context,
	start, end time.Time,
	locationID string,
) ([]repository.WindowEntry, error) {
	query := `
		SELECT w.id, w.name, e.clock_in_time, e.clock_out_time
		FROM time_entries e
		JOIN shifts  s ON s.id = e.shift_id
		JOIN workers w ON w.id = s.worker_id
		WHERE w.role = $1
		  AND e.clock_in_time >= $2
		  AND e.clock_in_time <  $3`
	args := []any{entity.RoleCareWorker, start, end}
	if locationID != "" {
		query += `
		  AND s.location_id = $4`
		args = append(args, locationID)
	}
	query += `
		ORDER BY e.clock_in_time`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListEntriesInWindow: %w", err)
	}
	defer rows.Close()

	var results []repository.WindowEntry
	for rows.Next() {
		var row repository.WindowEntry
		if err := rows.Scan(&row.WorkerID, &row.WorkerName, &row.ClockInTime, &row.ClockOutTime); err != nil {
			return nil, fmt.Errorf("analytics.ListEntriesInWindow scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
