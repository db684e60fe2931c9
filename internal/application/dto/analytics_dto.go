package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// DailyStatsRequest parámetros para GET /api/analytics/daily-stats.
type DailyStatsRequest struct {
	Window     string `query:"window"`      // "<n>d", ej. "7d"; por defecto el de configuración
	LocationID string `query:"location_id"` // vacío = ubicación del token; igual vacía = todas
}

// ── Estadísticas diarias ──────────────────────────────────────────────────────

// DailyStatDTO un bucket por fecha de calendario (UTC) con al menos una entrada.
// Las horas suman solo entradas cerradas; los conteos incluyen las abiertas.
type DailyStatDTO struct {
	Date             string          `json:"date"`               // YYYY-MM-DD (UTC del clock-in)
	TotalHours       decimal.Decimal `json:"total_hours"`        // suma de duraciones cerradas, 2 decimales
	TotalShifts      int             `json:"total_shifts"`       // entradas del día (no turnos distintos)
	UniqueStaffCount int             `json:"unique_staff_count"` // trabajadores distintos del día
	AvgHoursPerShift decimal.Decimal `json:"avg_hours_per_shift"`
	AvgHoursPerStaff decimal.Decimal `json:"avg_hours_per_staff"`
}

// StaffHoursDTO total de horas cerradas de un trabajador en toda la ventana.
type StaffHoursDTO struct {
	WorkerID   string          `json:"worker_id"`
	Name       string          `json:"name"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// OverallStatsDTO agregados de toda la ventana.
// TotalUniqueStaff es el conteo distinto sobre la ventana completa, no la suma
// de los únicos diarios (esa variante duplica a quien trabaja varios días).
type OverallStatsDTO struct {
	AvgHoursPerDay   decimal.Decimal `json:"avg_hours_per_day"`
	AvgPeoplePerDay  decimal.Decimal `json:"avg_people_per_day"`
	TotalHours       decimal.Decimal `json:"total_hours"`
	TotalShifts      int             `json:"total_shifts"`
	TotalUniqueStaff int             `json:"total_unique_staff"`
}

// DailyStatsReportDTO respuesta completa de GET /api/analytics/daily-stats.
type DailyStatsReportDTO struct {
	DailyStats          []DailyStatDTO  `json:"daily_stats"`
	StaffHoursBreakdown []StaffHoursDTO `json:"staff_hours_breakdown"`
	OverallStats        OverallStatsDTO `json:"overall_stats"`
}
