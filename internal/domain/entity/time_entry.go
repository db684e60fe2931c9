package entity

import "time"

// TimeEntry es un registro fichaje-entrada/fichaje-salida dentro de un Shift.
// Abierta mientras ClockOutTime es nil. Una vez cerrada es inmutable: cerrar es
// la única mutación permitida y ocurre exactamente una vez.
// Invariante: un Shift tiene como máximo una TimeEntry abierta
// (índice único parcial en time_entries(shift_id) WHERE clock_out_time IS NULL).
type TimeEntry struct {
	ID                string
	ShiftID           string
	ClockInTime       time.Time
	ClockOutTime      *time.Time
	ClockInLatitude   float64
	ClockInLongitude  float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	Note              *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOpen indica si la entrada sigue abierta (sin fichaje de salida).
func (e *TimeEntry) IsOpen() bool {
	return e.ClockOutTime == nil
}

// Duration devuelve la duración de la entrada; cero si sigue abierta.
func (e *TimeEntry) Duration() time.Duration {
	if e.ClockOutTime == nil {
		return 0
	}
	return e.ClockOutTime.Sub(e.ClockInTime)
}
