package dto

import (
	"time"

	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
)

// ClockInRequest cuerpo de POST /api/time-entries/clock-in.
// La identidad del trabajador sale del token, nunca del body.
type ClockInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Note      *string `json:"note,omitempty"`
}

// ClockOutRequest cuerpo de POST /api/time-entries/clock-out.
// La posición de salida es opcional: el fichaje de salida no exige perímetro.
type ClockOutRequest struct {
	Note      *string  `json:"note,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// TimeEntryDTO representación JSON de una TimeEntry.
type TimeEntryDTO struct {
	ID                string     `json:"id"`
	ShiftID           string     `json:"shift_id"`
	ClockInTime       time.Time  `json:"clock_in_time"`
	ClockOutTime      *time.Time `json:"clock_out_time,omitempty"`
	ClockInLatitude   float64    `json:"clock_in_latitude"`
	ClockInLongitude  float64    `json:"clock_in_longitude"`
	ClockOutLatitude  *float64   `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64   `json:"clock_out_longitude,omitempty"`
	Note              *string    `json:"note,omitempty"`
}

// NewTimeEntryDTO mapea la entidad a su representación JSON.
func NewTimeEntryDTO(e *entity.TimeEntry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:                e.ID,
		ShiftID:           e.ShiftID,
		ClockInTime:       e.ClockInTime,
		ClockOutTime:      e.ClockOutTime,
		ClockInLatitude:   e.ClockInLatitude,
		ClockInLongitude:  e.ClockInLongitude,
		ClockOutLatitude:  e.ClockOutLatitude,
		ClockOutLongitude: e.ClockOutLongitude,
		Note:              e.Note,
	}
}

// LocationDTO ubicación embebida en la respuesta de turno actual.
type LocationDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    int     `json:"radius"`
}

// NewLocationDTO mapea la entidad Location.
func NewLocationDTO(l *entity.Location) LocationDTO {
	return LocationDTO{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Radius:    l.Radius,
	}
}

// CurrentShiftDTO turno abierto con su entrada abierta y ubicación embebidas.
type CurrentShiftDTO struct {
	ID        string        `json:"id"`
	WorkerID  string        `json:"worker_id"`
	StartTime time.Time     `json:"start_time"`
	Location  *LocationDTO  `json:"location,omitempty"`
	TimeEntry *TimeEntryDTO `json:"time_entry,omitempty"`
}

// CurrentShiftResponse respuesta de GET /api/shifts/current.
// Shift es null cuando el trabajador está CLOCKED_OUT (HTTP 200 igualmente).
type CurrentShiftResponse struct {
	Shift *CurrentShiftDTO `json:"shift"`
}

// TimeEntriesResponse respuesta de GET /api/time-entries.
type TimeEntriesResponse struct {
	Total       int            `json:"total"`
	TimeEntries []TimeEntryDTO `json:"time_entries"`
}
