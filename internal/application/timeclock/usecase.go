// Package timeclock contiene el caso de uso del ledger de fichajes: la máquina
// de estados CLOCKED_OUT/CLOCKED_IN por trabajador, con validación de
// geoperímetro en la entrada y cierre transaccional del turno en la salida.
package timeclock

import (
	"context"
	"time"

	"github.com/tu-usuario/timeclock-pro/internal/domain"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/geofence"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

const recentEntriesLimit = 50 // entradas devueltas por GET /api/time-entries

// TimeclockUseCase registra fichajes de entrada/salida de forma transaccional,
// serializada por trabajador (bloqueo de fila en workers con SELECT FOR UPDATE).
// Operaciones de trabajadores distintos nunca se bloquean entre sí.
type TimeclockUseCase struct {
	txRunner     TxRunner
	workerRepo   repository.WorkerRepository
	locationRepo repository.LocationRepository
	shiftRepo    repository.ShiftRepository
	entryRepo    repository.TimeEntryRepository
}

// NewTimeclockUseCase construye el caso de uso.
func NewTimeclockUseCase(
	txRunner TxRunner,
	workerRepo repository.WorkerRepository,
	locationRepo repository.LocationRepository,
	shiftRepo repository.ShiftRepository,
	entryRepo repository.TimeEntryRepository,
) *TimeclockUseCase {
	return &TimeclockUseCase{
		txRunner:     txRunner,
		workerRepo:   workerRepo,
		locationRepo: locationRepo,
		shiftRepo:    shiftRepo,
		entryRepo:    entryRepo,
	}
}

// ClockIn ficha la entrada del trabajador en la posición reportada.
//
// Precondiciones, verificadas en orden dentro de la transacción:
//  1. rol CARE_WORKER            → ErrRoleNotPermitted
//  2. ubicación asignada         → ErrNoLocationAssigned
//  3. posición dentro del radio  → ErrGeofenceViolation
//  4. sin entrada abierta        → ErrAlreadyClockedIn
//
// Si no hay turno abierto se crea uno con startTime = now. La fila del
// trabajador se bloquea primero: dos ClockIn concurrentes del mismo trabajador
// se serializan y exactamente uno gana; el índice único parcial de la tabla
// rechaza al segundo aunque llegue por otra instancia del proceso.
func (uc *TimeclockUseCase) ClockIn(ctx context.Context, workerID string, position geofence.Position, note *string) (*entity.TimeEntry, error) {
	if workerID == "" || !geofence.ValidCoordinates(position) {
		return nil, domain.ErrInvalidInput
	}

	var created *entity.TimeEntry
	err := uc.txRunner.Run(ctx, func(
		workerRepo repository.WorkerRepository,
		shiftRepo repository.ShiftRepository,
		entryRepo repository.TimeEntryRepository,
	) error {
		// Bloquea la fila del trabajador: serializa los fichajes por trabajador
		worker, err := workerRepo.GetForUpdate(ctx, workerID)
		if err != nil {
			return err
		}
		if worker == nil {
			return domain.ErrWorkerNotFound
		}
		if worker.Role != entity.RoleCareWorker {
			return domain.ErrRoleNotPermitted
		}
		if !worker.HasLocation() {
			return domain.ErrNoLocationAssigned
		}

		location, err := uc.locationRepo.GetByID(ctx, *worker.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrNoLocationAssigned
		}
		center := geofence.Position{Latitude: location.Latitude, Longitude: location.Longitude}
		if !geofence.IsWithinPerimeter(position, center, float64(location.Radius)) {
			return domain.ErrGeofenceViolation
		}

		now := time.Now().UTC()

		shift, err := shiftRepo.GetOpenByWorker(ctx, workerID)
		if err != nil {
			return err
		}
		if shift == nil {
			shift = &entity.Shift{
				WorkerID:   workerID,
				LocationID: location.ID,
				StartTime:  now,
			}
			if err := shiftRepo.Create(ctx, shift); err != nil {
				return err
			}
		} else {
			open, err := entryRepo.GetOpenByShift(ctx, shift.ID)
			if err != nil {
				return err
			}
			if open != nil {
				return domain.ErrAlreadyClockedIn
			}
		}

		entry := &entity.TimeEntry{
			ShiftID:          shift.ID,
			ClockInTime:      now,
			ClockInLatitude:  position.Latitude,
			ClockInLongitude: position.Longitude,
			Note:             note,
		}
		if err := entryRepo.Create(ctx, entry); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ClockOut ficha la salida del trabajador. Precondición: tener una entrada
// abierta, si no ErrNotClockedIn. En la misma transacción fija clock_out_time
// (y posición de salida si se envió), asigna la nota — la nota de salida
// sobreescribe la de entrada, nunca se concatena — y, si el turno queda sin
// entradas abiertas, lo cierra con end_time = now.
func (uc *TimeclockUseCase) ClockOut(ctx context.Context, workerID string, note *string, position *geofence.Position) (*entity.TimeEntry, error) {
	if workerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if position != nil && !geofence.ValidCoordinates(*position) {
		return nil, domain.ErrInvalidInput
	}

	var closed *entity.TimeEntry
	err := uc.txRunner.Run(ctx, func(
		workerRepo repository.WorkerRepository,
		shiftRepo repository.ShiftRepository,
		entryRepo repository.TimeEntryRepository,
	) error {
		worker, err := workerRepo.GetForUpdate(ctx, workerID)
		if err != nil {
			return err
		}
		if worker == nil {
			return domain.ErrWorkerNotFound
		}

		shift, err := shiftRepo.GetOpenByWorker(ctx, workerID)
		if err != nil {
			return err
		}
		if shift == nil {
			return domain.ErrNotClockedIn
		}
		entry, err := entryRepo.GetOpenByShift(ctx, shift.ID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotClockedIn
		}

		now := time.Now().UTC()
		entry.ClockOutTime = &now
		if position != nil {
			entry.ClockOutLatitude = &position.Latitude
			entry.ClockOutLongitude = &position.Longitude
		}
		entry.Note = note
		if err := entryRepo.Close(ctx, entry); err != nil {
			return err
		}

		remaining, err := entryRepo.CountOpenByShift(ctx, shift.ID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := shiftRepo.Close(ctx, shift.ID, now); err != nil {
				return err
			}
		}
		closed = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

// GetCurrentShift devuelve el turno abierto del trabajador con su entrada
// abierta y la ubicación, o (nil, nil, nil) si está CLOCKED_OUT. Lee la misma
// vista confirmada que usan las mutaciones; no hay caché en proceso.
func (uc *TimeclockUseCase) GetCurrentShift(ctx context.Context, workerID string) (*entity.Shift, *entity.TimeEntry, *entity.Location, error) {
	if workerID == "" {
		return nil, nil, nil, domain.ErrInvalidInput
	}
	shift, err := uc.shiftRepo.GetOpenByWorker(ctx, workerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if shift == nil {
		return nil, nil, nil, nil
	}
	entry, err := uc.entryRepo.GetOpenByShift(ctx, shift.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	location, err := uc.locationRepo.GetByID(ctx, shift.LocationID)
	if err != nil {
		return nil, nil, nil, err
	}
	return shift, entry, location, nil
}

// ListRecentEntries devuelve las últimas entradas del trabajador (máx. 50),
// más recientes primero.
func (uc *TimeclockUseCase) ListRecentEntries(ctx context.Context, workerID string) ([]*entity.TimeEntry, error) {
	if workerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.entryRepo.ListByWorker(ctx, workerID, recentEntriesLimit)
}
