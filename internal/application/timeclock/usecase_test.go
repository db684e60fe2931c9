package timeclock_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/timeclock-pro/internal/application/timeclock"
	"github.com/tu-usuario/timeclock-pro/internal/domain"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/geofence"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// memStore: almacenamiento en memoria detrás de los puertos del ledger.
// Run retiene un mutex global durante toda la transacción, emulando la
// serialización por trabajador del backend real (un superconjunto de ella).
// El caso de uso no escribe nada antes de fallar una precondición, así que
// no hace falta simular rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	workers   map[string]*entity.Worker
	locations map[string]*entity.Location
	shifts    map[string]*entity.Shift
	entries   map[string]*entity.TimeEntry
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		workers:   make(map[string]*entity.Worker),
		locations: make(map[string]*entity.Location),
		shifts:    make(map[string]*entity.Shift),
		entries:   make(map[string]*entity.TimeEntry),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) Run(_ context.Context, fn func(
	workerRepo repository.WorkerRepository,
	shiftRepo repository.ShiftRepository,
	entryRepo repository.TimeEntryRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(memWorkers{s}, memShifts{s}, memEntries{s})
}

type memWorkers struct{ store *memStore }

func (r memWorkers) GetByID(_ context.Context, id string) (*entity.Worker, error) {
	return r.store.workers[id], nil
}

func (r memWorkers) GetForUpdate(_ context.Context, id string) (*entity.Worker, error) {
	return r.store.workers[id], nil
}

type memLocations struct{ store *memStore }

func (r memLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	return r.store.locations[id], nil
}

type memShifts struct{ store *memStore }

func (r memShifts) Create(_ context.Context, shift *entity.Shift) error {
	shift.ID = r.store.nextID("shift")
	r.store.shifts[shift.ID] = shift
	return nil
}

func (r memShifts) GetOpenByWorker(_ context.Context, workerID string) (*entity.Shift, error) {
	for _, sh := range r.store.shifts {
		if sh.WorkerID == workerID && sh.EndTime == nil {
			return sh, nil
		}
	}
	return nil, nil
}

func (r memShifts) Close(_ context.Context, shiftID string, endTime time.Time) error {
	r.store.shifts[shiftID].EndTime = &endTime
	return nil
}

type memEntries struct{ store *memStore }

func (r memEntries) Create(_ context.Context, entry *entity.TimeEntry) error {
	entry.ID = r.store.nextID("entry")
	r.store.entries[entry.ID] = entry
	return nil
}

func (r memEntries) GetOpenByShift(_ context.Context, shiftID string) (*entity.TimeEntry, error) {
	for _, e := range r.store.entries {
		if e.ShiftID == shiftID && e.ClockOutTime == nil {
			return e, nil
		}
	}
	return nil, nil
}

func (r memEntries) Close(_ context.Context, entry *entity.TimeEntry) error {
	r.store.entries[entry.ID] = entry
	return nil
}

func (r memEntries) CountOpenByShift(_ context.Context, shiftID string) (int, error) {
	n := 0
	for _, e := range r.store.entries {
		if e.ShiftID == shiftID && e.ClockOutTime == nil {
			n++
		}
	}
	return n, nil
}

func (r memEntries) ListByWorker(_ context.Context, workerID string, limit int) ([]*entity.TimeEntry, error) {
	var list []*entity.TimeEntry
	for _, e := range r.store.entries {
		if sh, ok := r.store.shifts[e.ShiftID]; ok && sh.WorkerID == workerID {
			list = append(list, e)
		}
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

// Centro (40.0000, -75.0000), radio 200 m. posInside queda a ~150 m,
// posOutside a ~250 m (mismos vectores que los tests de geofence).
var (
	posInside  = geofence.Position{Latitude: 40.0013490, Longitude: -75.0}
	posOutside = geofence.Position{Latitude: 40.0022483, Longitude: -75.0}
)

func newFixture() (*memStore, *timeclock.TimeclockUseCase) {
	store := newMemStore()
	store.locations["loc-1"] = &entity.Location{
		ID:        "loc-1",
		Name:      "Residencia Norte",
		Latitude:  40.0,
		Longitude: -75.0,
		Radius:    200,
		IsActive:  true,
	}
	uc := timeclock.NewTimeclockUseCase(store, memWorkers{store}, memLocations{store}, memShifts{store}, memEntries{store})
	return store, uc
}

func addWorker(store *memStore, id, role, locationID string) {
	w := &entity.Worker{ID: id, Name: "Trabajador " + id, Role: role}
	if locationID != "" {
		w.LocationID = &locationID
	}
	store.workers[id] = w
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// ClockIn
// ──────────────────────────────────────────────────────────────────────────────

func TestClockIn_CreaTurnoYEntrada(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	entry, err := uc.ClockIn(context.Background(), "w1", posInside, strPtr("llegué"))
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.NotEmpty(t, entry.ID)
	assert.NotEmpty(t, entry.ShiftID)
	assert.True(t, entry.IsOpen(), "la entrada recién creada debe estar abierta")
	assert.WithinDuration(t, time.Now().UTC(), entry.ClockInTime, 5*time.Second)
	assert.Equal(t, posInside.Latitude, entry.ClockInLatitude)
	assert.Equal(t, posInside.Longitude, entry.ClockInLongitude)
	require.NotNil(t, entry.Note)
	assert.Equal(t, "llegué", *entry.Note)

	shift := store.shifts[entry.ShiftID]
	require.NotNil(t, shift, "el turno debe crearse perezosamente en el primer fichaje")
	assert.Equal(t, "w1", shift.WorkerID)
	assert.Equal(t, "loc-1", shift.LocationID)
	assert.True(t, shift.IsOpen())
}

func TestClockIn_RolManagerNoPermitido(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "m1", entity.RoleManager, "loc-1")

	_, err := uc.ClockIn(context.Background(), "m1", posInside, nil)
	assert.ErrorIs(t, err, domain.ErrRoleNotPermitted)
	assert.Empty(t, store.shifts, "un rol no permitido no debe crear turno")
	assert.Empty(t, store.entries)
}

func TestClockIn_SinUbicacionAsignada(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "")

	_, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	assert.ErrorIs(t, err, domain.ErrNoLocationAssigned)
	assert.Empty(t, store.entries)
}

// Fichar fuera del radio siempre devuelve GeofenceViolation y no crea ni
// Shift ni TimeEntry.
func TestClockIn_FueraDelPerimetro(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	_, err := uc.ClockIn(context.Background(), "w1", posOutside, nil)
	assert.ErrorIs(t, err, domain.ErrGeofenceViolation)
	assert.Empty(t, store.shifts, "una violación de perímetro no debe dejar rastro")
	assert.Empty(t, store.entries)
}

func TestClockIn_YaFichado(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	first, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)

	_, err = uc.ClockIn(context.Background(), "w1", posInside, nil)
	assert.ErrorIs(t, err, domain.ErrAlreadyClockedIn)
	assert.Len(t, store.entries, 1, "el segundo fichaje no debe crear otra entrada")
	assert.True(t, store.entries[first.ID].IsOpen())
}

func TestClockIn_TrabajadorInexistente(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.ClockIn(context.Background(), "fantasma", posInside, nil)
	assert.ErrorIs(t, err, domain.ErrWorkerNotFound)
}

func TestClockIn_CoordenadasInvalidas(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	_, err := uc.ClockIn(context.Background(), "w1", geofence.Position{Latitude: 120, Longitude: 0}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.entries)
}

// N fichajes simultáneos del mismo trabajador: exactamente 1 éxito y N-1
// AlreadyClockedIn; nunca dos entradas abiertas.
func TestClockIn_ConcurrenciaMismoTrabajador(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		if err == nil {
			successes++
			continue
		}
		require.ErrorIs(t, err, domain.ErrAlreadyClockedIn)
		conflicts++
	}
	assert.Equal(t, 1, successes, "exactamente un fichaje concurrente debe ganar")
	assert.Equal(t, n-1, conflicts)

	open := 0
	for _, e := range store.entries {
		if e.IsOpen() {
			open++
		}
	}
	assert.Equal(t, 1, open, "nunca puede haber más de una entrada abierta")
}

// ──────────────────────────────────────────────────────────────────────────────
// ClockOut
// ──────────────────────────────────────────────────────────────────────────────

func TestClockOut_CierraEntradaYTurno(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	in, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)

	out, err := uc.ClockOut(context.Background(), "w1", strPtr("fin de jornada"), &posInside)
	require.NoError(t, err)
	require.NotNil(t, out.ClockOutTime)
	assert.Equal(t, in.ID, out.ID)
	assert.False(t, out.ClockOutTime.Before(out.ClockInTime),
		"clock_out_time nunca puede ser anterior a clock_in_time")
	require.NotNil(t, out.ClockOutLatitude)
	assert.Equal(t, posInside.Latitude, *out.ClockOutLatitude)

	shift := store.shifts[out.ShiftID]
	require.NotNil(t, shift.EndTime, "al cerrar la última entrada abierta se cierra el turno")
	assert.Equal(t, *out.ClockOutTime, *shift.EndTime)
}

// La nota de salida sobreescribe la de entrada; sin nota de salida la entrada
// queda sin nota (sobreescritura, nunca concatenación).
func TestClockOut_NotaSobreescribe(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	_, err := uc.ClockIn(context.Background(), "w1", posInside, strPtr("nota de entrada"))
	require.NoError(t, err)
	out, err := uc.ClockOut(context.Background(), "w1", strPtr("nota de salida"), nil)
	require.NoError(t, err)
	require.NotNil(t, out.Note)
	assert.Equal(t, "nota de salida", *out.Note)

	_, err = uc.ClockIn(context.Background(), "w1", posInside, strPtr("otra entrada"))
	require.NoError(t, err)
	out, err = uc.ClockOut(context.Background(), "w1", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, out.Note, "sin nota de salida la entrada queda sin nota")
}

// El segundo clock-out consecutivo devuelve NotClockedIn y no altera el
// resultado ya confirmado del primero.
func TestClockOut_DosVecesSeguidas(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	_, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)
	first, err := uc.ClockOut(context.Background(), "w1", nil, nil)
	require.NoError(t, err)
	firstOut := *first.ClockOutTime

	_, err = uc.ClockOut(context.Background(), "w1", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotClockedIn)
	assert.Equal(t, firstOut, *store.entries[first.ID].ClockOutTime,
		"el segundo clock-out no debe tocar el resultado del primero")
}

func TestClockOut_SinEntradaAbierta(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	_, err := uc.ClockOut(context.Background(), "w1", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNotClockedIn)
}

// Fichar de nuevo tras cerrar el turno crea un turno nuevo: el anterior quedó
// cerrado y no se reutiliza.
func TestClockIn_TrasCierreCreaNuevoTurno(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	first, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)
	_, err = uc.ClockOut(context.Background(), "w1", nil, nil)
	require.NoError(t, err)

	second, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ShiftID, second.ShiftID)

	open := 0
	for _, sh := range store.shifts {
		if sh.IsOpen() {
			open++
		}
	}
	assert.Equal(t, 1, open, "como máximo un turno abierto por trabajador")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetCurrentShift
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCurrentShift_SinTurno(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	shift, entry, location, err := uc.GetCurrentShift(context.Background(), "w1")
	require.NoError(t, err)
	assert.Nil(t, shift)
	assert.Nil(t, entry)
	assert.Nil(t, location)
}

func TestGetCurrentShift_ConTurnoAbierto(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")

	in, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)

	shift, entry, location, err := uc.GetCurrentShift(context.Background(), "w1")
	require.NoError(t, err)
	require.NotNil(t, shift)
	require.NotNil(t, entry)
	require.NotNil(t, location)
	assert.Equal(t, in.ShiftID, shift.ID)
	assert.Equal(t, in.ID, entry.ID)
	assert.Equal(t, "loc-1", location.ID)
}

// Las operaciones de trabajadores distintos son independientes: cada uno
// mantiene su propio estado de la máquina.
func TestClockIn_TrabajadoresIndependientes(t *testing.T) {
	store, uc := newFixture()
	addWorker(store, "w1", entity.RoleCareWorker, "loc-1")
	addWorker(store, "w2", entity.RoleCareWorker, "loc-1")

	_, err := uc.ClockIn(context.Background(), "w1", posInside, nil)
	require.NoError(t, err)
	_, err = uc.ClockIn(context.Background(), "w2", posInside, nil)
	require.NoError(t, err, "el fichaje de w1 no debe bloquear a w2")

	_, err = uc.ClockOut(context.Background(), "w1", nil, nil)
	require.NoError(t, err)

	_, entry, _, err := uc.GetCurrentShift(context.Background(), "w2")
	require.NoError(t, err)
	assert.NotNil(t, entry, "w2 sigue fichado aunque w1 haya salido")
}
