package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/timeclock-pro/internal/application/dto"
	"github.com/tu-usuario/timeclock-pro/internal/domain"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
	"github.com/tu-usuario/timeclock-pro/internal/domain/geofence"
)

// TimeclockService operaciones del ledger que consume el handler.
// Lo implementa *timeclock.TimeclockUseCase.
type TimeclockService interface {
	ClockIn(ctx context.Context, workerID string, position geofence.Position, note *string) (*entity.TimeEntry, error)
	ClockOut(ctx context.Context, workerID string, note *string, position *geofence.Position) (*entity.TimeEntry, error)
	GetCurrentShift(ctx context.Context, workerID string) (*entity.Shift, *entity.TimeEntry, *entity.Location, error)
	ListRecentEntries(ctx context.Context, workerID string) ([]*entity.TimeEntry, error)
}

// TimeclockHandler maneja las peticiones HTTP de fichaje y turnos (protegido).
type TimeclockHandler struct {
	svc TimeclockService
}

// NewTimeclockHandler construye el handler.
func NewTimeclockHandler(svc TimeclockService) *TimeclockHandler {
	return &TimeclockHandler{svc: svc}
}

// ClockIn godoc
// @Summary      Fichar entrada
// @Description  Registra la entrada del trabajador del token en su ubicación asignada.
//               Valida rol, ubicación y geoperímetro; crea el turno si no hay uno abierto.
// @Tags         time-entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockInRequest  true  "latitude, longitude, note (opcional)"
// @Success      201   {object}  dto.TimeEntryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/time-entries/clock-in [post]
func (h *TimeclockHandler) ClockIn(c *fiber.Ctx) error {
	workerID := GetWorkerID(c)
	if workerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ClockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	position := geofence.Position{Latitude: in.Latitude, Longitude: in.Longitude}
	entry, err := h.svc.ClockIn(c.Context(), workerID, position, in.Note)
	if err != nil {
		return timeclockError(c, err)
	}
	out := dto.NewTimeEntryDTO(entry)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClockOut godoc
// @Summary      Fichar salida
// @Description  Cierra la entrada abierta del trabajador del token. La posición es
//               opcional y se guarda sin validar perímetro. Si el turno queda sin
//               entradas abiertas, se cierra también.
// @Tags         time-entries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockOutRequest  true  "note, latitude, longitude (todos opcionales)"
// @Success      200   {object}  dto.TimeEntryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/time-entries/clock-out [post]
func (h *TimeclockHandler) ClockOut(c *fiber.Ctx) error {
	workerID := GetWorkerID(c)
	if workerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ClockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	var position *geofence.Position
	if in.Latitude != nil && in.Longitude != nil {
		position = &geofence.Position{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}
	entry, err := h.svc.ClockOut(c.Context(), workerID, in.Note, position)
	if err != nil {
		return timeclockError(c, err)
	}
	out := dto.NewTimeEntryDTO(entry)
	return c.JSON(out)
}

// GetCurrentShift godoc
// @Summary      Turno actual
// @Description  Devuelve el turno abierto del trabajador del token con su entrada
//               abierta y la ubicación. {"shift": null} con HTTP 200 si está CLOCKED_OUT.
// @Tags         shifts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CurrentShiftResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/shifts/current [get]
func (h *TimeclockHandler) GetCurrentShift(c *fiber.Ctx) error {
	workerID := GetWorkerID(c)
	if workerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	shift, entry, location, err := h.svc.GetCurrentShift(c.Context(), workerID)
	if err != nil {
		return timeclockError(c, err)
	}
	if shift == nil {
		return c.JSON(dto.CurrentShiftResponse{Shift: nil})
	}
	out := dto.CurrentShiftDTO{
		ID:        shift.ID,
		WorkerID:  shift.WorkerID,
		StartTime: shift.StartTime,
	}
	if location != nil {
		l := dto.NewLocationDTO(location)
		out.Location = &l
	}
	if entry != nil {
		e := dto.NewTimeEntryDTO(entry)
		out.TimeEntry = &e
	}
	return c.JSON(dto.CurrentShiftResponse{Shift: &out})
}

// ListTimeEntries godoc
// @Summary      Entradas recientes
// @Description  Lista las últimas entradas de fichaje del trabajador del token
//               (máx. 50), más recientes primero.
// @Tags         time-entries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TimeEntriesResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/time-entries [get]
func (h *TimeclockHandler) ListTimeEntries(c *fiber.Ctx) error {
	workerID := GetWorkerID(c)
	if workerID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	entries, err := h.svc.ListRecentEntries(c.Context(), workerID)
	if err != nil {
		return timeclockError(c, err)
	}
	list := make([]dto.TimeEntryDTO, 0, len(entries))
	for _, e := range entries {
		list = append(list, dto.NewTimeEntryDTO(e))
	}
	return c.JSON(dto.TimeEntriesResponse{Total: len(list), TimeEntries: list})
}

// timeclockError mapea los errores de dominio del ledger a respuestas HTTP.
func timeclockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrRoleNotPermitted):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ROLE_NOT_PERMITTED", Message: "solo CARE_WORKER puede fichar"})
	case errors.Is(err, domain.ErrNoLocationAssigned):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_LOCATION", Message: "trabajador sin ubicación asignada"})
	case errors.Is(err, domain.ErrGeofenceViolation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "GEOFENCE_VIOLATION", Message: "posición fuera del perímetro de la ubicación"})
	case errors.Is(err, domain.ErrAlreadyClockedIn):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_CLOCKED_IN", Message: "ya hay una entrada abierta"})
	case errors.Is(err, domain.ErrNotClockedIn):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_CLOCKED_IN", Message: "no hay entrada abierta que cerrar"})
	case errors.Is(err, domain.ErrWorkerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "WORKER_NOT_FOUND", Message: "trabajador no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
