package http

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/timeclock-pro/internal/application/dto"
)

// AnalyticsService reporte de asistencia que consume el handler.
// Lo implementa *analytics.AnalyticsUseCase.
type AnalyticsService interface {
	GetDailyStats(ctx context.Context, start, end time.Time, locationID string) (*dto.DailyStatsReportDTO, error)
}

// AnalyticsHandler maneja los endpoints de reportes de asistencia.
// Rutas restringidas a MANAGER y ADMIN vía RequireRole en el router.
type AnalyticsHandler struct {
	svc               AnalyticsService
	defaultWindowDays int
}

// NewAnalyticsHandler construye el handler con la ventana por defecto de configuración.
func NewAnalyticsHandler(svc AnalyticsService, defaultWindowDays int) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, defaultWindowDays: defaultWindowDays}
}

// GetDailyStats godoc
// @Summary      Estadísticas diarias de asistencia
// @Description  Buckets por día de calendario (UTC) sobre los últimos N días, con
//               desglose de horas por trabajador y agregados de la ventana. Sin
//               location_id explícito se usa la ubicación del token; si tampoco
//               hay, se agregan todas las ubicaciones.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        window       query  string  false  "Ventana '<n>d', 1-90 días (default configurable, 7d)"
// @Param        location_id  query  string  false  "Filtrar por ubicación (UUID)"
// @Success      200  {object}  dto.DailyStatsReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/analytics/daily-stats [get]
func (h *AnalyticsHandler) GetDailyStats(c *fiber.Ctx) error {
	var req dto.DailyStatsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	days, err := h.parseWindow(req.Window)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_WINDOW", Message: "window debe ser '<n>d' con n entre 1 y 90",
		})
	}

	locationID := req.LocationID
	if locationID == "" {
		locationID = GetLocationID(c)
	}

	// Ventana [start, end) sobre clock_in_time: los últimos N días hasta ahora.
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -days)

	report, err := h.svc.GetDailyStats(c.Context(), start, end, locationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(report)
}

// parseWindow interpreta "<n>d" (ej. "7d"); vacío usa el default de configuración.
func (h *AnalyticsHandler) parseWindow(window string) (int, error) {
	if window == "" {
		return h.defaultWindowDays, nil
	}
	s, ok := strings.CutSuffix(window, "d")
	if !ok {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 90 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
