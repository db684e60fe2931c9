package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/timeclock-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Timeclock           TimeclockService
	Analytics           AnalyticsService
	JWTSecret           string
	AnalyticsWindowDays int
}

// Router registra las rutas de la API. Todas las rutas van detrás del
// Bearer Token; analytics exige además rol MANAGER o ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Fichajes (protegido)
	timeclockHandler := NewTimeclockHandler(deps.Timeclock)
	timeEntries := protected.Group("/time-entries")
	timeEntries.Post("/clock-in", timeclockHandler.ClockIn)
	timeEntries.Post("/clock-out", timeclockHandler.ClockOut)
	timeEntries.Get("/", timeclockHandler.ListTimeEntries)

	// Turno actual (protegido)
	shifts := protected.Group("/shifts")
	shifts.Get("/current", timeclockHandler.GetCurrentShift)

	// Reportes (protegido, solo MANAGER/ADMIN)
	analyticsHandler := NewAnalyticsHandler(deps.Analytics, deps.AnalyticsWindowDays)
	analyticsGroup := protected.Group("/analytics", RequireRole(entity.RoleManager, entity.RoleAdmin))
	analyticsGroup.Get("/daily-stats", analyticsHandler.GetDailyStats)
}
