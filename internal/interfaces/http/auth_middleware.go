package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/timeclock-pro/internal/application/dto"
	"github.com/tu-usuario/timeclock-pro/pkg/jwt"
)

// Locals keys para el contexto del trabajador en Fiber.
const (
	LocalWorkerID   = "worker_id"
	LocalRole       = "role"
	LocalLocationID = "location_id"
)

// AuthMiddleware valida el Bearer Token JWT y extrae worker_id, role y
// location_id a c.Locals. El token lo emite el upstream de autenticación;
// aquí solo se verifica firma y expiración.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		workerID, role, locationID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalWorkerID, workerID)
		c.Locals(LocalRole, role)
		c.Locals(LocalLocationID, locationID)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe ir después de
// AuthMiddleware. Token sin rol -> 401; rol no permitido -> 403.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin rol"})
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
	}
}

// GetWorkerID devuelve el WorkerID del contexto (después del middleware de auth).
func GetWorkerID(c *fiber.Ctx) string {
	v := c.Locals(LocalWorkerID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	v := c.Locals(LocalRole)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetLocationID devuelve la ubicación asignada del contexto (puede ser vacía).
func GetLocationID(c *fiber.Ctx) string {
	v := c.Locals(LocalLocationID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
