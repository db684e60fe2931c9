package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos son resultados esperados
// de la máquina de estados del ledger, nunca se reintentan automáticamente.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrWorkerNotFound     = errors.New("trabajador no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrRoleNotPermitted   = errors.New("el rol no permite fichar")
	ErrNoLocationAssigned = errors.New("el trabajador no tiene ubicación asignada")
	ErrGeofenceViolation  = errors.New("posición fuera del perímetro de la ubicación")
	ErrAlreadyClockedIn   = errors.New("el trabajador ya tiene una entrada abierta")
	ErrNotClockedIn       = errors.New("el trabajador no tiene una entrada abierta")
)
