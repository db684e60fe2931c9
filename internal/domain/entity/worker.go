package entity

import "time"

// Roles válidos para Worker. Solo CARE_WORKER puede fichar; los demás consumen reportes.
const (
	RoleCareWorker = "CARE_WORKER"
	RoleManager    = "MANAGER"
	RoleAdmin      = "ADMIN"
)

// Worker representa un trabajador del sistema. Su ciclo de vida (alta, baja,
// asignación de ubicación) lo gestiona un colaborador externo; el ledger solo lee
// id, role y LocationID.
type Worker struct {
	ID         string
	Name       string
	Email      string
	Role       string  // CARE_WORKER, MANAGER, ADMIN
	LocationID *string // ubicación asignada; nil si no tiene
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasLocation indica si el trabajador tiene ubicación asignada.
func (w *Worker) HasLocation() bool {
	return w.LocationID != nil && *w.LocationID != ""
}
