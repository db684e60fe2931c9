package timeclock

import (
	"context"

	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

// TxRunner ejecuta el callback dentro de una transacción con repos atados a la
// tx. Commit si fn devuelve nil, Rollback si no: nunca queda un par
// Shift/TimeEntry a medio abrir.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		workerRepo repository.WorkerRepository,
		shiftRepo repository.ShiftRepository,
		entryRepo repository.TimeEntryRepository,
	) error) error
}
