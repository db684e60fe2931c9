package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/timeclock-pro/internal/application/timeclock"
	"github.com/tu-usuario/timeclock-pro/internal/domain/repository"
)

// Ensure TxRunner implements timeclock.TxRunner.
var _ timeclock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El callback del ledger bloquea primero la fila del trabajador (GetForUpdate), así que
// dos fichajes concurrentes del mismo trabajador se serializan aquí.
func (r *TxRunner) Run(ctx context.Context, fn func(
	workerRepo repository.WorkerRepository,
	shiftRepo repository.ShiftRepository,
	entryRepo repository.TimeEntryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	workerRepo := NewWorkerRepository(tx)
	shiftRepo := NewShiftRepository(tx)
	entryRepo := NewTimeEntryRepository(tx)

	if err := fn(workerRepo, shiftRepo, entryRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
