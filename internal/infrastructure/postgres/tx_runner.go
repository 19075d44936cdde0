package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/domain"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Fija lock_timeout por transacción para que una espera de bloqueo de fila no
// quede colgada: al vencerse, la operación sale con domain.ErrConflict y el
// caso de uso decide si reintenta.
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMS int
}

// NewTxRunner construye el runner. lockTimeoutMS acota la espera por el bloqueo
// de fila del medicamento; con cero o negativo se usan 3000 ms.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMS int) *TxRunner {
	if lockTimeoutMS <= 0 {
		lockTimeoutMS = 3000
	}
	return &TxRunner{pool: pool, lockTimeoutMS: lockTimeoutMS}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit
// o Rollback. La actualización de stock y el movimiento que fn escriba son una
// unidad atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	medRepo repository.MedicineRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// SET LOCAL aplica solo a esta transacción
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMS)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	medRepo := NewMedicineRepository(tx)
	movRepo := NewStockMovementRepository(tx)

	if err := fn(medRepo, movRepo); err != nil {
		if isLockNotAvailable(err) || isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
