package stock

import (
	"context"
	"errors"
	"time"

	"github.com/hospimed/farmacia-api/internal/domain"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 50 * time.Millisecond
)

// ApplyResult par antes/después de una mutación de stock.
type ApplyResult struct {
	PreviousStock int64
	NewStock      int64
}

// movementBuilder construye el movimiento a persistir para el par (previous, new).
// El libro sobreescribe PreviousStock, NewStock y Quantity para que el registro
// concilie siempre con el cambio realmente aplicado.
type movementBuilder func(previous, newStock int64) *entity.StockMovement

// Ledger es la única autoridad para mutar StockQuantity de un medicamento.
//
// Cada Apply corre en una transacción: bloquea la fila del medicamento
// (SELECT FOR UPDATE), calcula la cantidad resultante, rechaza resultados
// negativos y escribe cantidad + movimiento atómicamente. Las mutaciones del
// mismo medicamento quedan serializadas por el bloqueo de fila; medicamentos
// distintos avanzan en paralelo.
type Ledger struct {
	txRunner     TxRunner
	maxRetries   int
	retryBackoff time.Duration
}

// NewLedger construye el libro de stock. maxRetries y retryBackoff controlan el
// reintento interno ante domain.ErrConflict; con cero se usan los defaults.
func NewLedger(txRunner TxRunner, maxRetries int, retryBackoff time.Duration) *Ledger {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	return &Ledger{txRunner: txRunner, maxRetries: maxRetries, retryBackoff: retryBackoff}
}

// Apply aplica un efecto (delta o valor absoluto) sobre el stock de medicineID.
//
// Garantías:
//   - domain.ErrMedicineNotFound si el medicamento no existe; nada se escribe.
//   - *domain.InsufficientStockError si el resultado sería negativo; nada se escribe.
//   - Solo domain.ErrConflict (contención de bloqueo) se reintenta, con backoff
//     lineal y un número acotado de intentos; cualquier otro error se propaga.
func (l *Ledger) Apply(ctx context.Context, medicineID string, effect entity.StockEffect, build movementBuilder) (*ApplyResult, error) {
	var result *ApplyResult

	for attempt := 0; ; attempt++ {
		err := l.txRunner.Run(ctx, func(
			medRepo repository.MedicineRepository,
			movRepo repository.StockMovementRepository,
		) error {
			med, err := medRepo.GetForUpdate(ctx, medicineID)
			if err != nil {
				return err
			}
			if med == nil {
				return domain.ErrMedicineNotFound
			}

			previous := med.StockQuantity
			newStock := effect.Apply(previous)
			if newStock < 0 {
				return &domain.InsufficientStockError{
					MedicineID: medicineID,
					Available:  previous,
					Requested:  previous - newStock,
				}
			}

			if err := medRepo.UpdateStock(ctx, medicineID, newStock); err != nil {
				return err
			}

			mov := build(previous, newStock)
			mov.MedicineID = medicineID
			mov.PreviousStock = previous
			mov.NewStock = newStock
			mov.Quantity = newStock - previous
			if mov.CreatedAt.IsZero() {
				mov.CreatedAt = time.Now()
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}

			result = &ApplyResult{PreviousStock: previous, NewStock: newStock}
			return nil
		})
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, domain.ErrConflict) || attempt+1 >= l.maxRetries {
			return nil, err
		}
		// Backoff lineal antes de reintentar el bloqueo de fila
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryBackoff * time.Duration(attempt+1)):
		}
	}
}
