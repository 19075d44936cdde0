package stock

import (
	"context"

	"github.com/hospimed/farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la actualización de cantidad y el movimiento se
// escriben como una unidad atómica: o ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		medRepo repository.MedicineRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
