package repository

import (
	"context"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
)

// ValuationRepository lectura de snapshot para valorización de inventario.
type ValuationRepository interface {
	// Snapshot devuelve todos los medicamentos con cantidad, precios y categoría
	// leídos en una única vista consistente (una transacción REPEATABLE READ),
	// de modo que los porcentajes de los desgloses siempre sumen 100.
	Snapshot(ctx context.Context) ([]*entity.Medicine, error)
}
