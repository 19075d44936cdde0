package repository

import (
	"context"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
)

// MedicineRepository puerto de persistencia del catálogo de medicamentos.
// Devuelve (nil, nil) cuando el medicamento no existe; el caso de uso decide el error.
type MedicineRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Medicine, error)
	// GetForUpdate obtiene el medicamento bloqueando su fila (SELECT FOR UPDATE)
	// para serializar las mutaciones de stock del mismo medicamento.
	GetForUpdate(ctx context.Context, id string) (*entity.Medicine, error)
	// UpdateStock escribe la nueva cantidad. Solo el libro de stock la invoca,
	// dentro de la misma transacción que crea el movimiento.
	UpdateStock(ctx context.Context, id string, quantity int64) error
	List(ctx context.Context) ([]*entity.Medicine, error)
}
