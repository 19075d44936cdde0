package repository

import (
	"context"
	"time"

	"github.com/hospimed/farmacia-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para consultar el historial de movimientos.
type MovementFilter struct {
	MedicineID    *string
	Type          *string
	ReferenceType *string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// StockMovementRepository puerto del historial de movimientos.
// Solo expone escritura de inserción y lecturas: los movimientos son inmutables,
// no existe operación de actualización ni borrado.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
	Count(ctx context.Context, filter MovementFilter) (int64, error)
	// ListByMedicine devuelve todos los movimientos de un medicamento en orden de
	// aplicación (más antiguo primero), para conciliación del libro.
	ListByMedicine(ctx context.Context, medicineID string) ([]*entity.StockMovement, error)
}
