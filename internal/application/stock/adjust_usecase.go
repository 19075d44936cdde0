package stock

import (
	"context"
	"time"

	"github.com/hospimed/farmacia-api/internal/domain"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
)

// AdjustmentInput entrada para un ajuste manual de stock.
type AdjustmentInput struct {
	MedicineID     string
	AdjustmentType string // add, remove, set
	Quantity       int64  // > 0; para set es el valor objetivo
	Reason         string
	Notes          string
	UserID         string // usuario actuante, resuelto por el portal
}

// AdjustStockUseCase valida un ajuste manual y lo traduce a un efecto del libro.
// Es el único camino por el que una persona muta stock directamente; los flujos
// de compras/ventas entran por RegisterMovementUseCase.
type AdjustStockUseCase struct {
	ledger *Ledger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(ledger *Ledger) *AdjustStockUseCase {
	return &AdjustStockUseCase{ledger: ledger}
}

// Adjust valida la entrada, calcula el efecto y delega en el libro de stock.
// Por llamada exitosa se escribe exactamente un movimiento type=adjustment;
// ante cualquier fallo no queda escritura parcial.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, input AdjustmentInput) (*ApplyResult, error) {
	if err := validateAdjustment(input); err != nil {
		return nil, err
	}

	var effect entity.StockEffect
	switch input.AdjustmentType {
	case entity.AdjustmentAdd:
		effect = entity.DeltaEffect(input.Quantity)
	case entity.AdjustmentRemove:
		effect = entity.DeltaEffect(-input.Quantity)
	case entity.AdjustmentSet:
		effect = entity.AbsoluteEffect(input.Quantity)
	}

	return uc.ledger.Apply(ctx, input.MedicineID, effect, func(previous, newStock int64) *entity.StockMovement {
		return &entity.StockMovement{
			Type:           entity.MovementTypeAdjustment,
			ReferenceType:  entity.ReferenceAdjustment,
			AdjustmentType: input.AdjustmentType,
			Reason:         input.Reason,
			Notes:          input.Notes,
			CreatedBy:      input.UserID,
			CreatedAt:      time.Now(),
		}
	})
}

// validateAdjustment acumula errores de validación por campo.
// Se ejecuta antes de abrir la transacción: una entrada inválida nunca toca el libro.
func validateAdjustment(input AdjustmentInput) error {
	v := domain.NewValidationError()
	if input.MedicineID == "" {
		v.Add("medicine_id", "es obligatorio")
	}
	if !entity.ValidAdjustmentType(input.AdjustmentType) {
		v.Add("adjustment_type", "debe ser add, remove o set")
	}
	if input.Quantity <= 0 {
		v.Add("quantity", "debe ser un entero positivo")
	}
	if !entity.ValidAdjustmentReason(input.Reason) {
		v.Add("reason", "motivo desconocido")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}
