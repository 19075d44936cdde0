package stock

import (
	"context"
	"time"

	"github.com/hospimed/farmacia-api/internal/domain"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
)

// MovementInput entrada para registrar un movimiento emitido por otro flujo del
// hospital (compras, ventas, devoluciones, vencimientos).
type MovementInput struct {
	MedicineID    string
	Type          string // in, out, return
	Quantity      int64  // > 0
	ReferenceType string // purchase, sale, return, expired
	ReferenceID   string
	Notes         string
	UserID        string
}

// RegisterMovementUseCase registra movimientos in/out/return contra el libro de
// stock, con las mismas garantías de atomicidad y no-negatividad que los ajustes.
type RegisterMovementUseCase struct {
	ledger *Ledger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(ledger *Ledger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{ledger: ledger}
}

// Register valida la entrada y aplica el delta: in/return suman, out resta.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovementInput) (*ApplyResult, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}

	delta := input.Quantity
	if input.Type == entity.MovementTypeOut {
		delta = -input.Quantity
	}

	return uc.ledger.Apply(ctx, input.MedicineID, entity.DeltaEffect(delta), func(previous, newStock int64) *entity.StockMovement {
		return &entity.StockMovement{
			Type:          input.Type,
			ReferenceType: input.ReferenceType,
			ReferenceID:   input.ReferenceID,
			Notes:         input.Notes,
			CreatedBy:     input.UserID,
			CreatedAt:     time.Now(),
		}
	})
}

func validateMovement(input MovementInput) error {
	v := domain.NewValidationError()
	if input.MedicineID == "" {
		v.Add("medicine_id", "es obligatorio")
	}
	switch input.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeReturn:
	default:
		v.Add("type", "debe ser in, out o return")
	}
	if input.Quantity <= 0 {
		v.Add("quantity", "debe ser un entero positivo")
	}
	switch input.ReferenceType {
	case entity.ReferencePurchase, entity.ReferenceSale, entity.ReferenceReturn, entity.ReferenceExpired:
	default:
		// "adjustment" queda reservado para el caso de uso de ajustes
		v.Add("reference_type", "debe ser purchase, sale, return o expired")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}
