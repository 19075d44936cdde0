package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/domain"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/infrastructure/memory"
)

func newRegisterUC(store *memory.Store) *appstock.RegisterMovementUseCase {
	return appstock.NewRegisterMovementUseCase(appstock.NewLedger(store, 0, time.Millisecond))
}

func movement(movType, refType string, qty int64) appstock.MovementInput {
	return appstock.MovementInput{
		MedicineID:    testMedicineID,
		Type:          movType,
		Quantity:      qty,
		ReferenceType: refType,
		UserID:        testUserID,
	}
}

func TestRegister_EntradaPorCompra(t *testing.T) {
	store := newStoreWithStock(10)
	uc := newRegisterUC(store)

	result, err := uc.Register(context.Background(), movement(entity.MovementTypeIn, entity.ReferencePurchase, 50))
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.PreviousStock)
	assert.Equal(t, int64(60), result.NewStock)

	movs := movementsOf(t, store, testMedicineID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].Type)
	assert.Equal(t, entity.ReferencePurchase, movs[0].ReferenceType)
	assert.Equal(t, int64(50), movs[0].Quantity)
	assert.Empty(t, movs[0].AdjustmentType, "los movimientos externos no llevan tipo de ajuste")
}

func TestRegister_SalidaPorVentaResta(t *testing.T) {
	store := newStoreWithStock(30)
	uc := newRegisterUC(store)

	result, err := uc.Register(context.Background(), movement(entity.MovementTypeOut, entity.ReferenceSale, 12))
	require.NoError(t, err)
	assert.Equal(t, int64(18), result.NewStock)

	movs := movementsOf(t, store, testMedicineID)
	require.Len(t, movs, 1)
	assert.Equal(t, int64(-12), movs[0].Quantity)
}

func TestRegister_DevolucionSuma(t *testing.T) {
	store := newStoreWithStock(30)
	uc := newRegisterUC(store)

	result, err := uc.Register(context.Background(), movement(entity.MovementTypeReturn, entity.ReferenceReturn, 3))
	require.NoError(t, err)
	assert.Equal(t, int64(33), result.NewStock)
}

func TestRegister_SalidaSinStockFalla(t *testing.T) {
	store := newStoreWithStock(4)
	uc := newRegisterUC(store)

	_, err := uc.Register(context.Background(), movement(entity.MovementTypeOut, entity.ReferenceSale, 5))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(4), currentStock(t, store, testMedicineID))
	assert.Empty(t, movementsOf(t, store, testMedicineID))
}

func TestRegister_Validacion(t *testing.T) {
	uc := newRegisterUC(newStoreWithStock(10))

	casos := []struct {
		nombre string
		input  appstock.MovementInput
		campo  string
	}{
		{"tipo desconocido", movement("transfer", entity.ReferencePurchase, 5), "type"},
		{"tipo adjustment reservado", movement(entity.MovementTypeAdjustment, entity.ReferencePurchase, 5), "type"},
		{"cantidad cero", movement(entity.MovementTypeIn, entity.ReferencePurchase, 0), "quantity"},
		{"referencia adjustment reservada", movement(entity.MovementTypeIn, entity.ReferenceAdjustment, 5), "reference_type"},
		{"referencia desconocida", movement(entity.MovementTypeIn, "loan", 5), "reference_type"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.input)
			require.Error(t, err)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Fields, tc.campo)
		})
	}
}
