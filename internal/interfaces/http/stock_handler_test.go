package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hospimed/farmacia-api/internal/application/dto"
	appstock "github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/application/valuation"
	"github.com/hospimed/farmacia-api/internal/domain/entity"
	"github.com/hospimed/farmacia-api/internal/infrastructure/memory"
	httpiface "github.com/hospimed/farmacia-api/internal/interfaces/http"
)

const medicineID = "00000000-0000-0000-0000-0000000000a1"

func newTestApp(store *memory.Store) *fiber.App {
	ledger := appstock.NewLedger(store, 0, time.Millisecond)
	app := fiber.New()
	httpiface.Router(app, httpiface.RouterDeps{
		AdjustStock:      appstock.NewAdjustStockUseCase(ledger),
		RegisterMovement: appstock.NewRegisterMovementUseCase(ledger),
		StockQuery:       appstock.NewQueryUseCase(store.Medicines(), store.Movements()),
		Valuation:        valuation.NewUseCase(store.Valuation()),
	})
	return app
}

func seededStore(quantity int64) *memory.Store {
	store := memory.NewStore()
	store.Seed(&entity.Medicine{
		ID:            medicineID,
		Name:          "Amoxicilina 500mg",
		CategoryName:  "Antibióticos",
		StockQuantity: quantity,
		ReorderLevel:  20,
		SalePrice:     decimal.RequireFromString("5.00"),
	})
	return store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(httpiface.HeaderUserID, "user-7")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateAdjustment_Creado(t *testing.T) {
	store := seededStore(100)
	app := newTestApp(store)

	resp := doJSON(t, app, fiber.MethodPost, "/api/pharmacy/stock/adjustments", dto.AdjustStockRequest{
		MedicineID:     medicineID,
		AdjustmentType: entity.AdjustmentAdd,
		Quantity:       30,
		Reason:         entity.ReasonCorrection,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decode[dto.StockChangeResponse](t, resp)
	assert.Equal(t, medicineID, body.MedicineID)
	assert.Equal(t, int64(100), body.PreviousStock)
	assert.Equal(t, int64(130), body.NewStock)

	movs, err := store.Movements().ListByMedicine(context.Background(), medicineID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "user-7", movs[0].CreatedBy, "el usuario viaja en la cabecera")
}

func TestCreateAdjustment_ValidacionConCampos(t *testing.T) {
	app := newTestApp(seededStore(100))

	resp := doJSON(t, app, fiber.MethodPost, "/api/pharmacy/stock/adjustments", dto.AdjustStockRequest{
		MedicineID:     medicineID,
		AdjustmentType: "increment",
		Quantity:       0,
		Reason:         entity.ReasonCorrection,
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "adjustment_type")
	assert.Contains(t, body.Fields, "quantity")
}

func TestCreateAdjustment_StockInsuficiente(t *testing.T) {
	app := newTestApp(seededStore(5))

	resp := doJSON(t, app, fiber.MethodPost, "/api/pharmacy/stock/adjustments", dto.AdjustStockRequest{
		MedicineID:     medicineID,
		AdjustmentType: entity.AdjustmentRemove,
		Quantity:       10,
		Reason:         entity.ReasonDamage,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
}

func TestCreateAdjustment_MedicamentoInexistente(t *testing.T) {
	app := newTestApp(memory.NewStore())

	resp := doJSON(t, app, fiber.MethodPost, "/api/pharmacy/stock/adjustments", dto.AdjustStockRequest{
		MedicineID:     medicineID,
		AdjustmentType: entity.AdjustmentAdd,
		Quantity:       1,
		Reason:         entity.ReasonCorrection,
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRegisterMovement_Creado(t *testing.T) {
	app := newTestApp(seededStore(10))

	resp := doJSON(t, app, fiber.MethodPost, "/api/pharmacy/stock/movements", dto.RegisterMovementRequest{
		MedicineID:    medicineID,
		Type:          entity.MovementTypeIn,
		Quantity:      40,
		ReferenceType: entity.ReferencePurchase,
		ReferenceID:   "po-2025-118",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(50), decode[dto.StockChangeResponse](t, resp).NewStock)
}

func TestListMovements_OK(t *testing.T) {
	store := seededStore(100)
	app := newTestApp(store)

	for _, qty := range []int64{5, 7} {
		resp := doJSON(t, app, fiber.MethodPost, "/api/pharmacy/stock/adjustments", dto.AdjustStockRequest{
			MedicineID:     medicineID,
			AdjustmentType: entity.AdjustmentAdd,
			Quantity:       qty,
			Reason:         entity.ReasonPurchase,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/pharmacy/stock/movements?page=1&page_size=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.MovementListResponse](t, resp)
	assert.Equal(t, int64(2), body.Meta.Total)
	require.Len(t, body.Movements, 1)
	assert.Equal(t, int64(7), body.Movements[0].Quantity, "primero el más reciente")
}

func TestListMovements_FechaInvalida(t *testing.T) {
	app := newTestApp(seededStore(100))

	resp := doJSON(t, app, fiber.MethodGet, "/api/pharmacy/stock/movements?date_from=ayer", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "date_from")
}

func TestOverview_OK(t *testing.T) {
	store := seededStore(100)
	store.Seed(&entity.Medicine{ID: "m2", Name: "Agotado", StockQuantity: 0, ReorderLevel: 10})
	app := newTestApp(store)

	resp := doJSON(t, app, fiber.MethodGet, "/api/pharmacy/stock/overview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	type overviewBody struct {
		Total     int                    `json:"total"`
		Medicines []dto.MedicineStockDTO `json:"medicines"`
	}
	body := decode[overviewBody](t, resp)
	assert.Equal(t, 2, body.Total)

	resp = doJSON(t, app, fiber.MethodGet, "/api/pharmacy/stock/overview?status=out_of_stock", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode[overviewBody](t, resp)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "Agotado", body.Medicines[0].Name)
}

func TestValuation_OK(t *testing.T) {
	store := seededStore(10) // 10 × 5.00 = 50.00
	store.Seed(&entity.Medicine{
		ID: "m2", Name: "Ibuprofeno", CategoryName: "Analgésicos",
		StockQuantity: 5, ReorderLevel: 10,
		SalePrice: decimal.RequireFromString("20.00"),
	})
	app := newTestApp(store)

	resp := doJSON(t, app, fiber.MethodGet, "/api/pharmacy/stock/valuation?top=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decode[dto.ValuationReportDTO](t, resp)
	assert.True(t, body.TotalValue.Equal(decimal.RequireFromString("150.00")), "total = %s", body.TotalValue)
	assert.Equal(t, 2, body.TotalItems)
	require.Len(t, body.TopValued, 1)
	assert.Equal(t, "m2", body.TopValued[0].MedicineID)
}
