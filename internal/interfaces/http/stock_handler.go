package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/hospimed/farmacia-api/internal/application/dto"
	appstock "github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/domain"
)

// HeaderUserID cabecera con el ID del usuario actuante. La identidad la resuelve
// el portal que antecede a este servicio; aquí solo se registra en el movimiento.
const HeaderUserID = "X-User-ID"

// StockHandler maneja las peticiones HTTP del libro de stock de la farmacia.
type StockHandler struct {
	adjustUC   *appstock.AdjustStockUseCase
	registerUC *appstock.RegisterMovementUseCase
	queryUC    *appstock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	adjustUC *appstock.AdjustStockUseCase,
	registerUC *appstock.RegisterMovementUseCase,
	queryUC *appstock.QueryUseCase,
) *StockHandler {
	return &StockHandler{adjustUC: adjustUC, registerUC: registerUC, queryUC: queryUC}
}

// CreateAdjustment godoc
// @Summary      Ajustar stock de un medicamento
// @Description  Aplica un ajuste manual (add/remove/set) con motivo. Escribe la
//
//	nueva cantidad y el movimiento como unidad atómica.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "medicine_id, adjustment_type, quantity, reason, notes"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pharmacy/stock/adjustments [post]
func (h *StockHandler) CreateAdjustment(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.adjustUC.Adjust(c.Context(), appstock.AdjustmentInput{
		MedicineID:     in.MedicineID,
		AdjustmentType: in.AdjustmentType,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		Notes:          in.Notes,
		UserID:         c.Get(HeaderUserID),
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockChangeResponse{
		MedicineID:    in.MedicineID,
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
	})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock (in/out/return)
// @Description  Entrada para los flujos externos: compras, ventas, devoluciones,
//
//	vencimientos. Mismas garantías que los ajustes.
//
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "medicine_id, type, quantity, reference_type, reference_id"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pharmacy/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	result, err := h.registerUC.Register(c.Context(), appstock.MovementInput{
		MedicineID:    in.MedicineID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Notes:         in.Notes,
		UserID:        c.Get(HeaderUserID),
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StockChangeResponse{
		MedicineID:    in.MedicineID,
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Lista paginada del más reciente al más antiguo, con filtros por
//
//	medicamento, tipo, referencia y rango de fechas.
//
// @Tags         stock
// @Produce      json
// @Param        medicine_id     query  string  false  "Filtrar por medicamento"
// @Param        type            query  string  false  "in, out, adjustment, return"
// @Param        reference_type  query  string  false  "purchase, sale, adjustment, return, expired"
// @Param        date_from       query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        date_to         query  string  false  "RFC 3339 o YYYY-MM-DD"
// @Param        page            query  int     false  "Página (desde 1)"
// @Param        page_size       query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pharmacy/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var req dto.MovementListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	resp, err := h.queryUC.ListMovements(c.Context(), req)
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(resp)
}

// Overview godoc
// @Summary      Resumen de stock del catálogo
// @Description  Por medicamento: cantidad, nivel de reorden y estado derivado
//
//	(out_of_stock, critical, low_stock, in_stock).
//
// @Tags         stock
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/pharmacy/stock/overview [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	list, err := h.queryUC.Overview(c.Context(), c.Query("status"))
	if err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":     len(list),
		"medicines": list,
	})
}

// stockError traduce los errores del dominio a respuestas HTTP.
func stockError(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Fields:  vErr.Fields,
		})
	}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: stockErr.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrMedicineNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicamento no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
