package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hospimed/farmacia-api/internal/application/dto"
	"github.com/hospimed/farmacia-api/internal/application/valuation"
)

// ValuationHandler maneja las peticiones del reporte de valorización.
type ValuationHandler struct {
	uc *valuation.UseCase
}

// NewValuationHandler construye el handler.
func NewValuationHandler(uc *valuation.UseCase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// GetReport godoc
// @Summary      Reporte de valorización de inventario
// @Description  Valor total, desgloses por categoría y por estado de stock, y
//
//	top de medicamentos por valor, sobre un snapshot consistente.
//
// @Tags         valuation
// @Produce      json
// @Param        top  query  int  false  "Tamaño del top por valor (default 5)"
// @Success      200  {object}  dto.ValuationReportDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/pharmacy/stock/valuation [get]
func (h *ValuationHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.uc.Report(c.Context(), c.QueryInt("top"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}
