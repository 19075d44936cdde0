package http

import (
	"github.com/gofiber/fiber/v2"

	appstock "github.com/hospimed/farmacia-api/internal/application/stock"
	"github.com/hospimed/farmacia-api/internal/application/valuation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AdjustStock      *appstock.AdjustStockUseCase
	RegisterMovement *appstock.RegisterMovementUseCase
	StockQuery       *appstock.QueryUseCase
	Valuation        *valuation.UseCase
}

// Router registra las rutas de la API. La autenticación corre en el portal que
// antecede a este servicio; aquí las rutas se exponen tal cual.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/pharmacy")

	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.AdjustStock, deps.RegisterMovement, deps.StockQuery)
	stockGroup.Post("/adjustments", stockHandler.CreateAdjustment)
	stockGroup.Post("/movements", stockHandler.RegisterMovement)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/overview", stockHandler.Overview)

	valuationHandler := NewValuationHandler(deps.Valuation)
	stockGroup.Get("/valuation", valuationHandler.GetReport)
}
