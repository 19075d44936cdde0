package dto

import "github.com/shopspring/decimal"

// ValuationBreakdownDTO fila de un desglose de valorización (por categoría o estado).
type ValuationBreakdownDTO struct {
	Key        string          `json:"key"` // nombre de categoría o etiqueta de estado
	ItemCount  int             `json:"item_count"`
	TotalValue decimal.Decimal `json:"total_value"`
	Percentage decimal.Decimal `json:"percentage"` // 0 cuando el total general es 0
}

// TopValuedDTO medicamento dentro del top por valor de inventario.
type TopValuedDTO struct {
	MedicineID    string          `json:"medicine_id"`
	Name          string          `json:"name"`
	StockQuantity int64           `json:"stock_quantity"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ValuationReportDTO reporte de valorización de inventario.
type ValuationReportDTO struct {
	TotalValue decimal.Decimal         `json:"total_value"`
	TotalItems int                     `json:"total_items"`
	ByCategory []ValuationBreakdownDTO `json:"by_category"`
	ByStatus   []ValuationBreakdownDTO `json:"by_status"`
	TopValued  []TopValuedDTO          `json:"top_valued"`
}
