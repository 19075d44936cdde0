package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/pharmacy/stock/adjustments.
type AdjustStockRequest struct {
	MedicineID     string `json:"medicine_id"`
	AdjustmentType string `json:"adjustment_type"` // add, remove, set
	Quantity       int64  `json:"quantity"`        // > 0; para set es el valor objetivo
	Reason         string `json:"reason"`          // purchase, damage, return, correction, donation, transfer, other
	Notes          string `json:"notes,omitempty"`
}

// RegisterMovementRequest body para POST /api/pharmacy/stock/movements.
// Entrada para los flujos externos (compras, ventas, devoluciones).
type RegisterMovementRequest struct {
	MedicineID    string `json:"medicine_id"`
	Type          string `json:"type"` // in, out, return
	Quantity      int64  `json:"quantity"`
	ReferenceType string `json:"reference_type"` // purchase, sale, return, expired
	ReferenceID   string `json:"reference_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// StockChangeResponse resultado de una mutación de stock.
type StockChangeResponse struct {
	MedicineID    string `json:"medicine_id"`
	PreviousStock int64  `json:"previous_stock"`
	NewStock      int64  `json:"new_stock"`
}

// MovementListRequest filtros y paginación para GET /api/pharmacy/stock/movements.
type MovementListRequest struct {
	PageRequest
	MedicineID    string `query:"medicine_id"`
	Type          string `query:"type"`
	ReferenceType string `query:"reference_type"`
	DateFrom      string `query:"date_from"` // RFC 3339 o YYYY-MM-DD
	DateTo        string `query:"date_to"`
}

// StockMovementDTO representación de un movimiento en respuestas.
type StockMovementDTO struct {
	ID             string    `json:"id"`
	MedicineID     string    `json:"medicine_id"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	PreviousStock  int64     `json:"previous_stock"`
	NewStock       int64     `json:"new_stock"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id,omitempty"`
	AdjustmentType string    `json:"adjustment_type,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse página de movimientos con metadatos.
type MovementListResponse struct {
	Movements []StockMovementDTO `json:"movements"`
	Meta      PageResponse       `json:"meta"`
}

// MedicineStockDTO fila del resumen de stock para el catálogo.
type MedicineStockDTO struct {
	MedicineID    string          `json:"medicine_id"`
	Name          string          `json:"name"`
	CategoryName  string          `json:"category_name,omitempty"`
	StockQuantity int64           `json:"stock_quantity"`
	ReorderLevel  int64           `json:"reorder_level"`
	Status        string          `json:"status"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}
