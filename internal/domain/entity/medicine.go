package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de salud de stock derivados del nivel de reorden.
const (
	StockStatusOutOfStock = "out_of_stock" // sin existencias
	StockStatusCritical   = "critical"     // por debajo de la mitad del nivel de reorden
	StockStatusLowStock   = "low_stock"    // en o por debajo del nivel de reorden
	StockStatusInStock    = "in_stock"     // por encima del nivel de reorden
)

// Medicine representa un medicamento del catálogo de la farmacia.
// StockQuantity solo se muta a través del libro de stock (transacción + movimiento);
// el alta y retiro del catálogo pertenecen al módulo de administración.
type Medicine struct {
	ID            string
	Name          string
	CategoryID    string
	CategoryName  string
	StockQuantity int64 // invariante: >= 0
	ReorderLevel  int64 // >= 0; 0 = sin punto de reorden definido
	UnitCost      decimal.Decimal
	SalePrice     decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ClassifyStock deriva el estado de salud del stock. Función pura, sin estado.
//
// Bandas (reorderLevel = R):
//
//	qty <= 0     → out_of_stock
//	qty <= R/2   → critical
//	qty <= R     → low_stock
//	qty >  R     → in_stock
//
// La comparación qty <= R/2 se hace como 2*qty <= R para evitar flotantes.
// Con R = 0 las bandas critical y low_stock colapsan y solo son alcanzables
// out_of_stock e in_stock; no se trata como caso especial.
func ClassifyStock(stockQuantity, reorderLevel int64) string {
	switch {
	case stockQuantity <= 0:
		return StockStatusOutOfStock
	case 2*stockQuantity <= reorderLevel:
		return StockStatusCritical
	case stockQuantity <= reorderLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockStatus devuelve el estado de salud del stock actual del medicamento.
func (m *Medicine) StockStatus() string {
	return ClassifyStock(m.StockQuantity, m.ReorderLevel)
}

// StockValue devuelve el valor de inventario del medicamento (cantidad × precio de venta).
func (m *Medicine) StockValue() decimal.Decimal {
	return m.SalePrice.Mul(decimal.NewFromInt(m.StockQuantity))
}
