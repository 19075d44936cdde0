package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn         = "in"         // entrada (compras)
	MovementTypeOut        = "out"        // salida (ventas, mermas)
	MovementTypeAdjustment = "adjustment" // ajuste manual con motivo
	MovementTypeReturn     = "return"     // devolución
)

// Tipos de referencia: el flujo de hospital que originó el movimiento.
const (
	ReferencePurchase   = "purchase"
	ReferenceSale       = "sale"
	ReferenceAdjustment = "adjustment"
	ReferenceReturn     = "return"
	ReferenceExpired    = "expired"
)

// Tipos de ajuste manual.
const (
	AdjustmentAdd    = "add"
	AdjustmentRemove = "remove"
	AdjustmentSet    = "set"
)

// Motivos de ajuste manual.
const (
	ReasonPurchase   = "purchase"
	ReasonDamage     = "damage"
	ReasonReturn     = "return"
	ReasonCorrection = "correction"
	ReasonDonation   = "donation"
	ReasonTransfer   = "transfer"
	ReasonOther      = "other"
)

// ValidAdjustmentType indica si s es un tipo de ajuste conocido.
func ValidAdjustmentType(s string) bool {
	return s == AdjustmentAdd || s == AdjustmentRemove || s == AdjustmentSet
}

// ValidAdjustmentReason indica si s es un motivo de ajuste conocido.
func ValidAdjustmentReason(s string) bool {
	switch s {
	case ReasonPurchase, ReasonDamage, ReasonReturn, ReasonCorrection,
		ReasonDonation, ReasonTransfer, ReasonOther:
		return true
	}
	return false
}

// StockMovement es el registro inmutable de un cambio de cantidad.
// Quantity es siempre el delta firmado NewStock - PreviousStock, incluso para
// ajustes "set": así la suma de deltas desde la cantidad inicial reproduce el
// stock actual (conciliación del libro). Una vez escrito nunca se modifica.
type StockMovement struct {
	ID             string
	MedicineID     string
	Type           string // in, out, adjustment, return
	Quantity       int64  // delta firmado
	PreviousStock  int64
	NewStock       int64
	ReferenceType  string // purchase, sale, adjustment, return, expired
	ReferenceID    string // ID del documento de origen (orden, venta); vacío si no aplica
	AdjustmentType string // add, remove, set; vacío si Type != adjustment
	Reason         string // motivo del ajuste; vacío si Type != adjustment
	Notes          string
	CreatedBy      string // ID opaco del usuario actuante (el portal lo resuelve)
	CreatedAt      time.Time
}

// StockEffect es la variante etiquetada de un efecto sobre el stock:
// un delta firmado (add/remove/in/out/return) o un valor absoluto (set).
type StockEffect struct {
	absolute bool
	value    int64
}

// DeltaEffect construye un efecto de delta firmado.
func DeltaEffect(delta int64) StockEffect {
	return StockEffect{value: delta}
}

// AbsoluteEffect construye un efecto de valor absoluto (ajuste "set").
func AbsoluteEffect(target int64) StockEffect {
	return StockEffect{absolute: true, value: target}
}

// IsAbsolute indica si el efecto fija un valor absoluto en lugar de un delta.
func (e StockEffect) IsAbsolute() bool {
	return e.absolute
}

// Apply devuelve la cantidad resultante de aplicar el efecto sobre current.
// Puede ser negativa; el libro de stock es quien rechaza ese resultado.
func (e StockEffect) Apply(current int64) int64 {
	if e.absolute {
		return e.value
	}
	return current + e.value
}
