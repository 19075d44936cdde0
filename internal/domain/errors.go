package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrMedicineNotFound  = errors.New("medicamento no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto de concurrencia sobre el stock")
)

// ValidationError agrupa mensajes de validación por campo.
// errors.Is(err, ErrInvalidInput) devuelve true para clasificarlo en los handlers.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError vacío listo para acumular campos.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add registra el mensaje de validación de un campo.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors indica si se acumuló al menos un campo inválido.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entrada inválida (%d campos)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// InsufficientStockError indica que un retiro dejaría el stock por debajo de cero.
// Lleva la cantidad disponible para que el caller la informe al usuario.
// errors.Is(err, ErrInsufficientStock) devuelve true.
type InsufficientStockError struct {
	MedicineID string
	Available  int64
	Requested  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para medicamento %s: disponible %d, solicitado %d",
		e.MedicineID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
