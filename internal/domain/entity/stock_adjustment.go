package entity

import "time"

// Tipos de ajuste manual de stock.
const (
	AdjustmentTypeAdd      = "add"      // after = before + quantity
	AdjustmentTypeSubtract = "subtract" // after = max(0, before - quantity)
	AdjustmentTypeSet      = "set"      // after = quantity
)

// StockAdjustment es el registro de auditoría inmutable de un ajuste manual de stock.
// Se crea únicamente desde el libro de ajustes; nunca se actualiza ni se borra.
// Invariante: QuantityAfter - QuantityBefore == QuantityChange.
type StockAdjustment struct {
	ID              string
	ProductID       string
	UserID          string
	Type            string // add, subtract, set
	QuantityBefore  int
	QuantityAfter   int
	QuantityChange  int // puede diferir en magnitud de la cantidad pedida (subtract cerca de cero)
	Reason          string
	Notes           string // opcional
	ReferenceNumber string // opcional
	AdjustmentDate  time.Time
	CreatedAt       time.Time
}
