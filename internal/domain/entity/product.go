package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// StockQuantity es el saldo autoritativo del libro de stock: solo lo modifican
// el libro de ajustes (con auditoría) y el motor de ventas (sin auditoría).
type Product struct {
	ID             string
	Code           string // código único (SKU / código de barras)
	Name           string
	Category       string
	Brand          string // opcional
	Model          string // opcional
	Price          decimal.Decimal // precio de venta
	CostPrice      decimal.Decimal
	MRP            decimal.Decimal // precio máximo de venta sugerido
	WholesalePrice decimal.Decimal
	StockQuantity  int // entero; >= 0 por la vía manual, la venta puede dejarlo negativo
	MinStockLevel  int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLowStock indica si el producto está en stock bajo. Es un predicado derivado:
// nunca se persiste, se evalúa al momento de leer.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
