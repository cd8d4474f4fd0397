package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos y estados de pago de una venta.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
	PaymentMethodCredit = "credit"

	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// Sale representa una venta confirmada. Se crea una sola vez junto con sus
// líneas y nunca se modifica después (no existe operación de enmienda).
type Sale struct {
	ID            string
	InvoiceNumber string // único global
	CustomerID    string // opcional (vacío = venta de mostrador)
	UserID        string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal // subtotal - discount + tax
	PaymentMethod string
	PaymentStatus string
	CreatedAt     time.Time
}

// SaleItem es una línea de venta, creada atómicamente con su Sale.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int // > 0
	Price     decimal.Decimal // precio unitario cobrado
	CostPrice decimal.Decimal // costo unitario al momento de la venta
}
