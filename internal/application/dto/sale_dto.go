package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest una línea de la venta a crear. Price nulo = precio de lista.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	Price     *decimal.Decimal `json:"price"`
}

// CreateSaleRequest entrada para crear una venta.
type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoice_number"` // vacío = se genera
	CustomerID    string            `json:"customer_id"`    // opcional
	PaymentMethod string            `json:"payment_method" validate:"required"`
	PaymentStatus string            `json:"payment_status"`
	Discount      decimal.Decimal   `json:"discount"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse una línea de venta persistida.
type SaleItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// SaleResponse salida de una venta con sus líneas.
type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CustomerID    string             `json:"customer_id,omitempty"`
	UserID        string             `json:"user_id"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	PaymentStatus string             `json:"payment_status"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest patch de un cliente (sin acumuladores).
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	LoyaltyPoints  int             `json:"loyalty_points"`
	CreatedAt      time.Time       `json:"created_at"`
}
