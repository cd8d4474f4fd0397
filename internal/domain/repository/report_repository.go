package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// SalesTotals agregados de ventas en un período.
type SalesTotals struct {
	SaleCount     int
	Revenue       decimal.Decimal // suma de total_amount
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	CostTotal     decimal.Decimal // suma de quantity * cost_price de las líneas
	UnitsSold     int
}

// PaymentMethodTotals desglose de ventas por método de pago.
type PaymentMethodTotals struct {
	PaymentMethod string
	SaleCount     int
	Revenue       decimal.Decimal
}

// InventoryTotals agregados del inventario al momento de la consulta.
type InventoryTotals struct {
	TotalProducts  int
	ActiveProducts int
	TotalStockUnits int
	StockValueAtCost   decimal.Decimal // suma de stock_quantity * cost_price
	StockValueAtRetail decimal.Decimal // suma de stock_quantity * price
	LowStockCount  int
	OutOfStockCount int
}

// CustomerTotals agregados de clientes.
type CustomerTotals struct {
	TotalCustomers int
	NewThisMonth   int
}

// TopCustomer cliente ordenado por compras acumuladas.
type TopCustomer struct {
	ID             string
	Name           string
	Phone          string
	TotalPurchases decimal.Decimal
	LoyaltyPoints  int
}

// ReportRepository define las consultas read-only del agregador de reportes.
// Todas se recalculan en cada llamada directamente sobre las tablas
// comprometidas: sin caché ni vistas materializadas.
type ReportRepository interface {
	LowStockProducts(ctx context.Context) ([]*entity.Product, error)
	SalesTotals(ctx context.Context, start, end time.Time) (*SalesTotals, error)
	SalesByPaymentMethod(ctx context.Context, start, end time.Time) ([]PaymentMethodTotals, error)
	InventoryTotals(ctx context.Context) (*InventoryTotals, error)
	CustomerTotals(ctx context.Context, monthStart time.Time) (*CustomerTotals, error)
	TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
}
