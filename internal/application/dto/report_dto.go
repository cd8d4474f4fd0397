package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO resumen del dashboard: todo derivado al momento de la
// consulta, nada precalculado. "Hoy" es el día calendario UTC y el mes corre
// desde el día 1 UTC hasta la fecha.
type DashboardStatsDTO struct {
	TodaySaleCount        int             `json:"today_sale_count"`
	TodayTotal            decimal.Decimal `json:"today_total"`
	MonthRevenue          decimal.Decimal `json:"month_revenue"`
	ActiveProducts        int             `json:"active_products"`
	LowStockCount         int             `json:"low_stock_count"`
	TotalCustomers        int             `json:"total_customers"`
	NewCustomersThisMonth int             `json:"new_customers_this_month"`
}

// PaymentMethodTotalsDTO desglose de un método de pago.
type PaymentMethodTotalsDTO struct {
	PaymentMethod string          `json:"payment_method"`
	SaleCount     int             `json:"sale_count"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// SalesReportDTO agregados de ventas en un período.
type SalesReportDTO struct {
	Start           string                   `json:"start"`
	End             string                   `json:"end"`
	SaleCount       int                      `json:"sale_count"`
	Revenue         decimal.Decimal          `json:"revenue"`
	Subtotal        decimal.Decimal          `json:"subtotal"`
	DiscountTotal   decimal.Decimal          `json:"discount_total"`
	TaxTotal        decimal.Decimal          `json:"tax_total"`
	CostTotal       decimal.Decimal          `json:"cost_total"`
	GrossMargin     decimal.Decimal          `json:"gross_margin"`
	UnitsSold       int                      `json:"units_sold"`
	ByPaymentMethod []PaymentMethodTotalsDTO `json:"by_payment_method"`
}

// InventoryReportDTO agregados del inventario al momento de la consulta.
type InventoryReportDTO struct {
	TotalProducts      int             `json:"total_products"`
	ActiveProducts     int             `json:"active_products"`
	TotalStockUnits    int             `json:"total_stock_units"`
	StockValueAtCost   decimal.Decimal `json:"stock_value_at_cost"`
	StockValueAtRetail decimal.Decimal `json:"stock_value_at_retail"`
	LowStockCount      int             `json:"low_stock_count"`
	OutOfStockCount    int             `json:"out_of_stock_count"`
}

// TopCustomerDTO cliente ordenado por compras acumuladas.
type TopCustomerDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	LoyaltyPoints  int             `json:"loyalty_points"`
}

// CustomerReportDTO agregados de clientes.
type CustomerReportDTO struct {
	TotalCustomers int              `json:"total_customers"`
	NewThisMonth   int              `json:"new_this_month"`
	TopCustomers   []TopCustomerDTO `json:"top_customers"`
}
