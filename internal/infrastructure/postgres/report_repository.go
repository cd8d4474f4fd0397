package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para el agregador de reportes.
// Siempre va directo al pool: cada llamada recalcula sobre el último estado
// comprometido, sin caché ni vistas materializadas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// LowStockProducts productos activos con stock en o bajo su mínimo.
// El estado "stock bajo" se deriva aquí, nunca se almacena.
func (r *ReportRepo) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND stock_quantity <= min_stock_level
		ORDER BY stock_quantity - min_stock_level ASC, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reports.LowStockProducts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("reports.LowStockProducts scan: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SalesTotals agregados de las ventas del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *ReportRepo) SalesTotals(ctx context.Context, start, end time.Time) (*repository.SalesTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                          AS sale_count,
	    COALESCE(SUM(total_amount), 0)    AS revenue,
	    COALESCE(SUM(subtotal), 0)        AS subtotal,
	    COALESCE(SUM(discount), 0)        AS discount_total,
	    COALESCE(SUM(tax_amount), 0)      AS tax_total,
	    COALESCE((SELECT SUM(i.quantity * i.cost_price)
	              FROM sale_items i JOIN sales s2 ON s2.id = i.sale_id
	              WHERE s2.created_at BETWEEN $1 AND $2), 0)  AS cost_total,
	    COALESCE((SELECT SUM(i.quantity)
	              FROM sale_items i JOIN sales s2 ON s2.id = i.sale_id
	              WHERE s2.created_at BETWEEN $1 AND $2), 0)  AS units_sold
	FROM sales
	WHERE created_at BETWEEN $1 AND $2`

	var t repository.SalesTotals
	err := r.pool.QueryRow(ctx, query, start, end).Scan(
		&t.SaleCount, &t.Revenue, &t.Subtotal, &t.DiscountTotal, &t.TaxTotal, &t.CostTotal, &t.UnitsSold,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesTotals: %w", err)
	}
	return &t, nil
}

// SalesByPaymentMethod desglose de ventas del período por método de pago.
func (r *ReportRepo) SalesByPaymentMethod(ctx context.Context, start, end time.Time) ([]repository.PaymentMethodTotals, error) {
	const query = `
	SELECT payment_method, COUNT(*) AS sale_count, COALESCE(SUM(total_amount), 0) AS revenue
	FROM sales
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY payment_method
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("reports.SalesByPaymentMethod: %w", err)
	}
	defer rows.Close()
	var results []repository.PaymentMethodTotals
	for rows.Next() {
		var row repository.PaymentMethodTotals
		if err := rows.Scan(&row.PaymentMethod, &row.SaleCount, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reports.SalesByPaymentMethod scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// InventoryTotals agregados del inventario al momento de la consulta.
func (r *ReportRepo) InventoryTotals(ctx context.Context) (*repository.InventoryTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                             AS total_products,
	    COUNT(*) FILTER (WHERE is_active)                                    AS active_products,
	    COALESCE(SUM(stock_quantity), 0)                                     AS total_stock_units,
	    COALESCE(SUM(stock_quantity * cost_price), 0)                        AS stock_value_at_cost,
	    COALESCE(SUM(stock_quantity * price), 0)                             AS stock_value_at_retail,
	    COUNT(*) FILTER (WHERE is_active AND stock_quantity <= min_stock_level) AS low_stock_count,
	    COUNT(*) FILTER (WHERE is_active AND stock_quantity <= 0)            AS out_of_stock_count
	FROM products`

	var t repository.InventoryTotals
	err := r.pool.QueryRow(ctx, query).Scan(
		&t.TotalProducts, &t.ActiveProducts, &t.TotalStockUnits,
		&t.StockValueAtCost, &t.StockValueAtRetail,
		&t.LowStockCount, &t.OutOfStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.InventoryTotals: %w", err)
	}
	return &t, nil
}

// CustomerTotals conteo de clientes y altas desde monthStart.
func (r *ReportRepo) CustomerTotals(ctx context.Context, monthStart time.Time) (*repository.CustomerTotals, error) {
	const query = `
	SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $1)
	FROM customers`

	var t repository.CustomerTotals
	err := r.pool.QueryRow(ctx, query, monthStart).Scan(&t.TotalCustomers, &t.NewThisMonth)
	if err != nil {
		return nil, fmt.Errorf("reports.CustomerTotals: %w", err)
	}
	return &t, nil
}

// TopCustomers los `limit` clientes con mayor compra acumulada.
func (r *ReportRepo) TopCustomers(ctx context.Context, limit int) ([]repository.TopCustomer, error) {
	const query = `
	SELECT id, name, phone, total_purchases, loyalty_points
	FROM customers
	ORDER BY total_purchases DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopCustomers: %w", err)
	}
	defer rows.Close()
	var results []repository.TopCustomer
	for rows.Next() {
		var row repository.TopCustomer
		if err := rows.Scan(&row.ID, &row.Name, &row.Phone, &row.TotalPurchases, &row.LoyaltyPoints); err != nil {
			return nil, fmt.Errorf("reports.TopCustomers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
