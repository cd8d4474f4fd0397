package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var _ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)

const adjustmentColumns = `id, product_id, user_id, type, quantity_before, quantity_after, quantity_change, reason, notes, reference_number, adjustment_date, created_at`

// StockAdjustmentRepo implementación del registro de auditoría sobre PostgreSQL
// (usable con pool o tx). La tabla es insert-only: no hay UPDATE ni DELETE.
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

// Create inserta un registro de auditoría.
func (r *StockAdjustmentRepo) Create(adj *entity.StockAdjustment) error {
	query := `
		INSERT INTO stock_adjustments (id, product_id, user_id, type, quantity_before, quantity_after, quantity_change, reason, notes, reference_number, adjustment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		adj.ID, adj.ProductID, adj.UserID, adj.Type,
		adj.QuantityBefore, adj.QuantityAfter, adj.QuantityChange,
		adj.Reason, nullIfEmpty(adj.Notes), nullIfEmpty(adj.ReferenceNumber),
		adj.AdjustmentDate, adj.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

func scanAdjustment(row pgx.Row) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	var notes, ref *string
	err := row.Scan(
		&a.ID, &a.ProductID, &a.UserID, &a.Type,
		&a.QuantityBefore, &a.QuantityAfter, &a.QuantityChange,
		&a.Reason, &notes, &ref, &a.AdjustmentDate, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		a.Notes = *notes
	}
	if ref != nil {
		a.ReferenceNumber = *ref
	}
	return &a, nil
}

func (r *StockAdjustmentRepo) queryList(query string, args ...any) ([]*entity.StockAdjustment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		a, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ListByProduct historial de un producto, más reciente primero.
func (r *StockAdjustmentRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.queryList(query, productID, limit, offset)
}

// List historial completo paginado, más reciente primero.
func (r *StockAdjustmentRepo) List(limit, offset int) ([]*entity.StockAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM stock_adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.queryList(query, limit, offset)
}
