package repository

import "github.com/jhoicas/retail-pos-api/internal/domain/entity"

// StockAdjustmentRepository define el puerto de persistencia del registro de
// auditoría de ajustes. Solo inserción y lectura: los ajustes son inmutables.
type StockAdjustmentRepository interface {
	Create(adjustment *entity.StockAdjustment) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error)
	List(limit, offset int) ([]*entity.StockAdjustment, error)
}
