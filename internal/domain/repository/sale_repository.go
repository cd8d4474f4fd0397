package repository

import (
	"time"

	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Las ventas son insert-only: no hay Update ni Delete.
// Contrato de fila ausente: GetByID retorna (nil, domain.ErrNotFound),
// nunca (nil, nil).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	GetItemsBySale(saleID string) ([]*entity.SaleItem, error)
	ListByPeriod(start, end time.Time, limit, offset int) ([]*entity.Sale, error)
	CountItemsByProduct(productID string) (int, error)
	CountByCustomer(customerID string) (int, error)
}
