package repository

import "github.com/jhoicas/retail-pos-api/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search     string // busca en code, name, brand, model
	Category   string
	OnlyActive bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate solo tiene sentido dentro de una transacción (SELECT FOR UPDATE).
// Contrato de fila ausente: los Get* retornan (nil, domain.ErrNotFound),
// nunca (nil, nil); todo adaptador debe cumplirlo.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, quantity int) error
	SetActive(productID string, active bool) error
	List(filter ProductFilter) ([]*entity.Product, error)
	ListByIDs(ids []string) ([]*entity.Product, error)
	Delete(id string) error
}
