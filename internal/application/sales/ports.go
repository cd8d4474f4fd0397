package sales

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del motor de ventas. Cualquier error de fn revierte todo:
// sin venta parcial, sin movimiento de stock parcial, sin acumulado parcial.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
