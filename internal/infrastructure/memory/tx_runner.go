package memory

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

var (
	_ ledger.TxRunner    = (*TxRunner)(nil)
	_ sales.SaleTxRunner = (*TxRunner)(nil)
)

// TxRunner emula el runner transaccional de PostgreSQL: toma un snapshot del
// Store antes de ejecutar el callback y lo restaura completo si falla.
type TxRunner struct {
	store *Store

	// Repos inyectables para forzar fallas dentro de la "transacción".
	AdjustmentRepo repository.StockAdjustmentRepository
	SaleRepo       repository.SaleRepository
	CustomerRepo   repository.CustomerRepository
}

// NewTxRunner construye el runner sobre el Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

func (r *TxRunner) adjustmentRepo() repository.StockAdjustmentRepository {
	if r.AdjustmentRepo != nil {
		return r.AdjustmentRepo
	}
	return NewStockAdjustmentRepository(r.store)
}

func (r *TxRunner) saleRepo() repository.SaleRepository {
	if r.SaleRepo != nil {
		return r.SaleRepo
	}
	return NewSaleRepository(r.store)
}

func (r *TxRunner) customerRepo() repository.CustomerRepository {
	if r.CustomerRepo != nil {
		return r.CustomerRepo
	}
	return NewCustomerRepository(r.store)
}

// Run ejecuta el callback del libro de ajustes con semántica todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) error) error {
	r.store.mu.Lock()
	snap := r.store.snapshot()
	r.store.mu.Unlock()

	if err := fn(NewProductRepository(r.store), r.adjustmentRepo()); err != nil {
		r.store.mu.Lock()
		r.store.restore(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}

// RunSale ejecuta el callback del motor de ventas con semántica todo-o-nada.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	r.store.mu.Lock()
	snap := r.store.snapshot()
	r.store.mu.Unlock()

	if err := fn(NewProductRepository(r.store), r.saleRepo(), r.customerRepo()); err != nil {
		r.store.mu.Lock()
		r.store.restore(snap)
		r.store.mu.Unlock()
		return err
	}
	return nil
}
