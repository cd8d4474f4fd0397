package bulk

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/jhoicas/retail-pos-api/pkg/metrics"
)

// Campos de precio admitidos por BulkUpdatePrices.
const (
	PriceFieldPrice          = "price"
	PriceFieldCostPrice      = "costPrice"
	PriceFieldMRP            = "mrp"
	PriceFieldWholesalePrice = "wholesalePrice"
)

// Operaciones de precio admitidas por BulkUpdatePrices.
const (
	PriceOpIncrease        = "increase"
	PriceOpDecrease        = "decrease"        // acotada en 0
	PriceOpIncreasePercent = "increasePercent"
	PriceOpDecreasePercent = "decreasePercent" // acotada en 0
	PriceOpSet             = "set"
)

// BulkCoordinatorUseCase aplica mutaciones de catálogo y de libro de stock
// sobre una selección arbitraria de productos. Cada producto se aplica de
// forma atómica; el lote como un todo no: el resultado se reporta como
// éxitos y fallas explícitos en lugar de revertir lo ya confirmado.
type BulkCoordinatorUseCase struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	ledgerUC    *ledger.StockLedgerUseCase
}

// NewBulkCoordinatorUseCase construye el coordinador.
func NewBulkCoordinatorUseCase(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	ledgerUC *ledger.StockLedgerUseCase,
) *BulkCoordinatorUseCase {
	return &BulkCoordinatorUseCase{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		ledgerUC:    ledgerUC,
	}
}

// Failure una falla individual dentro de un lote.
type Failure struct {
	ProductID string
	Err       error
}

// Result reporte explícito de resultado parcial de un lote.
type Result struct {
	Succeeded []string
	Failed    []Failure
}

func (r *Result) outcome() string {
	if len(r.Failed) > 0 {
		return "partial"
	}
	return "ok"
}

// BulkUpdateProducts aplica un patch de campos (solo los presentes) a cada
// producto de la selección, en orden, uno por uno.
func (uc *BulkCoordinatorUseCase) BulkUpdateProducts(ctx context.Context, ids []string, patch catalog.UpdateProductInput) (*Result, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &Result{}
	now := time.Now()
	for _, id := range ids {
		if err := uc.updateOne(id, patch, now); err != nil {
			result.Failed = append(result.Failed, Failure{ProductID: id, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	metrics.BulkOperations.WithLabelValues("update_products", result.outcome()).Inc()
	return result, nil
}

func (uc *BulkCoordinatorUseCase) updateOne(id string, patch catalog.UpdateProductInput, now time.Time) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := catalog.ApplyUpdate(product, patch); err != nil {
		return err
	}
	product.UpdatedAt = now
	return uc.productRepo.Update(product)
}

// ApplyPriceOperation calcula el nuevo valor de un campo de precio.
// decrease y decreasePercent quedan acotadas en cero.
func ApplyPriceOperation(old decimal.Decimal, operation string, value decimal.Decimal) (decimal.Decimal, error) {
	hundred := decimal.NewFromInt(100)
	switch operation {
	case PriceOpIncrease:
		return old.Add(value), nil
	case PriceOpDecrease:
		next := old.Sub(value)
		if next.LessThan(decimal.Zero) {
			return decimal.Zero, nil
		}
		return next, nil
	case PriceOpIncreasePercent:
		return old.Mul(decimal.NewFromInt(1).Add(value.Div(hundred))), nil
	case PriceOpDecreasePercent:
		next := old.Mul(decimal.NewFromInt(1).Sub(value.Div(hundred)))
		if next.LessThan(decimal.Zero) {
			return decimal.Zero, nil
		}
		return next, nil
	case PriceOpSet:
		return value, nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

func priceField(p *entity.Product, field string) (*decimal.Decimal, error) {
	switch field {
	case PriceFieldPrice:
		return &p.Price, nil
	case PriceFieldCostPrice:
		return &p.CostPrice, nil
	case PriceFieldMRP:
		return &p.MRP, nil
	case PriceFieldWholesalePrice:
		return &p.WholesalePrice, nil
	}
	return nil, domain.ErrInvalidInput
}

// BulkUpdatePrices aplica una operación de precio a un campo de cada producto
// de la selección. `set` es idempotente: aplicarla dos veces deja el mismo valor.
func (uc *BulkCoordinatorUseCase) BulkUpdatePrices(ctx context.Context, ids []string, field, operation string, value decimal.Decimal) (*Result, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if value.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	// Validar campo y operación antes de tocar el primer producto
	if _, err := priceField(&entity.Product{}, field); err != nil {
		return nil, err
	}
	if _, err := ApplyPriceOperation(decimal.Zero, operation, value); err != nil {
		return nil, err
	}

	result := &Result{}
	now := time.Now()
	for _, id := range ids {
		if err := uc.updatePriceOne(id, field, operation, value, now); err != nil {
			result.Failed = append(result.Failed, Failure{ProductID: id, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	metrics.BulkOperations.WithLabelValues("update_prices", result.outcome()).Inc()
	return result, nil
}

func (uc *BulkCoordinatorUseCase) updatePriceOne(id, field, operation string, value decimal.Decimal, now time.Time) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	target, err := priceField(product, field)
	if err != nil {
		return err
	}
	next, err := ApplyPriceOperation(*target, operation, value)
	if err != nil {
		return err
	}
	*target = next
	product.UpdatedAt = now
	return uc.productRepo.Update(product)
}

// BulkDeleteProducts elimina los productos de la selección. Un producto
// referenciado por líneas de venta falla con ErrConflict y no se borra:
// el historial de ventas se protege, la alternativa es desactivarlo.
func (uc *BulkCoordinatorUseCase) BulkDeleteProducts(ctx context.Context, ids []string) (*Result, error) {
	if len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	result := &Result{}
	for _, id := range ids {
		if err := uc.deleteOne(id); err != nil {
			result.Failed = append(result.Failed, Failure{ProductID: id, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	metrics.BulkOperations.WithLabelValues("delete_products", result.outcome()).Inc()
	return result, nil
}

func (uc *BulkCoordinatorUseCase) deleteOne(id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	refs, err := uc.saleRepo.CountItemsByProduct(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrConflict
	}
	return uc.productRepo.Delete(id)
}

// StockPreviewRow efecto calculado de un ajuste sobre un producto, sin mutar nada.
type StockPreviewRow struct {
	ProductID    string
	Code         string
	Name         string
	CurrentStock int
	NewStock     int
	Change       int
}

// PreviewBulkStockAdjust computa el efecto que tendría un ajuste masivo de
// stock sobre la selección, con la misma aritmética del libro (incluido el
// acotado en cero de subtract). No escribe nada: es la fase "calcular" del
// contrato calcular-y-confirmar; la confirmación es BulkAdjustStock.
func (uc *BulkCoordinatorUseCase) PreviewBulkStockAdjust(ctx context.Context, ids []string, adjType string, quantity int) ([]StockPreviewRow, error) {
	if len(ids) == 0 || quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	switch adjType {
	case entity.AdjustmentTypeAdd, entity.AdjustmentTypeSubtract, entity.AdjustmentTypeSet:
	default:
		return nil, domain.ErrInvalidInput
	}

	products, err := uc.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rows := make([]StockPreviewRow, 0, len(ids))
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		newStock := ledger.ApplyAdjustment(product.StockQuantity, adjType, quantity)
		rows = append(rows, StockPreviewRow{
			ProductID:    product.ID,
			Code:         product.Code,
			Name:         product.Name,
			CurrentStock: product.StockQuantity,
			NewStock:     newStock,
			Change:       newStock - product.StockQuantity,
		})
	}
	return rows, nil
}

// BulkAdjustStock confirma un ajuste masivo previamente previsualizado.
// Delega en el libro de stock: un ajuste atómico y auditado por producto.
func (uc *BulkCoordinatorUseCase) BulkAdjustStock(ctx context.Context, ids []string, userID, adjType string, quantity int, reason, notes string) (*ledger.BulkAdjustResult, error) {
	return uc.ledgerUC.BulkAdjustStock(ctx, ids, userID, adjType, quantity, reason, notes)
}
