package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/jhoicas/retail-pos-api/pkg/metrics"
)

// StockLedgerUseCase aplica ajustes manuales de stock de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), actualización del saldo y registro de
// auditoría inmutable, con Commit/Rollback como una sola unidad.
type StockLedgerUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	adjustmentRepo repository.StockAdjustmentRepository
}

// NewStockLedgerUseCase construye el caso de uso.
func NewStockLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	adjustmentRepo repository.StockAdjustmentRepository,
) *StockLedgerUseCase {
	return &StockLedgerUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
	}
}

// AdjustStockInput entrada para un ajuste manual de stock.
type AdjustStockInput struct {
	ProductID       string
	UserID          string
	Type            string // add, subtract, set
	Quantity        int    // entero no negativo
	Reason          string
	Notes           string     // opcional
	ReferenceNumber string     // opcional
	AdjustmentDate  *time.Time // opcional; por defecto la fecha actual
}

// ApplyAdjustment calcula el saldo resultante según el tipo de ajuste.
// subtract queda acotado en cero; set asigna la cantidad tal cual.
func ApplyAdjustment(before int, adjType string, quantity int) int {
	switch adjType {
	case entity.AdjustmentTypeAdd:
		return before + quantity
	case entity.AdjustmentTypeSubtract:
		after := before - quantity
		if after < 0 {
			return 0
		}
		return after
	case entity.AdjustmentTypeSet:
		return quantity
	}
	return before
}

func validAdjustmentType(t string) bool {
	switch t {
	case entity.AdjustmentTypeAdd, entity.AdjustmentTypeSubtract, entity.AdjustmentTypeSet:
		return true
	}
	return false
}

// AdjustStock aplica un ajuste manual y devuelve el producto actualizado.
// El UPDATE del stock y el INSERT del registro de auditoría son una sola
// unidad atómica: o se confirman ambos o ninguno. La fila del producto se
// bloquea (FOR UPDATE) antes de leer el saldo para evitar lost updates entre
// ajustes concurrentes sobre el mismo producto.
func (uc *StockLedgerUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*entity.Product, error) {
	if !validAdjustmentType(input.Type) || input.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.UserID == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validación de existencia fuera de la tx (solo lectura)
	existing, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	adjustmentDate := now
	if input.AdjustmentDate != nil {
		adjustmentDate = *input.AdjustmentDate
	}

	var updated *entity.Product
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error {
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		before := product.StockQuantity
		after := ApplyAdjustment(before, input.Type, input.Quantity)

		if err := productRepo.UpdateStock(product.ID, after); err != nil {
			return err
		}

		adj := &entity.StockAdjustment{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			UserID:          input.UserID,
			Type:            input.Type,
			QuantityBefore:  before,
			QuantityAfter:   after,
			QuantityChange:  after - before,
			Reason:          input.Reason,
			Notes:           input.Notes,
			ReferenceNumber: input.ReferenceNumber,
			AdjustmentDate:  adjustmentDate,
			CreatedAt:       now,
		}
		if err := adjustmentRepo.Create(adj); err != nil {
			return err
		}

		product.StockQuantity = after
		product.UpdatedAt = now
		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StockAdjustments.WithLabelValues(input.Type).Inc()
	return updated, nil
}

// BulkAdjustFailure una falla individual dentro de un lote de ajustes.
type BulkAdjustFailure struct {
	ProductID string
	Err       error
}

// BulkAdjustResult reporte explícito de resultado parcial de un lote.
// Cada ajuste individual es atómico; el lote como un todo no lo es: los
// ajustes ya confirmados antes de una falla quedan confirmados.
type BulkAdjustResult struct {
	Succeeded []*entity.Product
	Failed    []BulkAdjustFailure
}

// BulkAdjustStock aplica AdjustStock una vez por producto, en el orden de la
// selección. No detiene el lote en la primera falla: reporta éxitos y fallas.
func (uc *StockLedgerUseCase) BulkAdjustStock(ctx context.Context, productIDs []string, userID, adjType string, quantity int, reason, notes string) (*BulkAdjustResult, error) {
	if len(productIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !validAdjustmentType(adjType) || quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	result := &BulkAdjustResult{}
	for _, id := range productIDs {
		product, err := uc.AdjustStock(ctx, AdjustStockInput{
			ProductID: id,
			UserID:    userID,
			Type:      adjType,
			Quantity:  quantity,
			Reason:    reason,
			Notes:     notes,
		})
		if err != nil {
			result.Failed = append(result.Failed, BulkAdjustFailure{ProductID: id, Err: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, product)
	}

	outcome := "ok"
	if len(result.Failed) > 0 {
		outcome = "partial"
	}
	metrics.BulkOperations.WithLabelValues("adjust_stock", outcome).Inc()
	return result, nil
}

// ListAdjustments devuelve el historial de auditoría paginado (más reciente primero).
func (uc *StockLedgerUseCase) ListAdjustments(limit, offset int) ([]*entity.StockAdjustment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.adjustmentRepo.List(limit, offset)
}

// ListAdjustmentsByProduct devuelve el historial de un producto.
func (uc *StockLedgerUseCase) ListAdjustmentsByProduct(productID string, limit, offset int) ([]*entity.StockAdjustment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.adjustmentRepo.ListByProduct(productID, limit, offset)
}
