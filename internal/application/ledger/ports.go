package ledger

import (
	"context"

	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la actualización del stock y la
// inserción del registro de auditoría se confirmen o se reviertan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		adjustmentRepo repository.StockAdjustmentRepository,
	) error) error
}
