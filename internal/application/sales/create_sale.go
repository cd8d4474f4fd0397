package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
	"github.com/jhoicas/retail-pos-api/pkg/metrics"
)

// CreateSaleUseCase ejecuta una venta multi-ítem como una sola unidad atómica:
// inserta la venta y sus líneas, descuenta stock y acumula las compras del
// cliente dentro de una transacción con Commit/Rollback.
//
// El descuento de stock por venta es deliberadamente distinto al ajuste manual:
// no acota en cero y no genera registro de auditoría. Esa asimetría es
// comportamiento observado del sistema original y se conserva tal cual.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

// SaleItemInput una línea de la venta a crear.
type SaleItemInput struct {
	ProductID string
	Quantity  int              // > 0
	Price     *decimal.Decimal // opcional: nil = precio de lista del producto
}

// CreateSaleInput entrada para crear una venta.
type CreateSaleInput struct {
	InvoiceNumber string // opcional: vacío = se genera
	CustomerID    string // opcional
	UserID        string
	PaymentMethod string
	PaymentStatus string // opcional: por defecto paid
	Discount      decimal.Decimal
	TaxAmount     decimal.Decimal
	Items         []SaleItemInput
}

// SaleWithItems venta con sus líneas, para la capa de presentación.
type SaleWithItems struct {
	Sale  *entity.Sale
	Items []*entity.SaleItem
}

func validPaymentMethod(m string) bool {
	switch m {
	case entity.PaymentMethodCash, entity.PaymentMethodCard, entity.PaymentMethodUPI, entity.PaymentMethodCredit:
		return true
	}
	return false
}

// CreateSale valida los ítems, calcula totales y ejecuta la transacción:
//  1. INSERT de la venta (con invoiceNumber único, generado o del caller)
//  2. INSERT de cada línea ligada a la venta
//  3. descuento de stock por línea, sin acotar en cero y sin auditoría
//  4. si hay cliente, acumula TotalPurchases (y puntos) por el total
//
// Cualquier paso que falle revierte la transacción completa.
// Un invoiceNumber duplicado retorna domain.ErrDuplicate.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, input CreateSaleInput) (*SaleWithItems, error) {
	if len(input.Items) == 0 || input.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validPaymentMethod(input.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if input.Discount.LessThan(decimal.Zero) || input.TaxAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar productos y resolver precios fuera de la tx (solo lectura)
	productsByID := make(map[string]*entity.Product, len(input.Items))
	for i := range input.Items {
		item := &input.Items[i]
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.Price == nil {
			price := product.Price
			item.Price = &price
		} else if item.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar cliente si la venta viene con uno
	if input.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// subtotal = Σ(precio × cantidad); total = subtotal - descuento + impuesto
	subtotal := decimal.Zero
	for _, item := range input.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	totalAmount := subtotal.Sub(input.Discount).Add(input.TaxAmount)

	now := time.Now()
	invoiceNumber := input.InvoiceNumber
	if invoiceNumber == "" {
		invoiceNumber = generateInvoiceNumber(now)
	}
	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = entity.PaymentStatusPaid
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		InvoiceNumber: invoiceNumber,
		CustomerID:    input.CustomerID,
		UserID:        input.UserID,
		Subtotal:      subtotal,
		Discount:      input.Discount,
		TaxAmount:     input.TaxAmount,
		TotalAmount:   totalAmount,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: paymentStatus,
		CreatedAt:     now,
	}

	items := make([]*entity.SaleItem, 0, len(input.Items))
	for _, item := range input.Items {
		product := productsByID[item.ProductID]
		items = append(items, &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    sale.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     *item.Price,
			CostPrice: product.CostPrice,
		})
	}

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
		}
		// Descuento de stock por línea: fila bloqueada, sin clamp, sin auditoría
		for _, item := range items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.UpdateStock(product.ID, product.StockQuantity-item.Quantity); err != nil {
				return err
			}
		}
		if input.CustomerID != "" {
			points := int(totalAmount.Div(decimal.NewFromInt(100)).IntPart())
			if points < 0 {
				points = 0
			}
			if err := customerRepo.AddPurchase(input.CustomerID, totalAmount, points); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.SalesCreated.Inc()
	return &SaleWithItems{Sale: sale, Items: items}, nil
}

// generateInvoiceNumber genera un número de factura único: INV-AAAAMMDD-XXXXXXXX.
// La unicidad real la garantiza el constraint único de la tabla sales.
func generateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("INV-%s-%s", now.UTC().Format("20060102"), uuid.New().String()[:8])
}

// GetSale obtiene una venta por ID con sus líneas.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, id string) (*SaleWithItems, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItemsBySale(id)
	if err != nil {
		return nil, err
	}
	return &SaleWithItems{Sale: sale, Items: items}, nil
}

// ListSales lista ventas dentro de un período (más reciente primero).
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, start, end time.Time, limit, offset int) ([]*entity.Sale, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.ListByPeriod(start, end, limit, offset)
}
