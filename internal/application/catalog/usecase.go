package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. StockQuantity no se modifica
// aquí: el saldo pertenece al libro de ajustes y al motor de ventas.
type ProductUseCase struct {
	repo     repository.ProductRepository
	saleRepo repository.SaleRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, saleRepo repository.SaleRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, saleRepo: saleRepo}
}

// CreateProductInput entrada para crear un producto.
type CreateProductInput struct {
	Code           string
	Name           string
	Category       string
	Brand          string
	Model          string
	Price          decimal.Decimal
	CostPrice      decimal.Decimal
	MRP            decimal.Decimal
	WholesalePrice decimal.Decimal
	StockQuantity  int // saldo inicial
	MinStockLevel  int
}

// Create crea un producto. El código es único.
func (uc *ProductUseCase) Create(in CreateProductInput) (*entity.Product, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) || in.CostPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.StockQuantity < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCode(in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Code:           in.Code,
		Name:           in.Name,
		Category:       in.Category,
		Brand:          in.Brand,
		Model:          in.Model,
		Price:          in.Price,
		CostPrice:      in.CostPrice,
		MRP:            in.MRP,
		WholesalePrice: in.WholesalePrice,
		StockQuantity:  in.StockQuantity,
		MinStockLevel:  in.MinStockLevel,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// UpdateProductInput patch de identidad/metadatos y precios. Sin StockQuantity.
type UpdateProductInput struct {
	Name           *string
	Category       *string
	Brand          *string
	Model          *string
	Price          *decimal.Decimal
	CostPrice      *decimal.Decimal
	MRP            *decimal.Decimal
	WholesalePrice *decimal.Decimal
	MinStockLevel  *int
}

// Update aplica los campos presentes del patch.
func (uc *ProductUseCase) Update(id string, in UpdateProductInput) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyPatch(product, in); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// applyPatch copia sobre el producto los campos presentes del patch.
// Compartido con el coordinador de operaciones masivas.
func applyPatch(product *entity.Product, in UpdateProductInput) error {
	if in.Name != nil {
		if *in.Name == "" {
			return domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Brand != nil {
		product.Brand = *in.Brand
	}
	if in.Model != nil {
		product.Model = *in.Model
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CostPrice != nil {
		if in.CostPrice.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.MRP != nil {
		product.MRP = *in.MRP
	}
	if in.WholesalePrice != nil {
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.MinStockLevel != nil {
		if *in.MinStockLevel < 0 {
			return domain.ErrInvalidInput
		}
		product.MinStockLevel = *in.MinStockLevel
	}
	return nil
}

// ApplyUpdate expone applyPatch para el coordinador de operaciones masivas.
func ApplyUpdate(product *entity.Product, in UpdateProductInput) error {
	return applyPatch(product, in)
}

// SetActive activa o desactiva un producto.
func (uc *ProductUseCase) SetActive(id string, active bool) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetActive(id, active)
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.repo.List(filter)
}

// Delete elimina un producto. Si existen líneas de venta que lo referencian
// retorna ErrConflict: el historial de ventas no se rompe, desactivar es la
// alternativa para sacarlo del catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
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
	return uc.repo.Delete(id)
}
