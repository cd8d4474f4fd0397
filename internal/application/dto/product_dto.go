package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=100"`
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Category       string          `json:"category"`
	Brand          string          `json:"brand"`
	Model          string          `json:"model"`
	Price          decimal.Decimal `json:"price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	MRP            decimal.Decimal `json:"mrp"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	StockQuantity  int             `json:"stock_quantity"`
	MinStockLevel  int             `json:"min_stock_level"`
}

// UpdateProductRequest patch de un producto (sin StockQuantity: el saldo se
// modifica solo vía ajustes o ventas).
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category       *string          `json:"category"`
	Brand          *string          `json:"brand"`
	Model          *string          `json:"model"`
	Price          *decimal.Decimal `json:"price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	MRP            *decimal.Decimal `json:"mrp"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	MinStockLevel  *int             `json:"min_stock_level"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Category       string          `json:"category,omitempty"`
	Brand          string          `json:"brand,omitempty"`
	Model          string          `json:"model,omitempty"`
	Price          decimal.Decimal `json:"price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	MRP            decimal.Decimal `json:"mrp"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	StockQuantity  int             `json:"stock_quantity"`
	MinStockLevel  int             `json:"min_stock_level"`
	IsLowStock     bool            `json:"is_low_stock"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// BulkUpdateProductsRequest patch masivo sobre una selección de productos.
type BulkUpdateProductsRequest struct {
	ProductIDs []string             `json:"product_ids" validate:"required,min=1"`
	Fields     UpdateProductRequest `json:"fields"`
}

// BulkUpdatePricesRequest operación de precio masiva.
type BulkUpdatePricesRequest struct {
	ProductIDs []string        `json:"product_ids" validate:"required,min=1"`
	Field      string          `json:"field"`     // price | costPrice | mrp | wholesalePrice
	Operation  string          `json:"operation"` // increase | decrease | increasePercent | decreasePercent | set
	Value      decimal.Decimal `json:"value"`
}

// BulkDeleteProductsRequest selección de productos a eliminar.
type BulkDeleteProductsRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}
