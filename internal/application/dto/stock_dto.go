package dto

import "time"

// AdjustStockRequest entrada para un ajuste manual de stock.
type AdjustStockRequest struct {
	ProductID       string     `json:"product_id" validate:"required"`
	Type            string     `json:"type" validate:"required"` // add | subtract | set
	Quantity        int        `json:"quantity"`                 // entero no negativo
	Reason          string     `json:"reason" validate:"required"`
	Notes           string     `json:"notes"`
	ReferenceNumber string     `json:"reference_number"`
	AdjustmentDate  *time.Time `json:"adjustment_date"`
}

// BulkAdjustStockRequest ajuste masivo sobre una selección de productos.
type BulkAdjustStockRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
	Type       string   `json:"type" validate:"required"`
	Quantity   int      `json:"quantity"`
	Reason     string   `json:"reason" validate:"required"`
	Notes      string   `json:"notes"`
}

// PreviewBulkStockRequest fase de cálculo del contrato calcular-y-confirmar.
type PreviewBulkStockRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
	Type       string   `json:"type" validate:"required"`
	Quantity   int      `json:"quantity"`
}

// StockPreviewRowResponse efecto calculado sobre un producto, sin mutación.
type StockPreviewRowResponse struct {
	ProductID    string `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	NewStock     int    `json:"new_stock"`
	Change       int    `json:"change"`
}

// StockAdjustmentResponse un registro del historial de auditoría.
type StockAdjustmentResponse struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	UserID          string    `json:"user_id"`
	Type            string    `json:"type"`
	QuantityBefore  int       `json:"quantity_before"`
	QuantityAfter   int       `json:"quantity_after"`
	QuantityChange  int       `json:"quantity_change"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes,omitempty"`
	ReferenceNumber string    `json:"reference_number,omitempty"`
	AdjustmentDate  time.Time `json:"adjustment_date"`
}
