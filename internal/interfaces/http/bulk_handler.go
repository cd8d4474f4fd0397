package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos-api/internal/application/bulk"
	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
)

// BulkHandler maneja las operaciones masivas sobre el catálogo y el stock
// (protegido). Todas devuelven un reporte de resultado parcial: nunca un lote
// se revierte por la falla de un elemento.
type BulkHandler struct {
	uc *bulk.BulkCoordinatorUseCase
}

// NewBulkHandler construye el handler.
func NewBulkHandler(uc *bulk.BulkCoordinatorUseCase) *BulkHandler {
	return &BulkHandler{uc: uc}
}

func toBulkResult(r *bulk.Result) dto.BulkResultResponse {
	out := dto.BulkResultResponse{Succeeded: r.Succeeded, Failed: []dto.BulkFailureResponse{}}
	if out.Succeeded == nil {
		out.Succeeded = []string{}
	}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, dto.BulkFailureResponse{ProductID: f.ProductID, Error: f.Err.Error()})
	}
	return out
}

func toBulkAdjustResult(r *ledger.BulkAdjustResult) dto.BulkResultResponse {
	out := dto.BulkResultResponse{Succeeded: []string{}, Failed: []dto.BulkFailureResponse{}}
	for _, p := range r.Succeeded {
		out.Succeeded = append(out.Succeeded, p.ID)
	}
	for _, f := range r.Failed {
		out.Failed = append(out.Failed, dto.BulkFailureResponse{ProductID: f.ProductID, Error: f.Err.Error()})
	}
	return out
}

// UpdateProducts godoc
// @Summary      Actualizar productos en lote
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateProductsRequest  true  "Selección y campos"
// @Success      200   {object}  dto.BulkResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bulk/products [post]
func (h *BulkHandler) UpdateProducts(c *fiber.Ctx) error {
	var in dto.BulkUpdateProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BulkUpdateProducts(c.Context(), in.ProductIDs, catalog.UpdateProductInput{
		Name:           in.Fields.Name,
		Category:       in.Fields.Category,
		Brand:          in.Fields.Brand,
		Model:          in.Fields.Model,
		Price:          in.Fields.Price,
		CostPrice:      in.Fields.CostPrice,
		MRP:            in.Fields.MRP,
		WholesalePrice: in.Fields.WholesalePrice,
		MinStockLevel:  in.Fields.MinStockLevel,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toBulkResult(out))
}

// UpdatePrices godoc
// @Summary      Actualizar precios en lote
// @Description  Aplica una operación (increase, decrease, increasePercent, decreasePercent, set) sobre un campo de precio. decrease y decreasePercent quedan acotados en cero.
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdatePricesRequest  true  "Selección, campo, operación y valor"
// @Success      200   {object}  dto.BulkResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bulk/prices [post]
func (h *BulkHandler) UpdatePrices(c *fiber.Ctx) error {
	var in dto.BulkUpdatePricesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BulkUpdatePrices(c.Context(), in.ProductIDs, in.Field, in.Operation, in.Value)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toBulkResult(out))
}

// DeleteProducts godoc
// @Summary      Eliminar productos en lote
// @Description  Cada producto referenciado por líneas de venta falla individualmente con conflicto; el resto se elimina.
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkDeleteProductsRequest  true  "Selección"
// @Success      200   {object}  dto.BulkResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bulk/products/delete [post]
func (h *BulkHandler) DeleteProducts(c *fiber.Ctx) error {
	var in dto.BulkDeleteProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BulkDeleteProducts(c.Context(), in.ProductIDs)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toBulkResult(out))
}

// PreviewStockAdjust godoc
// @Summary      Previsualizar ajuste de stock en lote
// @Description  Fase de cálculo: devuelve saldo actual, saldo resultante y delta por producto sin mutar nada.
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PreviewBulkStockRequest  true  "Selección y ajuste"
// @Success      200   {array}  dto.StockPreviewRowResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bulk/stock/preview [post]
func (h *BulkHandler) PreviewStockAdjust(c *fiber.Ctx) error {
	var in dto.PreviewBulkStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rows, err := h.uc.PreviewBulkStockAdjust(c.Context(), in.ProductIDs, in.Type, in.Quantity)
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.StockPreviewRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.StockPreviewRowResponse{
			ProductID:    r.ProductID,
			Code:         r.Code,
			Name:         r.Name,
			CurrentStock: r.CurrentStock,
			NewStock:     r.NewStock,
			Change:       r.Change,
		})
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock en lote
// @Description  Fase de confirmación: aplica el mismo ajuste a cada producto de la selección, cada uno en su propia transacción auditada.
// @Tags         bulk
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAdjustStockRequest  true  "Selección y ajuste"
// @Success      200   {object}  dto.BulkResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bulk/stock/adjust [post]
func (h *BulkHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.BulkAdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.BulkAdjustStock(c.Context(), in.ProductIDs, GetUserID(c), in.Type, in.Quantity, in.Reason, in.Notes)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toBulkAdjustResult(out))
}
