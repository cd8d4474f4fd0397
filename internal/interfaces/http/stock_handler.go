package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
)

// StockHandler maneja los ajustes manuales de stock y su historial (protegido).
type StockHandler struct {
	uc *ledger.StockLedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *ledger.StockLedgerUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto
// @Description  Aplica add, subtract (acotado en cero) o set y deja registro de auditoría.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Ajuste"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AdjustStock(c.Context(), ledger.AdjustStockInput{
		ProductID:       in.ProductID,
		UserID:          GetUserID(c),
		Type:            in.Type,
		Quantity:        in.Quantity,
		Reason:          in.Reason,
		Notes:           in.Notes,
		ReferenceNumber: in.ReferenceNumber,
		AdjustmentDate:  in.AdjustmentDate,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toProductResponse(out))
}

// History godoc
// @Summary      Historial de ajustes
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtra por producto"
// @Param        limit       query  int     false  "Límite"   default(50)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.StockAdjustmentResponse
// @Router       /api/stock/adjustments [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	productID := c.Query("product_id")

	var err error
	var list []dto.StockAdjustmentResponse
	if productID != "" {
		rows, e := h.uc.ListAdjustmentsByProduct(productID, limit, offset)
		err = e
		for _, a := range rows {
			list = append(list, toAdjustmentResponse(a))
		}
	} else {
		rows, e := h.uc.ListAdjustments(limit, offset)
		err = e
		for _, a := range rows {
			list = append(list, toAdjustmentResponse(a))
		}
	}
	if err != nil {
		return errorJSON(c, err)
	}
	if list == nil {
		list = []dto.StockAdjustmentResponse{}
	}
	return c.JSON(list)
}
