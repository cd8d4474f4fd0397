package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
)

// SaleHandler maneja la creación y consulta de ventas (protegido).
type SaleHandler struct {
	uc *sales.CreateSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CreateSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func toSaleResponse(s *sales.SaleWithItems) dto.SaleResponse {
	out := dto.SaleResponse{
		ID:            s.Sale.ID,
		InvoiceNumber: s.Sale.InvoiceNumber,
		CustomerID:    s.Sale.CustomerID,
		UserID:        s.Sale.UserID,
		Subtotal:      s.Sale.Subtotal,
		Discount:      s.Sale.Discount,
		TaxAmount:     s.Sale.TaxAmount,
		TotalAmount:   s.Sale.TotalAmount,
		PaymentMethod: s.Sale.PaymentMethod,
		PaymentStatus: s.Sale.PaymentStatus,
		CreatedAt:     s.Sale.CreatedAt,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			CostPrice: it.CostPrice,
		})
	}
	return out
}

// Create godoc
// @Summary      Crear venta
// @Description  Crea la venta, sus líneas, los descuentos de stock y el acumulado del cliente en una sola transacción.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]sales.SaleItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, sales.SaleItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	out, err := h.uc.CreateSale(c.Context(), sales.CreateSaleInput{
		InvoiceNumber: in.InvoiceNumber,
		CustomerID:    in.CustomerID,
		UserID:        GetUserID(c),
		PaymentMethod: in.PaymentMethod,
		PaymentStatus: in.PaymentStatus,
		Discount:      in.Discount,
		TaxAmount:     in.TaxAmount,
		Items:         items,
	})
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(out))
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetSale(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(toSaleResponse(out))
}

// List godoc
// @Summary      Listar ventas por período
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        start   query  string  false  "Inicio del período (RFC3339); por defecto hace 30 días"
// @Param        end     query  string  false  "Fin del período (RFC3339); por defecto ahora"
// @Param        limit   query  int     false  "Límite"   default(50)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end deben ser RFC3339"})
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	rows, err := h.uc.ListSales(c.Context(), start, end, limit, offset)
	if err != nil {
		return errorJSON(c, err)
	}
	list := make([]dto.SaleResponse, 0, len(rows))
	for _, s := range rows {
		list = append(list, toSaleResponse(&sales.SaleWithItems{Sale: s}))
	}
	return c.JSON(list)
}

// parsePeriod lee start/end de la query. Sin parámetros: últimos 30 días UTC.
func parsePeriod(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -30)
	end := now
	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	return start, end, nil
}
