package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/application/reports"
)

// ReportHandler maneja el dashboard y los reportes (protegido). Todo se
// recalcula en cada petición sobre el último estado comprometido.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Resumen del dashboard
// @Description  Ventas de hoy (día calendario UTC), ingresos del mes, productos activos, stock bajo y clientes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Description  Productos activos cuyo saldo está en o bajo su mínimo. El estado se deriva al momento de la consulta.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.uc.LowStockProducts(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Reporte de ventas por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "Inicio del período (RFC3339); por defecto hace 30 días"
// @Param        end    query  string  false  "Fin del período (RFC3339); por defecto ahora"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end deben ser RFC3339"})
	}
	out, err := h.uc.SalesReport(c.Context(), start, end)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Reporte de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportDTO
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.InventoryReport(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Reporte de clientes
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CustomerReportDTO
// @Router       /api/reports/customers [get]
func (h *ReportHandler) Customers(c *fiber.Ctx) error {
	out, err := h.uc.CustomerReport(c.Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
