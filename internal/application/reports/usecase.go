// Package reports contiene el agregador de reportes: derivaciones de solo
// lectura sobre el libro de stock, las ventas y los clientes. Todo se
// recalcula en cada llamada contra el último estado comprometido; no hay
// caché ni vistas materializadas.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-pos-api/internal/application/dto"
	"github.com/jhoicas/retail-pos-api/internal/domain"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
	"github.com/jhoicas/retail-pos-api/internal/domain/repository"
)

const reportTopCustomers = 10 // clientes en el reporte de clientes

// ReportUseCase genera el dashboard y los reportes de período.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// LowStockProducts devuelve los productos activos con stock en o bajo su
// mínimo. El estado "stock bajo" nunca se guarda: es este predicado.
func (uc *ReportUseCase) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	return uc.reportRepo.LowStockProducts(ctx)
}

// DashboardStats construye el resumen del dashboard.
//
// Rango "hoy" sobre el día calendario UTC; "mes" desde el día 1 UTC.
// Las cuatro consultas DB corren en paralelo.
func (uc *ReportUseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := time.Now().UTC()

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	type salesResult struct {
		totals *repository.SalesTotals
		err    error
	}
	type inventoryResult struct {
		totals *repository.InventoryTotals
		err    error
	}
	type customerResult struct {
		totals *repository.CustomerTotals
		err    error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	invCh := make(chan inventoryResult, 1)
	custCh := make(chan customerResult, 1)

	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, todayStart, todayEnd)
		todayCh <- salesResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.SalesTotals(ctx, monthStart, todayEnd)
		monthCh <- salesResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.InventoryTotals(ctx)
		invCh <- inventoryResult{t, err}
	}()
	go func() {
		t, err := uc.reportRepo.CustomerTotals(ctx, monthStart)
		custCh <- customerResult{t, err}
	}()

	today := <-todayCh
	month := <-monthCh
	inv := <-invCh
	cust := <-custCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if inv.err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", inv.err)
	}
	if cust.err != nil {
		return nil, fmt.Errorf("dashboard: clientes: %w", cust.err)
	}

	return &dto.DashboardStatsDTO{
		TodaySaleCount:        today.totals.SaleCount,
		TodayTotal:            today.totals.Revenue.Round(2),
		MonthRevenue:          month.totals.Revenue.Round(2),
		ActiveProducts:        inv.totals.ActiveProducts,
		LowStockCount:         inv.totals.LowStockCount,
		TotalCustomers:        cust.totals.TotalCustomers,
		NewCustomersThisMonth: cust.totals.NewThisMonth,
	}, nil
}

// SalesReport agrega las ventas del período [start, end].
func (uc *ReportUseCase) SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportDTO, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}

	totals, err := uc.reportRepo.SalesTotals(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: %w", err)
	}
	byMethod, err := uc.reportRepo.SalesByPaymentMethod(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas por método de pago: %w", err)
	}

	methods := make([]dto.PaymentMethodTotalsDTO, 0, len(byMethod))
	for _, m := range byMethod {
		methods = append(methods, dto.PaymentMethodTotalsDTO{
			PaymentMethod: m.PaymentMethod,
			SaleCount:     m.SaleCount,
			Revenue:       m.Revenue.Round(2),
		})
	}

	return &dto.SalesReportDTO{
		Start:           start.Format("2006-01-02"),
		End:             end.Format("2006-01-02"),
		SaleCount:       totals.SaleCount,
		Revenue:         totals.Revenue.Round(2),
		Subtotal:        totals.Subtotal.Round(2),
		DiscountTotal:   totals.DiscountTotal.Round(2),
		TaxTotal:        totals.TaxTotal.Round(2),
		CostTotal:       totals.CostTotal.Round(2),
		GrossMargin:     totals.Revenue.Sub(totals.CostTotal).Round(2),
		UnitsSold:       totals.UnitsSold,
		ByPaymentMethod: methods,
	}, nil
}

// InventoryReport agregados del inventario completo.
func (uc *ReportUseCase) InventoryReport(ctx context.Context) (*dto.InventoryReportDTO, error) {
	totals, err := uc.reportRepo.InventoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: %w", err)
	}
	return &dto.InventoryReportDTO{
		TotalProducts:      totals.TotalProducts,
		ActiveProducts:     totals.ActiveProducts,
		TotalStockUnits:    totals.TotalStockUnits,
		StockValueAtCost:   totals.StockValueAtCost.Round(2),
		StockValueAtRetail: totals.StockValueAtRetail.Round(2),
		LowStockCount:      totals.LowStockCount,
		OutOfStockCount:    totals.OutOfStockCount,
	}, nil
}

// CustomerReport agregados de clientes y top por compras acumuladas.
func (uc *ReportUseCase) CustomerReport(ctx context.Context) (*dto.CustomerReportDTO, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totals, err := uc.reportRepo.CustomerTotals(ctx, monthStart)
	if err != nil {
		return nil, fmt.Errorf("reporte de clientes: %w", err)
	}
	top, err := uc.reportRepo.TopCustomers(ctx, reportTopCustomers)
	if err != nil {
		return nil, fmt.Errorf("reporte de clientes: top: %w", err)
	}

	topDTOs := make([]dto.TopCustomerDTO, 0, len(top))
	for _, c := range top {
		topDTOs = append(topDTOs, dto.TopCustomerDTO{
			ID:             c.ID,
			Name:           c.Name,
			Phone:          c.Phone,
			TotalPurchases: c.TotalPurchases.Round(2),
			LoyaltyPoints:  c.LoyaltyPoints,
		})
	}

	return &dto.CustomerReportDTO{
		TotalCustomers: totals.TotalCustomers,
		NewThisMonth:   totals.NewThisMonth,
		TopCustomers:   topDTOs,
	}, nil
}
