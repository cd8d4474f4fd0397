package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-pos-api/internal/application/auth"
	"github.com/jhoicas/retail-pos-api/internal/application/bulk"
	"github.com/jhoicas/retail-pos-api/internal/application/catalog"
	"github.com/jhoicas/retail-pos-api/internal/application/ledger"
	"github.com/jhoicas/retail-pos-api/internal/application/reports"
	"github.com/jhoicas/retail-pos-api/internal/application/sales"
	"github.com/jhoicas/retail-pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *catalog.ProductUseCase
	LedgerUC   *ledger.StockLedgerUseCase
	SaleUC     *sales.CreateSaleUseCase
	CustomerUC *sales.CustomerUseCase
	BulkUC     *bulk.BulkCoordinatorUseCase
	ReportUC   *reports.ReportUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público; el registro de usuarios lo hace un admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products (protegido; eliminar requiere admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/active", productHandler.SetActive)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock: ajustes manuales y su historial (protegido)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.LedgerUC)
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Get("/adjustments", stockHandler.History)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)

	// Customers (protegido; eliminar requiere admin)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Bulk (protegido; el borrado masivo requiere admin)
	bulkGroup := protected.Group("/bulk")
	bulkHandler := NewBulkHandler(deps.BulkUC)
	bulkGroup.Post("/products", bulkHandler.UpdateProducts)
	bulkGroup.Post("/prices", bulkHandler.UpdatePrices)
	bulkGroup.Post("/products/delete", adminOnly, bulkHandler.DeleteProducts)
	bulkGroup.Post("/stock/preview", bulkHandler.PreviewStockAdjust)
	bulkGroup.Post("/stock/adjust", bulkHandler.AdjustStock)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/inventory", reportHandler.Inventory)
	reportsGroup.Get("/customers", reportHandler.Customers)
}
