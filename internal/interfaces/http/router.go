package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/auth"
	"github.com/jhoicas/farmacia-pos/internal/application/inventory"
	"github.com/jhoicas/farmacia-pos/internal/application/sales"
	"github.com/jhoicas/farmacia-pos/internal/application/usecase"
	"github.com/jhoicas/farmacia-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	CategoryUC    *usecase.CategoryUseCase
	SupplierUC    *usecase.SupplierUseCase
	UserUC        *usecase.UserUseCase
	ApplyMovement *inventory.ApplyMovementUseCase
	CreateSale    *sales.CreateSaleUseCase
	Receipt       *sales.ReceiptUseCase
	DashboardUC   *analytics.DashboardUseCase
	ReportsUC     *analytics.ReportsUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
//
// Roles: lecturas para cualquier usuario autenticado; escrituras de catálogo,
// movimientos y ventas para administrador y vendedor; administración de
// usuarios y borrados solo para administrador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	writer := RequireRole(entity.RoleAdmin, entity.RoleSeller)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writer, productHandler.Create)
	products.Put("/:id", writer, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", writer, categoryHandler.Create)
	categories.Put("/:id", writer, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", writer, supplierHandler.Create)
	suppliers.Put("/:id", writer, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", writer, customerHandler.Create)
	customers.Put("/:id", writer, customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Users (solo administrador)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Inventory movements
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ApplyMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", writer, inventoryHandler.ApplyMovement)

	// Sales
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.Receipt)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.GetReceipt)
	salesGroup.Post("/", writer, saleHandler.Create)

	// Dashboard y reportes
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reports.Get("/sales-chart", reportHandler.SalesChart)
	reports.Get("/top-products", reportHandler.TopProducts)
	reports.Get("/expiring-products", reportHandler.ExpiringProducts)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/inventory", reportHandler.Inventory)
}
