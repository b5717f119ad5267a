package http

import (
	"github.com/gofiber/fiber/v2"

	appauth "github.com/jhoicas/Distripos-api/internal/application/auth"
	"github.com/jhoicas/Distripos-api/internal/application/loans"
	"github.com/jhoicas/Distripos-api/internal/application/reports"
	appsales "github.com/jhoicas/Distripos-api/internal/application/sales"
	appstock "github.com/jhoicas/Distripos-api/internal/application/stock"
	"github.com/jhoicas/Distripos-api/internal/application/usecase"
	"github.com/jhoicas/Distripos-api/internal/domain/entity"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SaleUC     *appsales.UseCase
	StockUC    *appstock.UseCase
	LoanUC     *loans.UseCase
	ReportUC   *reports.UseCase
	AuthUC     *appauth.UseCase
	ShopUC     *usecase.ShopUseCase
	CustomerUC *usecase.CustomerUseCase
	PackageUC  *usecase.PackageUseCase
	ExpenseUC  *usecase.ExpenseUseCase
	CategoryUC *usecase.CategoryUseCase
	JWTSecret  string
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ventas (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.Log)
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/search", saleHandler.Search)
	salesGroup.Get("/profit-loss/daily", reportHandler.Daily)
	salesGroup.Get("/profit-loss/monthly", reportHandler.Monthly)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// Tablero (protegido, solo admin)
	protected.Get("/dashboard", RequireRole(entity.RoleAdmin), reportHandler.Dashboard)

	// Inventario central (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.Log)
	stockGroup.Post("/", stockHandler.Create)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/search", stockHandler.Search)
	stockGroup.Get("/:id", stockHandler.GetByID)
	stockGroup.Put("/:id", stockHandler.Update)
	stockGroup.Post("/:id/restock", stockHandler.Restock)
	stockGroup.Post("/:id/issue", stockHandler.Issue)
	stockGroup.Delete("/:id", stockHandler.Delete)

	// Categorías (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Delete("/:id", categoryHandler.Delete)

	// Tiendas (protegido)
	shops := protected.Group("/shops")
	shopHandler := NewShopHandler(deps.ShopUC, deps.Log)
	shops.Post("/", shopHandler.Create)
	shops.Get("/", shopHandler.List)
	shops.Get("/:id", shopHandler.GetByID)
	shops.Put("/:id", shopHandler.Update)
	shops.Delete("/:id", shopHandler.Delete)

	// Clientes / distribuidores (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Paquetes de afiliación (protegido)
	packages := protected.Group("/packages")
	packageHandler := NewPackageHandler(deps.PackageUC, deps.Log)
	packages.Post("/", packageHandler.Create)
	packages.Get("/", packageHandler.List)
	packages.Get("/:id", packageHandler.GetByID)
	packages.Put("/:id", packageHandler.Update)
	packages.Delete("/:id", packageHandler.Delete)

	// Préstamos y abonos (protegido)
	loansGroup := protected.Group("/loans")
	loanHandler := NewLoanHandler(deps.LoanUC, deps.Log)
	loansGroup.Post("/", loanHandler.Create)
	loansGroup.Get("/", loanHandler.List)
	loansGroup.Get("/:id", loanHandler.GetByID)
	loansGroup.Post("/:id/payments", loanHandler.Pay)
	protected.Delete("/payments/:id", loanHandler.DeletePayment)

	// Gastos (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.Log)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Personal (protegido, solo admin)
	staff := protected.Group("/staff", RequireRole(entity.RoleAdmin))
	staff.Get("/", authHandler.ListStaff)
	staff.Get("/:id", authHandler.GetStaff)
	staff.Put("/:id", authHandler.UpdateStaff)
	staff.Delete("/:id", authHandler.DeleteStaff)
}
