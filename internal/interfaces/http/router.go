package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-api/internal/application/auth"
	"github.com/tu-usuario/taller-api/internal/application/customer"
	"github.com/tu-usuario/taller-api/internal/application/employee"
	"github.com/tu-usuario/taller-api/internal/application/job"
	"github.com/tu-usuario/taller-api/internal/application/stock"
	"github.com/tu-usuario/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	EmployeeUC *employee.EmployeeUseCase
	CustomerUC *customer.CustomerUseCase
	StockUC    *stock.StockUseCase
	JobUC      *job.JobUseCase
	JobPDFUC   *job.PDFUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	jobHandler := NewJobHandler(deps.JobUC, deps.JobPDFUC)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset-admin", authHandler.ResetAdmin)

	// Consulta pública de estado y recibo PDF: el cliente del taller las usa
	// sin autenticarse, con el número de recibo que le entregaron.
	api.Get("/jobs/receipt/:receiptNumber", jobHandler.ReceiptStatus)
	api.Get("/jobs/:id/receipt", jobHandler.ReceiptPDF)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Employees
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/tech", employeeHandler.ListTechs)
	employees.Get("/me", employeeHandler.Me)
	employees.Get("/", adminOnly, employeeHandler.List)
	employees.Post("/", adminOnly, employeeHandler.Create)
	employees.Get("/:id/profile", employeeHandler.Profile)
	employees.Put("/:id", employeeHandler.Update)
	employees.Delete("/:id", adminOnly, employeeHandler.Delete)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", adminOnly, customerHandler.List)

	// Stocks
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockUC)
	stocks.Get("/export", stockHandler.Export)
	stocks.Get("/", stockHandler.List)
	stocks.Post("/", stockHandler.Create)
	stocks.Get("/:id", stockHandler.Get)
	stocks.Put("/:id", stockHandler.Update)
	stocks.Delete("/:id", stockHandler.Delete)
	stocks.Patch("/:id/withdraw", stockHandler.Withdraw)

	// Jobs
	jobs := protected.Group("/jobs")
	jobs.Get("/my", jobHandler.MyJobs)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Put("/:id", jobHandler.Update)
	jobs.Put("/:id/complete", jobHandler.Complete)
	jobs.Post("/:id/withdraw", jobHandler.WithdrawPart)
}
