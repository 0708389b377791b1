package http

import (
	"net/http"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MonitorDeps tablero de la cola protegido con basic auth. Handler nil = no se monta.
type MonitorDeps struct {
	Path    string
	Handler http.Handler
	User    string
	Pass    string
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ItemUC         *usecase.ItemUseCase
	CategoryUC     *usecase.CategoryUseCase
	OperationUC    *inventory.OperationUseCase
	StatsUC        *usecase.StatsUseCase
	UserUC         *usecase.UserUseCase
	ReportUC       *reports.ReportUseCase
	ExportUC       *reports.ExportUseCase
	NotificationUC *notification.UseCase
	JWTSecret      string

	MetricsHandler fiber.Handler // opcional, GET /metrics
	Monitor        MonitorDeps
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health)
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}
	if deps.Monitor.Handler != nil {
		mon := app.Group(deps.Monitor.Path, basicauth.New(basicauth.Config{
			Users: map[string]string{deps.Monitor.User: deps.Monitor.Pass},
		}))
		mon.All("*", adaptor.HTTPHandler(deps.Monitor.Handler))
	}

	api := app.Group("/api")
	api.Get("/health", Health)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup := protected.Group("/auth")
	authGroup.Get("/me", authHandler.Me)
	authGroup.Put("/profile", authHandler.UpdateProfile)
	authGroup.Put("/password", authHandler.ChangePassword)
	authGroup.Put("/settings", authHandler.UpdateSettings)

	// Items: las rutas fijas van antes de /:id
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/search", itemHandler.Search)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	itemsWrite := RequirePermission(entity.PermItemsWrite)
	items.Post("/", itemsWrite, itemHandler.Create)
	items.Put("/:id", itemsWrite, itemHandler.Update)
	items.Delete("/:id", itemsWrite, itemHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categoriesWrite := RequirePermission(entity.PermCategoriesWrite)
	categories.Post("/", categoriesWrite, categoryHandler.Create)
	categories.Put("/:id", categoriesWrite, categoryHandler.Update)
	categories.Delete("/:id", categoriesWrite, categoryHandler.Delete)

	operations := protected.Group("/operations")
	operationHandler := NewOperationHandler(deps.OperationUC)
	operations.Get("/", operationHandler.List)
	opsCreate := RequirePermission(entity.PermOperationsCreate)
	operations.Post("/incoming", opsCreate, operationHandler.Incoming)
	operations.Post("/outgoing", opsCreate, operationHandler.Outgoing)
	operations.Get("/:id", operationHandler.GetByID)

	protected.Get("/stats", NewStatsHandler(deps.StatsUC).Get)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/stats/overview", userHandler.Overview)
	users.Get("/roles/available", userHandler.Roles)
	users.Get("/permissions/available", userHandler.Permissions)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Patch("/:id/toggle-status", userHandler.ToggleStatus)

	rep := protected.Group("/reports", RequirePermission(entity.PermReportsView))
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	rep.Get("/summary", reportHandler.Summary)
	rep.Get("/operations", reportHandler.Operations)
	rep.Get("/by-category", reportHandler.ByCategory)
	rep.Get("/top-items", reportHandler.TopItems)
	rep.Get("/movement", reportHandler.Movement)
	rep.Get("/export", reportHandler.Export)

	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/status", notificationHandler.Status)
	notifications.Post("/low-stock", notificationHandler.LowStock)
	notifications.Post("/operation", notificationHandler.Operation)
	notifications.Post("/weekly-report", notificationHandler.WeeklyReport)
	notifications.Post("/test", notificationHandler.Test)
}
