package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"

	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/events"
	"github.com/jhoicas/almacen-api/internal/infrastructure/export"
	"github.com/jhoicas/almacen-api/internal/infrastructure/mail"
	"github.com/jhoicas/almacen-api/internal/infrastructure/metrics"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	opRepo := postgres.NewOperationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New("almacen")

	mailer := m.WrapMailer(mail.New(cfg.SMTP, log.Component("mail")))
	notificationUC := notification.NewUseCase(userRepo, itemRepo, opRepo, mailer, log.Component("notification"))

	nc, err := events.Connect(cfg.NATS, cfg.App.Name, log.Component("events"))
	if err != nil {
		// Sin eventos la API sigue funcionando.
		log.Warn().Err(err).Msg("NATS no disponible: eventos deshabilitados")
	}
	if nc != nil {
		defer nc.Drain()
	}
	publisher := m.WrapPublisher(events.NewPublisher(nc, cfg.NATS.SubjectPrefix))

	// Con Redis los avisos van a la cola; sin Redis se envían en línea tras el commit.
	var notifier inventory.Notifier = notificationUC
	var monitor httpRouter.MonitorDeps
	if cfg.Redis.Enabled() {
		client := asynq.NewClient(queue.RedisOpt(cfg.Redis))
		defer client.Close()
		notifier = queue.NewEnqueuer(client)
		if cfg.Redis.MonitorEnabled {
			monitor = httpRouter.MonitorDeps{
				Path:    queue.MonitorPath,
				Handler: queue.NewMonitor(cfg.Redis),
				User:    cfg.Redis.MonitorUser,
				Pass:    cfg.Redis.MonitorPass,
			}
		}
		log.Info().Str("redis", cfg.Redis.Addr).Msg("notificaciones por cola")
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	operationUC := inventory.NewOperationUseCase(txRunner, opRepo, publisher, notifier, log.Component("operations"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(m.Middleware())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ItemUC:         usecase.NewItemUseCase(itemRepo, categoryRepo),
		CategoryUC:     usecase.NewCategoryUseCase(categoryRepo, txRunner),
		OperationUC:    operationUC,
		StatsUC:        usecase.NewStatsUseCase(reportRepo),
		UserUC:         usecase.NewUserUseCase(userRepo, roleRepo, txRunner),
		ReportUC:       reports.NewReportUseCase(reportRepo, opRepo),
		ExportUC:       reports.NewExportUseCase(itemRepo, opRepo, reportRepo, export.NewRegistry()),
		NotificationUC: notificationUC,
		JWTSecret:      cfg.JWT.Secret,
		MetricsHandler: m.Handler(),
		Monitor:        monitor,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
