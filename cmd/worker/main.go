// worker procesa las notificaciones encoladas por la API y ejecuta las tareas periódicas
// (reporte semanal y revisión de stock bajo).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/infrastructure/mail"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/almacen-api/internal/infrastructure/queue"
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
		Service: cfg.App.Name + "-worker",
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR es obligatorio para el worker")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	notificationUC := notification.NewUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewItemRepository(pool),
		postgres.NewOperationRepository(pool),
		mail.New(cfg.SMTP, log.Component("mail")),
		log.Component("notification"),
	)

	redis := queue.RedisOpt(cfg.Redis)
	taskLog := log.Component("tasks")
	srv := asynq.NewServer(redis, asynq.Config{
		Concurrency: 4,
		Queues:      queue.Queues,
		Logger:      queue.NewAsynqLogger(log.Component("asynq")),
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			taskLog.Error().Err(err).Str("task", task.Type()).Msg("tarea fallida")
		}),
	})
	mux := asynq.NewServeMux()
	queue.NewHandlers(notificationUC, taskLog).Register(mux)

	scheduler, err := queue.NewScheduler(redis, cfg.Schedule, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("programación de tareas")
	}

	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("iniciar worker")
	}
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("iniciar scheduler")
	}
	log.Info().
		Str("weekly_cron", cfg.Schedule.WeeklyReportCron).
		Str("low_stock_cron", cfg.Schedule.LowStockCron).
		Msg("worker iniciado")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, deteniendo worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("worker detenido")
}
