package queue

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/pkg/config"
)

// NewScheduler registra las tareas periódicas (reporte semanal y revisión de stock).
// Una expresión cron vacía deshabilita esa tarea.
func NewScheduler(redis asynq.RedisConnOpt, cfg config.ScheduleConfig, loc *time.Location) (*asynq.Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s := asynq.NewScheduler(redis, &asynq.SchedulerOpts{Location: loc})
	if cfg.WeeklyReportCron != "" {
		if _, err := s.Register(cfg.WeeklyReportCron, NewWeeklyReportTask()); err != nil {
			return nil, fmt.Errorf("register weekly report (%q): %w", cfg.WeeklyReportCron, err)
		}
	}
	if cfg.LowStockCron != "" {
		if _, err := s.Register(cfg.LowStockCron, NewLowStockSweepTask()); err != nil {
			return nil, fmt.Errorf("register low stock sweep (%q): %w", cfg.LowStockCron, err)
		}
	}
	return s, nil
}
