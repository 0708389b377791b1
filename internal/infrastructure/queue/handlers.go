package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// NotificationRunner operaciones del caso de uso de notificaciones que ejecuta el worker.
type NotificationRunner interface {
	SendOperation(ctx context.Context, op dto.OperationNotice) (*dto.NotificationResponse, error)
	SendLowStock(ctx context.Context, items []dto.LowStockItem) (*dto.NotificationResponse, error)
	RunWeeklyReport(ctx context.Context) (*dto.NotificationResponse, error)
	RunLowStockSweep(ctx context.Context) (*dto.NotificationResponse, error)
}

// Handlers procesa las tareas de la cola.
type Handlers struct {
	uc  NotificationRunner
	log *logger.Logger
}

// NewHandlers construye los handlers del worker.
func NewHandlers(uc NotificationRunner, log *logger.Logger) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{uc: uc, log: log}
}

// Register asocia cada tipo de tarea con su handler.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeOperationNotification, h.HandleOperationNotification)
	mux.HandleFunc(TypeLowStockAlert, h.HandleLowStockAlert)
	mux.HandleFunc(TypeWeeklyReport, h.HandleWeeklyReport)
	mux.HandleFunc(TypeLowStockSweep, h.HandleLowStockSweep)
}

// HandleOperationNotification envía el aviso de una operación.
func (h *Handlers) HandleOperationNotification(ctx context.Context, t *asynq.Task) error {
	var notice dto.OperationNotice
	if err := json.Unmarshal(t.Payload(), &notice); err != nil {
		return fmt.Errorf("unmarshal operation notice: %v: %w", err, asynq.SkipRetry)
	}
	res, err := h.uc.SendOperation(ctx, notice)
	if err != nil {
		return err
	}
	h.logResult(t.Type(), res)
	return nil
}

// HandleLowStockAlert envía la alerta de stock bajo.
func (h *Handlers) HandleLowStockAlert(ctx context.Context, t *asynq.Task) error {
	var p LowStockPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal low stock payload: %v: %w", err, asynq.SkipRetry)
	}
	res, err := h.uc.SendLowStock(ctx, p.Items)
	if err != nil {
		return err
	}
	h.logResult(t.Type(), res)
	return nil
}

// HandleWeeklyReport arma y envía el reporte de los últimos 7 días.
func (h *Handlers) HandleWeeklyReport(ctx context.Context, t *asynq.Task) error {
	res, err := h.uc.RunWeeklyReport(ctx)
	if err != nil {
		return err
	}
	h.logResult(t.Type(), res)
	return nil
}

// HandleLowStockSweep revisa el inventario y alerta si hay artículos en mínimo.
func (h *Handlers) HandleLowStockSweep(ctx context.Context, t *asynq.Task) error {
	res, err := h.uc.RunLowStockSweep(ctx)
	if err != nil {
		return err
	}
	h.logResult(t.Type(), res)
	return nil
}

func (h *Handlers) logResult(taskType string, res *dto.NotificationResponse) {
	if res == nil {
		h.log.Info().Str("task", taskType).Msg("tarea sin destinatarios")
		return
	}
	failed := 0
	for _, r := range res.Results {
		if r.Status != "success" {
			failed++
		}
	}
	h.log.Info().
		Str("task", taskType).
		Int("recipients", len(res.Results)).
		Int("failed", failed).
		Msg(res.Message)
}
