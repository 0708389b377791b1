package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// Tipos de tarea.
const (
	TypeOperationNotification = "notification:operation"
	TypeLowStockAlert         = "notification:low_stock"
	TypeWeeklyReport          = "report:weekly"
	TypeLowStockSweep         = "report:low_stock_sweep"
)

// Colas y su prioridad relativa en el worker.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

// Queues prioridades para asynq.Config.
var Queues = map[string]int{
	QueueCritical: 2,
	QueueDefault:  1,
}

// LowStockPayload artículos en alerta.
type LowStockPayload struct {
	Items []dto.LowStockItem `json:"items"`
}

// NewOperationNotificationTask tarea de aviso de operación.
func NewOperationNotificationTask(notice dto.OperationNotice) (*asynq.Task, error) {
	data, err := json.Marshal(notice)
	if err != nil {
		return nil, fmt.Errorf("marshal operation notice: %w", err)
	}
	return asynq.NewTask(TypeOperationNotification, data, asynq.MaxRetry(3), asynq.Queue(QueueDefault)), nil
}

// NewLowStockAlertTask tarea de alerta de stock bajo.
func NewLowStockAlertTask(items []dto.LowStockItem) (*asynq.Task, error) {
	data, err := json.Marshal(LowStockPayload{Items: items})
	if err != nil {
		return nil, fmt.Errorf("marshal low stock payload: %w", err)
	}
	return asynq.NewTask(TypeLowStockAlert, data, asynq.MaxRetry(5), asynq.Queue(QueueCritical)), nil
}

// NewWeeklyReportTask tarea periódica sin payload.
func NewWeeklyReportTask() *asynq.Task {
	return asynq.NewTask(TypeWeeklyReport, nil, asynq.MaxRetry(2))
}

// NewLowStockSweepTask revisión periódica del stock.
func NewLowStockSweepTask() *asynq.Task {
	return asynq.NewTask(TypeLowStockSweep, nil, asynq.MaxRetry(2))
}
