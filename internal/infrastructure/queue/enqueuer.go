package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

var _ inventory.Notifier = (*Enqueuer)(nil)

// TaskClient subconjunto de *asynq.Client que usa el Enqueuer.
type TaskClient interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer encola las notificaciones para que el worker las envíe fuera del request.
type Enqueuer struct {
	client TaskClient
}

// NewEnqueuer construye el Notifier basado en cola.
func NewEnqueuer(client TaskClient) *Enqueuer {
	return &Enqueuer{client: client}
}

// NotifyOperation encola el aviso de operación.
func (e *Enqueuer) NotifyOperation(ctx context.Context, notice dto.OperationNotice) error {
	task, err := NewOperationNotificationTask(notice)
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeOperationNotification, err)
	}
	return nil
}

// NotifyLowStock encola la alerta de stock bajo.
func (e *Enqueuer) NotifyLowStock(ctx context.Context, items []dto.LowStockItem) error {
	if len(items) == 0 {
		return nil
	}
	task, err := NewLowStockAlertTask(items)
	if err != nil {
		return err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeLowStockAlert, err)
	}
	return nil
}
