package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad de la secuencia leer-verificar-actualizar-insertar de cada operación.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		opRepo repository.OperationRepository,
	) error) error
}

// EventPublisher publica la operación confirmada hacia otros sistemas.
type EventPublisher interface {
	PublishOperation(ctx context.Context, op *entity.Operation, item *entity.Item) error
}

// Notifier avisa por correo (en línea o vía cola) de operaciones y stock bajo.
type Notifier interface {
	NotifyOperation(ctx context.Context, notice dto.OperationNotice) error
	NotifyLowStock(ctx context.Context, items []dto.LowStockItem) error
}

// NopPublisher no publica nada (NATS no configurado).
type NopPublisher struct{}

func (NopPublisher) PublishOperation(context.Context, *entity.Operation, *entity.Item) error {
	return nil
}
