package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	stock "github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var _ inventory.EventPublisher = (*NATSPublisher)(nil)

// EventOperationCreated sufijo del subject: <prefix>.operation.created
const EventOperationCreated = "operation.created"

// OperationEvent payload publicado tras confirmar una operación.
type OperationEvent struct {
	Event       string    `json:"event"`
	OperationID string    `json:"operationId"`
	Type        string    `json:"type"`
	ItemID      string    `json:"itemId"`
	ItemName    string    `json:"itemName"`
	Quantity    int64     `json:"quantity"`
	NewQuantity int64     `json:"newQuantity"`
	LowStock    bool      `json:"lowStock"`
	EmployeeID  string    `json:"employeeId,omitempty"`
	Date        time.Time `json:"date"`
}

// NewOperationEvent arma el evento desde la operación y el artículo ya actualizado.
func NewOperationEvent(op *entity.Operation, item *entity.Item) OperationEvent {
	return OperationEvent{
		Event:       EventOperationCreated,
		OperationID: op.ID,
		Type:        op.Type,
		ItemID:      item.ID,
		ItemName:    item.Name,
		Quantity:    op.Quantity,
		NewQuantity: item.Quantity,
		LowStock:    stock.IsLowStock(item.Quantity, item.MinQuantity),
		EmployeeID:  op.EmployeeID,
		Date:        op.Date,
	}
}

// Conn subconjunto de *nats.Conn usado para publicar.
type Conn interface {
	Publish(subj string, data []byte) error
}

// NATSPublisher publica eventos de operaciones en NATS core.
type NATSPublisher struct {
	conn    Conn
	subject string
}

// NewNATSPublisher construye el publicador sobre una conexión existente.
func NewNATSPublisher(conn Conn, prefix string) *NATSPublisher {
	subject := EventOperationCreated
	if prefix != "" {
		subject = prefix + "." + EventOperationCreated
	}
	return &NATSPublisher{conn: conn, subject: subject}
}

// Subject devuelve el subject de publicación.
func (p *NATSPublisher) Subject() string { return p.subject }

// PublishOperation serializa y publica el evento.
func (p *NATSPublisher) PublishOperation(ctx context.Context, op *entity.Operation, item *entity.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(NewOperationEvent(op, item))
	if err != nil {
		return fmt.Errorf("marshal operation event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", p.subject, err)
	}
	return nil
}

// Connect abre la conexión a NATS. Sin URL devuelve (nil, nil): los eventos quedan deshabilitados.
func Connect(cfg config.NATSConfig, name string, log *logger.Logger) (*nats.Conn, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	if log == nil {
		log = logger.Nop()
	}
	nc, err := nats.Connect(cfg.URL,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("NATS desconectado")
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("NATS reconectado")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

// NewPublisher devuelve el publicador NATS o uno nulo si no hay conexión.
func NewPublisher(nc *nats.Conn, prefix string) inventory.EventPublisher {
	if nc == nil {
		return inventory.NopPublisher{}
	}
	return NewNATSPublisher(nc, prefix)
}
