package fakes

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Mailer guarda los mensajes enviados. FailFor hace fallar el envío a esas direcciones.
type Mailer struct {
	mu      sync.Mutex
	Sent    []notification.Message
	FailFor map[string]error
	ModeVal string
}

var _ notification.Mailer = (*Mailer)(nil)

func (m *Mailer) Send(ctx context.Context, msg notification.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailFor[msg.To]; err != nil {
		return "", err
	}
	m.Sent = append(m.Sent, msg)
	return fmt.Sprintf("msg-%d", len(m.Sent)), nil
}

func (m *Mailer) Mode() string {
	if m.ModeVal == "" {
		return notification.ModeActive
	}
	return m.ModeVal
}

// Recipients direcciones a las que se envió, en orden.
func (m *Mailer) Recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Sent))
	for _, msg := range m.Sent {
		out = append(out, msg.To)
	}
	return out
}

// Notifier registra los avisos que pediría el caso de uso de operaciones.
type Notifier struct {
	mu         sync.Mutex
	Operations []dto.OperationNotice
	LowStock   [][]dto.LowStockItem
	Err        error
}

func (n *Notifier) NotifyOperation(ctx context.Context, notice dto.OperationNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Operations = append(n.Operations, notice)
	return n.Err
}

func (n *Notifier) NotifyLowStock(ctx context.Context, items []dto.LowStockItem) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.LowStock = append(n.LowStock, items)
	return n.Err
}

// Publisher registra los eventos publicados.
type Publisher struct {
	mu     sync.Mutex
	Events []entity.Operation
	Err    error
}

func (p *Publisher) PublishOperation(ctx context.Context, op *entity.Operation, item *entity.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, *op)
	return p.Err
}
