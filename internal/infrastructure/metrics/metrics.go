package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Metrics agrupa los colectores de la API sobre un registry propio.
type Metrics struct {
	registry      *prometheus.Registry
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	operations    *prometheus.CounterVec
	stockMoved    *prometheus.CounterVec
	mailsSent     *prometheus.CounterVec
	eventFailures prometheus.Counter
}

// New registra los colectores del proceso y de la aplicación.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "Peticiones HTTP por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "operations_total", Help: "Operaciones de almacén registradas por tipo.",
		}, []string{"type"}),
		stockMoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "stock_units_moved_total", Help: "Unidades movidas por tipo de operación.",
		}, []string{"type"}),
		mailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "mails_sent_total", Help: "Correos enviados por modo y resultado.",
		}, []string{"mode", "result"}),
		eventFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "event_publish_failures_total", Help: "Eventos de operación no publicados.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.operations, m.stockMoved, m.mailsSent, m.eventFailures,
	)
	return m
}

// Registry expone el registry (tests y handlers adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Middleware mide cada request. La ruta es el patrón registrado para no explotar la cardinalidad.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if status == fiber.StatusNotFound && route == "/" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler GET /metrics.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry}))
}

// ObserveOperation cuenta una operación confirmada.
func (m *Metrics) ObserveOperation(opType string, quantity int64) {
	m.operations.WithLabelValues(opType).Inc()
	m.stockMoved.WithLabelValues(opType).Add(float64(quantity))
}

// InstrumentedPublisher decora el EventPublisher contando operaciones y fallos de publicación.
type InstrumentedPublisher struct {
	next    inventory.EventPublisher
	metrics *Metrics
}

var _ inventory.EventPublisher = (*InstrumentedPublisher)(nil)

// WrapPublisher decora next.
func (m *Metrics) WrapPublisher(next inventory.EventPublisher) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, metrics: m}
}

// PublishOperation registra la operación y delega.
func (p *InstrumentedPublisher) PublishOperation(ctx context.Context, op *entity.Operation, item *entity.Item) error {
	p.metrics.ObserveOperation(op.Type, op.Quantity)
	err := p.next.PublishOperation(ctx, op, item)
	if err != nil {
		p.metrics.eventFailures.Inc()
	}
	return err
}

// InstrumentedMailer decora el Mailer contando envíos.
type InstrumentedMailer struct {
	next    notification.Mailer
	metrics *Metrics
}

var _ notification.Mailer = (*InstrumentedMailer)(nil)

// WrapMailer decora next.
func (m *Metrics) WrapMailer(next notification.Mailer) *InstrumentedMailer {
	return &InstrumentedMailer{next: next, metrics: m}
}

// Send delega y cuenta el resultado.
func (im *InstrumentedMailer) Send(ctx context.Context, msg notification.Message) (string, error) {
	id, err := im.next.Send(ctx, msg)
	result := "success"
	if err != nil {
		result = "error"
	}
	im.metrics.mailsSent.WithLabelValues(im.next.Mode(), result).Inc()
	return id, err
}

// Mode del transporte decorado.
func (im *InstrumentedMailer) Mode() string { return im.next.Mode() }
