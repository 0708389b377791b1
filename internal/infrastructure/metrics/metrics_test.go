package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

type stubPublisher struct{ err error }

func (s stubPublisher) PublishOperation(context.Context, *entity.Operation, *entity.Item) error {
	return s.err
}

type stubMailer struct{ err error }

func (s stubMailer) Send(context.Context, notification.Message) (string, error) { return "id", s.err }
func (s stubMailer) Mode() string                                               { return notification.ModeDemo }

func TestMiddlewareAndHandler(t *testing.T) {
	m := New("almacen")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/items/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest("GET", "/api/items/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/items/:id", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "almacen_http_requests_total")
}

func TestInstrumentedPublisher(t *testing.T) {
	m := New("almacen")
	op := &entity.Operation{Type: entity.OperationIncoming, Quantity: 7}

	require.NoError(t, m.WrapPublisher(stubPublisher{}).PublishOperation(context.Background(), op, &entity.Item{}))
	require.Error(t, m.WrapPublisher(stubPublisher{err: errors.New("x")}).PublishOperation(context.Background(), op, &entity.Item{}))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(entity.OperationIncoming)))
	assert.Equal(t, 14.0, testutil.ToFloat64(m.stockMoved.WithLabelValues(entity.OperationIncoming)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventFailures))
}

func TestInstrumentedMailer(t *testing.T) {
	m := New("almacen")
	_, _ = m.WrapMailer(stubMailer{}).Send(context.Background(), notification.Message{})
	_, _ = m.WrapMailer(stubMailer{err: errors.New("smtp")}).Send(context.Background(), notification.Message{})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mailsSent.WithLabelValues(notification.ModeDemo, "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mailsSent.WithLabelValues(notification.ModeDemo, "error")))
	assert.Equal(t, notification.ModeDemo, m.WrapMailer(stubMailer{}).Mode())
}
