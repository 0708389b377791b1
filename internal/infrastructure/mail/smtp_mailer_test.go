package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func TestDemoMailer_Send(t *testing.T) {
	m := NewDemoMailer(logger.Nop())
	m.now = func() time.Time { return time.UnixMilli(1700000000123) }

	id, err := m.Send(context.Background(), notification.Message{To: "a@b.com", Subject: "Hola", HTML: "<p>hola</p>"})
	require.NoError(t, err)
	assert.Equal(t, "demo-1700000000123", id)
	assert.Equal(t, notification.ModeDemo, m.Mode())
}

func TestPlainText(t *testing.T) {
	conv := md.NewConverter("", true, nil)
	text := PlainText(conv, "<h2>Stock bajo</h2><p>Tornillo: <strong>2</strong></p>")
	assert.Contains(t, text, "Stock bajo")
	assert.Contains(t, text, "**2**")
	assert.False(t, strings.Contains(text, "<p>"))
}

func TestNew_WithoutCredentialsFallsBackToDemo(t *testing.T) {
	m := New(config.SMTPConfig{Host: "smtp.example.com", Port: 587}, logger.Nop())
	assert.Equal(t, notification.ModeDemo, m.Mode())
}

func TestNewSMTPMailer_FromDefaultsToUser(t *testing.T) {
	m := NewSMTPMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587, User: "almacen@example.com", Password: "x"})
	assert.Equal(t, "almacen@example.com", m.from)
	assert.Equal(t, "example.com", m.domain)
	assert.Equal(t, notification.ModeActive, m.Mode())
}
