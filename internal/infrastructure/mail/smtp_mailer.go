package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var (
	_ notification.Mailer = (*SMTPMailer)(nil)
	_ notification.Mailer = (*DemoMailer)(nil)
)

// SMTPMailer envía correos por SMTP con gomail.
// Cada mensaje lleva HTML y una alternativa en texto plano derivada del HTML.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	domain string
	conv   *md.Converter
}

// NewSMTPMailer construye el transporte sin verificar la conexión.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return &SMTPMailer{dialer: d, from: from, domain: domain, conv: md.NewConverter("", true, nil)}
}

// Verify abre y cierra una conexión SMTP (equivale a verificar credenciales).
func (m *SMTPMailer) Verify() error {
	sc, err := m.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return sc.Close()
}

// Send entrega el mensaje y devuelve su Message-ID.
func (m *SMTPMailer) Send(ctx context.Context, msg notification.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.domain)

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetHeader("Message-ID", id)
	gm.SetDateHeader("Date", time.Now())
	gm.SetBody("text/plain", PlainText(m.conv, msg.HTML))
	gm.AddAlternative("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return id, nil
}

// Mode siempre "active".
func (m *SMTPMailer) Mode() string { return notification.ModeActive }

// PlainText convierte el HTML del correo a texto (markdown). Si falla devuelve el HTML tal cual.
func PlainText(conv *md.Converter, html string) string {
	text, err := conv.ConvertString(html)
	if err != nil {
		return html
	}
	return strings.TrimSpace(text)
}

// DemoMailer registra el correo en el log en lugar de enviarlo.
type DemoMailer struct {
	log  *logger.Logger
	conv *md.Converter
	now  func() time.Time
}

// NewDemoMailer crea el transporte de demostración.
func NewDemoMailer(log *logger.Logger) *DemoMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &DemoMailer{log: log, conv: md.NewConverter("", true, nil), now: time.Now}
}

// Send loguea destinatario, asunto y texto; devuelve "demo-<unix-ms>".
func (m *DemoMailer) Send(_ context.Context, msg notification.Message) (string, error) {
	id := fmt.Sprintf("demo-%d", m.now().UnixMilli())
	m.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("text", PlainText(m.conv, msg.HTML)).
		Str("message_id", id).
		Msg("DEMO: correo no enviado")
	return id, nil
}

// Mode siempre "demo".
func (m *DemoMailer) Mode() string { return notification.ModeDemo }

// New elige el transporte: SMTP si hay credenciales y el dial responde, si no demo.
func New(cfg config.SMTPConfig, log *logger.Logger) notification.Mailer {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.User == "" || cfg.Password == "" {
		log.Warn().Msg("SMTP sin credenciales: correo en modo demo")
		return NewDemoMailer(log)
	}
	smtp := NewSMTPMailer(cfg)
	if err := smtp.Verify(); err != nil {
		log.Warn().Err(err).Str("host", cfg.Host).Msg("SMTP no disponible: correo en modo demo")
		return NewDemoMailer(log)
	}
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("servicio de correo inicializado")
	return smtp
}
