package notification

import "context"

// Modos del servicio de correo.
const (
	ModeActive = "active"
	ModeDemo   = "demo"
)

// Message correo a enviar. El transporte deriva la parte de texto plano del HTML.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer transporte de correo. Send devuelve el Message-ID asignado.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
	Mode() string
}
