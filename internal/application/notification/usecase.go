package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Estados de entrega por destinatario.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// UseCase envía las notificaciones por correo a los usuarios suscritos.
// También implementa inventory.Notifier para el envío en línea (sin cola).
type UseCase struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	opRepo   repository.OperationRepository
	mailer   Mailer
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	opRepo repository.OperationRepository,
	mailer Mailer,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{userRepo: userRepo, itemRepo: itemRepo, opRepo: opRepo, mailer: mailer, log: log, now: time.Now}
}

// SendLowStock envía la alerta a los usuarios con low_stock_alerts activo.
func (uc *UseCase) SendLowStock(ctx context.Context, items []dto.LowStockItem) (*dto.NotificationResponse, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	html, err := lowStockHTML(items)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("Alerta: %d artículo(s) con stock bajo", len(items))
	results, err := uc.broadcast(ctx, entity.NotifyLowStock, subject, html)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationResponse{Message: "Alertas de stock bajo enviadas", Results: results}, nil
}

// SendOperation avisa de una operación a los usuarios con email_notifications activo.
func (uc *UseCase) SendOperation(ctx context.Context, op dto.OperationNotice) (*dto.NotificationResponse, error) {
	if op.Type == "" || op.ItemName == "" {
		return nil, domain.ErrInvalidInput
	}
	if op.Date.IsZero() {
		op.Date = uc.now()
	}
	html, err := operationHTML(op)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("Operación de %s: %s", strings.ToLower(typeLabel(op.Type)), op.ItemName)
	results, err := uc.broadcast(ctx, entity.NotifyOperation, subject, html)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationResponse{Message: "Notificaciones de operación enviadas", Results: results}, nil
}

// SendWeeklyReport envía el resumen a los usuarios con operation_reports activo.
func (uc *UseCase) SendWeeklyReport(ctx context.Context, report dto.WeeklyReport) (*dto.NotificationResponse, error) {
	if report.Period == "" {
		return nil, domain.ErrInvalidInput
	}
	html, err := weeklyHTML(report)
	if err != nil {
		return nil, err
	}
	results, err := uc.broadcast(ctx, entity.NotifyWeeklyReport, "Reporte semanal: "+report.Period, html)
	if err != nil {
		return nil, err
	}
	return &dto.NotificationResponse{Message: "Reportes semanales enviados", Results: results}, nil
}

// SendTest envía un correo de prueba a una dirección arbitraria.
func (uc *UseCase) SendTest(ctx context.Context, in dto.TestEmailRequest) (*dto.TestEmailResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, domain.ErrInvalidInput
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = "Correo de prueba"
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		message = "Este es un correo de prueba del sistema de almacén."
	}
	html, err := testHTML(subject, message)
	if err != nil {
		return nil, err
	}
	id, err := uc.mailer.Send(ctx, Message{To: email, Subject: subject, HTML: html})
	if err != nil {
		return nil, err
	}
	return &dto.TestEmailResponse{Message: "Correo de prueba enviado", MessageID: id}, nil
}

// Status estado del servicio de correo.
func (uc *UseCase) Status() dto.NotificationStatusResponse {
	return dto.NotificationStatusResponse{
		Service:   "email",
		Status:    uc.mailer.Mode(),
		Timestamp: uc.now(),
		Features:  []string{"low-stock-alerts", "operation-notifications", "weekly-reports", "test-email"},
	}
}

// NotifyOperation implementa inventory.Notifier (envío en línea).
func (uc *UseCase) NotifyOperation(ctx context.Context, notice dto.OperationNotice) error {
	_, err := uc.SendOperation(ctx, notice)
	return err
}

// NotifyLowStock implementa inventory.Notifier (envío en línea).
func (uc *UseCase) NotifyLowStock(ctx context.Context, items []dto.LowStockItem) error {
	_, err := uc.SendLowStock(ctx, items)
	return err
}

// RunWeeklyReport arma el reporte de los últimos 7 días y lo envía.
func (uc *UseCase) RunWeeklyReport(ctx context.Context) (*dto.NotificationResponse, error) {
	report, err := uc.BuildWeeklyReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.SendWeeklyReport(ctx, *report)
}

// BuildWeeklyReport resume las operaciones de los últimos 7 días.
func (uc *UseCase) BuildWeeklyReport(ctx context.Context) (*dto.WeeklyReport, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -7)
	ops, err := uc.opRepo.List(ctx, repository.OperationFilter{
		StartDate: &start,
		EndDate:   &end,
		SortBy:    "date",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, err
	}
	report := &dto.WeeklyReport{
		Period:     start.Format("02/01/2006") + " - " + end.Format("02/01/2006"),
		Operations: make([]dto.OperationNotice, 0, len(ops)),
	}
	for _, op := range ops {
		report.TotalOperations++
		switch op.Type {
		case entity.OperationIncoming:
			report.Incoming++
		case entity.OperationOutgoing:
			report.Outgoing++
		}
		report.Operations = append(report.Operations, dto.NoticeFromOperation(op))
	}
	return report, nil
}

// RunLowStockSweep revisa todos los artículos y alerta si hay stock bajo. Sin artículos no envía nada.
func (uc *UseCase) RunLowStockSweep(ctx context.Context) (*dto.NotificationResponse, error) {
	items, err := uc.itemRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &dto.NotificationResponse{Message: "Sin artículos con stock bajo", Results: []dto.DeliveryResult{}}, nil
	}
	alert := make([]dto.LowStockItem, 0, len(items))
	for _, i := range items {
		alert = append(alert, dto.LowStockItem{Name: i.Name, Quantity: i.Quantity, MinQuantity: i.MinQuantity})
	}
	return uc.SendLowStock(ctx, alert)
}

// broadcast envía el mismo correo a cada destinatario; un fallo individual no corta el resto.
func (uc *UseCase) broadcast(ctx context.Context, kind entity.NotificationKind, subject, html string) ([]dto.DeliveryResult, error) {
	users, err := uc.userRepo.ListNotifiable(ctx, kind)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DeliveryResult, 0, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		res := dto.DeliveryResult{UserID: u.ID, Email: u.Email}
		id, err := uc.mailer.Send(ctx, Message{To: u.Email, Subject: subject, HTML: html})
		if err != nil {
			res.Status = StatusError
			res.Error = err.Error()
			uc.log.Error().Err(err).Str("kind", string(kind)).Str("to", u.Email).Msg("envío de correo")
		} else {
			res.Status = StatusSuccess
			res.MessageID = id
		}
		results = append(results, res)
	}
	return results, nil
}
