package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/notification"
)

// NotificationHandler envíos manuales de correo y estado del servicio.
type NotificationHandler struct {
	uc *notification.UseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *notification.UseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// LowStock godoc
// @Summary      Enviar alerta de stock bajo
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LowStockNotificationRequest  true  "items"
// @Success      200   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/low-stock [post]
func (h *NotificationHandler) LowStock(c *fiber.Ctx) error {
	var in dto.LowStockNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if len(in.Items) == 0 {
		return badRequest(c, CodeValidation, "items es requerido")
	}
	out, err := h.uc.SendLowStock(c.UserContext(), in.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Operation godoc
// @Summary      Avisar de una operación
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperationNotificationRequest  true  "operation"
// @Success      200   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/operation [post]
func (h *NotificationHandler) Operation(c *fiber.Ctx) error {
	var in dto.OperationNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Operation == nil {
		return badRequest(c, CodeValidation, "operation es requerido")
	}
	out, err := h.uc.SendOperation(c.UserContext(), *in.Operation)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WeeklyReport godoc
// @Summary      Enviar reporte semanal
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WeeklyReportRequest  true  "report"
// @Success      200   {object}  dto.NotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/weekly-report [post]
func (h *NotificationHandler) WeeklyReport(c *fiber.Ctx) error {
	var in dto.WeeklyReportRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Report == nil {
		return badRequest(c, CodeValidation, "report es requerido")
	}
	out, err := h.uc.SendWeeklyReport(c.UserContext(), *in.Report)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Test godoc
// @Summary      Correo de prueba
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TestEmailRequest  true  "email, subject, message"
// @Success      200   {object}  dto.TestEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/test [post]
func (h *NotificationHandler) Test(c *fiber.Ctx) error {
	var in dto.TestEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" {
		return badRequest(c, CodeValidation, "email es requerido")
	}
	out, err := h.uc.SendTest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado del servicio de correo
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationStatusResponse
// @Router       /api/notifications/status [get]
func (h *NotificationHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.uc.Status())
}
