package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeValidation        = "VALIDATION"
	CodeInvalidBody       = "INVALID_BODY"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeMissingToken      = "MISSING_TOKEN"
	CodeMissingRole       = "MISSING_ROLE"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicate         = "DUPLICATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInternal          = "INTERNAL"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// errorTable el primer match gana; los específicos van antes que los genéricos.
var errorTable = []errorMapping{
	{domain.ErrInsufficientStock, fiber.StatusConflict, CodeInsufficientStock},
	{domain.ErrItemNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrCategoryNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrOperationNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrUserNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, CodeDuplicate},
	{domain.ErrUsernameTaken, fiber.StatusConflict, CodeDuplicate},
	{domain.ErrDuplicate, fiber.StatusConflict, CodeDuplicate},
	{domain.ErrConflict, fiber.StatusConflict, CodeDuplicate},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrRoleRequired, fiber.StatusBadRequest, CodeValidation},
	{domain.ErrCannotDeleteSelf, fiber.StatusBadRequest, CodeValidation},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeValidation},
}

// statusFor traduce un error de dominio a estado HTTP y código. Desconocido = 500.
func statusFor(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, CodeInternal
}

// respondError escribe el error como dto.ErrorResponse. Los 500 no exponen el detalle.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		if l, ok := c.Locals(localLogger).(*logger.Logger); ok && l != nil {
			l.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		}
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, CodeInvalidBody, "cuerpo inválido")
}

// ErrorHandler de Fiber para errores no manejados y panics recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = CodeValidation
			case fiber.StatusUnauthorized:
				code = CodeUnauthorized
			case fiber.StatusForbidden:
				code = CodeForbidden
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			}
			if fe.Code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no manejado")
			}
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
		}
		status, code := statusFor(err)
		msg := err.Error()
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no manejado")
			msg = "error interno del servidor"
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
}
