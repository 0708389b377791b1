package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// OperationHandler entradas, salidas e historial.
type OperationHandler struct {
	uc *inventory.OperationUseCase
}

// NewOperationHandler construye el handler.
func NewOperationHandler(uc *inventory.OperationUseCase) *OperationHandler {
	return &OperationHandler{uc: uc}
}

// List godoc
// @Summary      Historial de operaciones
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "incoming | outgoing"
// @Param        startDate   query  string  false  "YYYY-MM-DD"
// @Param        endDate     query  string  false  "YYYY-MM-DD"
// @Param        itemId      query  string  false  "Artículo"
// @Param        employeeId  query  string  false  "Empleado"
// @Param        sortBy      query  string  false  "date | quantity"
// @Param        sortOrder   query  string  false  "asc | desc"
// @Param        limit       query  int     false  "Máximo de filas"
// @Success      200  {array}  dto.OperationResponse
// @Router       /api/operations [get]
func (h *OperationHandler) List(c *fiber.Ctx) error {
	var q dto.OperationListQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener operación
// @Tags         operations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.OperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/operations/{id} [get]
func (h *OperationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Incoming godoc
// @Summary      Registrar entrada de stock
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IncomingRequest  true  "itemId, quantity, supplier, notes"
// @Success      201   {object}  dto.OperationCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/operations/incoming [post]
func (h *OperationHandler) Incoming(c *fiber.Ctx) error {
	var in dto.IncomingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ItemID == "" || in.Quantity <= 0 {
		return badRequest(c, CodeValidation, "itemId y quantity positiva son requeridos")
	}
	out, err := h.uc.RegisterIncoming(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Outgoing godoc
// @Summary      Registrar salida de stock
// @Tags         operations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OutgoingRequest  true  "itemId, quantity, recipient, notes"
// @Success      201   {object}  dto.OperationCreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/operations/outgoing [post]
func (h *OperationHandler) Outgoing(c *fiber.Ctx) error {
	var in dto.OutgoingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.ItemID == "" || in.Quantity <= 0 {
		return badRequest(c, CodeValidation, "itemId y quantity positiva son requeridos")
	}
	out, err := h.uc.RegisterOutgoing(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
