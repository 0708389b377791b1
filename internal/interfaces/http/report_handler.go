package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler reportes filtrados y exportación.
type ReportHandler struct {
	uc     *reports.ReportUseCase
	export *reports.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase, export *reports.ExportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, export: export}
}

func parseReportQuery(c *fiber.Ctx) (dto.ReportQuery, error) {
	var q dto.ReportQuery
	err := c.QueryParser(&q)
	return q, err
}

// Summary godoc
// @Summary      Totales de operaciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        dateFrom       query  string  false  "YYYY-MM-DD"
// @Param        dateTo         query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        opType         query  string  false  "incoming | outgoing"
// @Param        categoryId     query  string  false  "Categoría"
// @Param        itemQuery      query  string  false  "Nombre o código del artículo"
// @Param        employeeQuery  query  string  false  "Usuario o nombre del empleado"
// @Success      200  {object}  dto.ReportSummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	out, err := h.uc.Summary(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Operations godoc
// @Summary      Operaciones detalladas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportOperationResponse
// @Router       /api/reports/operations [get]
func (h *ReportHandler) Operations(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	out, err := h.uc.Operations(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByCategory godoc
// @Summary      Stock por categoría
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryReportResponse
// @Router       /api/reports/by-category [get]
func (h *ReportHandler) ByCategory(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	out, err := h.uc.ByCategory(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopItems godoc
// @Summary      Artículos con más movimiento
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TopItemResponse
// @Router       /api/reports/top-items [get]
func (h *ReportHandler) TopItems(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	out, err := h.uc.TopItems(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Movement godoc
// @Summary      Movimiento por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        itemId     query  string  false  "Artículo"
// @Success      200  {object}  dto.MovementReportResponse
// @Router       /api/reports/movement [get]
func (h *ReportHandler) Movement(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	out, err := h.uc.Movement(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar dataset
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        dataset  query  string  true   "items | operations | statistics"
// @Param        format   query  string  false  "csv | json | xml | pdf"
// @Param        charset  query  string  false  "utf-8 | windows-1251 (solo csv)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var q dto.ExportQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, CodeValidation, "parámetros inválidos")
	}
	if q.Dataset == "" {
		return badRequest(c, CodeValidation, "dataset es requerido")
	}
	file, err := h.export.Export(c.UserContext(), q.Dataset, q.Format, q.Charset)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	return c.Send(file.Body)
}
