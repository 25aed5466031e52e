package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-inquiry-api/internal/application/dto"
	appsales "github.com/jhoicas/sales-inquiry-api/internal/application/sales"
	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/pkg/metrics"
)

// SalesHandler consulta y exportación de ventas del empleado autenticado.
type SalesHandler struct {
	uc      *appsales.SalesUseCase
	metrics *metrics.Metrics
}

// NewSalesHandler construye el handler de ventas. m puede ser nil.
func NewSalesHandler(uc *appsales.SalesUseCase, m *metrics.Metrics) *SalesHandler {
	return &SalesHandler{uc: uc, metrics: m}
}

// Search godoc
// @Summary      Consultar ventas
// @Description  Devuelve las ventas dentro del ámbito de acceso del empleado, filtradas por cliente y/o producto.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        customerCode  query  string  false  "subcadena del código de cliente"
// @Param        goodsCode     query  string  false  "subcadena del código de producto"
// @Success      200  {array}   dto.SalesRecordResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SalesHandler) Search(c *fiber.Ctx) error {
	claim, criteria, err := salesRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	rows, err := h.uc.Search(c.UserContext(), claim, criteria)
	if err != nil {
		return writeError(c, err)
	}
	h.metrics.ObserveSalesRows("search", len(rows))
	return c.JSON(dto.ToSalesRecordResponses(rows))
}

// ExportXLSX godoc
// @Summary      Exportar ventas a Excel
// @Tags         sales
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        customerCode  query  string  false  "subcadena del código de cliente"
// @Param        goodsCode     query  string  false  "subcadena del código de producto"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales/export [get]
func (h *SalesHandler) ExportXLSX(c *fiber.Ctx) error {
	claim, criteria, err := salesRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ExportXLSX(c.UserContext(), claim, criteria)
	if err != nil {
		return writeError(c, err)
	}
	h.metrics.ObserveSalesRows("xlsx", out.Rows)
	return sendAttachment(c, out)
}

// ExportPDF godoc
// @Summary      Exportar ventas a PDF
// @Tags         sales
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        customerCode  query  string  false  "subcadena del código de cliente"
// @Param        goodsCode     query  string  false  "subcadena del código de producto"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales/export/pdf [get]
func (h *SalesHandler) ExportPDF(c *fiber.Ctx) error {
	claim, criteria, err := salesRequest(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ExportPDF(c.UserContext(), claim, criteria)
	if err != nil {
		return writeError(c, err)
	}
	h.metrics.ObserveSalesRows("pdf", out.Rows)
	return sendAttachment(c, out)
}

// salesRequest obtiene la sesión verificada y los filtros de la query string.
func salesRequest(c *fiber.Ctx) (entity.SessionClaim, entity.SalesCriteria, error) {
	claim, ok := GetSession(c)
	if !ok {
		return claim, entity.SalesCriteria{}, domain.ErrUnauthenticated
	}
	var in dto.SalesSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return claim, entity.SalesCriteria{}, fmt.Errorf("%w: query string: %v", domain.ErrValidation, err)
	}
	return claim, in.Criteria(), nil
}

func sendAttachment(c *fiber.Ctx, out *appsales.Export) error {
	c.Attachment(out.Filename)
	c.Set(fiber.HeaderContentType, out.ContentType)
	return c.Send(out.Content)
}
