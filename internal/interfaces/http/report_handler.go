package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/analytics"
	"github.com/jhoicas/farmacia-pos/internal/application/dto"
)

// ReportHandler maneja los reportes de ventas e inventario (protegido).
type ReportHandler struct {
	uc *analytics.ReportsUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *analytics.ReportsUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// SalesChart GET /api/reports/sales-chart
func (h *ReportHandler) SalesChart(c *fiber.Ctx) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errValidation("as_of inválido (RFC3339)"))
	}
	days := c.QueryInt("days", 30)
	points, err := h.uc.GetSalesChart(c.Context(), asOf, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}

// TopProducts GET /api/reports/top-products
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errValidation("from inválido (RFC3339)"))
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errValidation("to inválido (RFC3339)"))
	}
	limit := c.QueryInt("limit", 10)
	top, err := h.uc.GetTopProducts(c.Context(), from, to, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(top)
}

// ExpiringProducts GET /api/reports/expiring-products
func (h *ReportHandler) ExpiringProducts(c *fiber.Ctx) error {
	asOf, err := asOfQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errValidation("as_of inválido (RFC3339)"))
	}
	days := c.QueryInt("days", 30)
	list, err := h.uc.GetExpiringProducts(c.Context(), asOf, days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Sales GET /api/reports/sales
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errValidation("from inválido (RFC3339)"))
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errValidation("to inválido (RFC3339)"))
	}
	limit := c.QueryInt("limit", 500)
	offset := c.QueryInt("offset", 0)
	list, err := h.uc.GetSalesReport(c.Context(), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return c.JSON(out)
}

// Inventory GET /api/reports/inventory
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	items, err := h.uc.GetInventoryReport(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

func asOfQuery(c *fiber.Ctx) (time.Time, error) {
	if raw := c.Query("as_of"); raw != "" {
		return time.Parse(time.RFC3339, raw)
	}
	return time.Now().UTC(), nil
}

func errValidation(msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: "VALIDATION", Message: msg}
}
