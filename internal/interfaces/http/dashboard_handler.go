package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/analytics"
)

// DashboardHandler maneja el resumen del dashboard (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats GET /api/dashboard/stats
// Acepta as_of (RFC3339) para fijar el instante de referencia; por defecto
// usa el reloj del servidor.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errValidation("as_of inválido (RFC3339)"))
		}
		asOf = t
	}
	stats, err := h.uc.GetStats(c.Context(), asOf)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
