package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/dto"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/inventory"
)

// DashboardHandler expone las vistas derivadas del motor de clasificación.
type DashboardHandler struct {
	uc *inventory.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *inventory.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get godoc
// @Summary      Dashboard: conteos, valor en riesgo, alertas y listas de compra
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
