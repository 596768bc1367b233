package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/dto"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/application/scan"
	"github.com/vasconcelosjoey-hue/lote-certo/internal/domain"
)

// ScanHandler maneja el pipeline de captura por cámara.
type ScanHandler struct {
	uc *scan.UseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *scan.UseCase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// Process godoc
// @Summary      Extraer etiqueta desde fotos (1 a 3 capturas en base64)
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanRequest  true  "Capturas JPEG en base64"
// @Success      200   {object}  dto.ScanDraftDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan [post]
func (h *ScanHandler) Process(c *fiber.Ctx) error {
	var in dto.ScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ProcessCapture(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirmar borrador y guardar el lote
// @Tags         scan
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfirmScanRequest  true  "Borrador validado + logística"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scan/confirm [post]
func (h *ScanHandler) Confirm(c *fiber.Ctx) error {
	var in dto.ConfirmScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ConfirmCapture(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
