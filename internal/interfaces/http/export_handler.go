package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/median-ltd/invoice-studio/internal/application/dto"
	"github.com/median-ltd/invoice-studio/internal/application/export"
	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/application/usecase"
	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/pkg/money"
)

// ExportHandler exportación paginada y vista previa del borrador.
type ExportHandler struct {
	draft    *usecase.DraftUseCase
	pipeline *export.Pipeline
	preview  ports.PreviewRenderer
}

// NewExportHandler construye el handler.
func NewExportHandler(draft *usecase.DraftUseCase, pipeline *export.Pipeline, preview ports.PreviewRenderer) *ExportHandler {
	return &ExportHandler{draft: draft, pipeline: pipeline, preview: preview}
}

// Export godoc
// @Summary      Exportar el borrador como documento paginado
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      409  {object}  dto.ErrorResponse  "Exportación ya en curso"
// @Failure      503  {object}  dto.ErrorResponse  "Staging no disponible"
// @Router       /api/export [post]
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	res, err := h.pipeline.Export(c.Context(), h.draft.Snapshot())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExportInProgress):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXPORT_IN_PROGRESS", Message: "exportación ya en curso"})
		case errors.Is(err, domain.ErrStagingUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STAGING_UNAVAILABLE", Message: "área de staging no disponible"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT_FAILED", Message: err.Error()})
		}
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", res.Filename))
	return c.Send(res.PDF)
}

// Preview godoc
// @Summary      Vista previa continua del borrador
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/preview [get]
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	inv := h.draft.Snapshot()
	fm := money.New(inv.Meta.Currency)
	pdf, err := h.preview.RenderPreview(c.Context(), inv, fm.Format)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PREVIEW_FAILED", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="preview.pdf"`)
	return c.Send(pdf)
}
