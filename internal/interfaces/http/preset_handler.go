package http

import (
	"context"
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/median-ltd/invoice-studio/internal/application/dto"
	"github.com/median-ltd/invoice-studio/internal/application/usecase"
	"github.com/median-ltd/invoice-studio/internal/domain"
)

// PresetHandler maneja el catálogo de presets de compañías.
type PresetHandler struct {
	uc *usecase.PresetUseCase
}

// NewPresetHandler construye el handler inyectando el caso de uso.
func NewPresetHandler(uc *usecase.PresetUseCase) *PresetHandler {
	return &PresetHandler{uc: uc}
}

// List godoc
// @Summary      Listar presets de compañías
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.CompaniesResponse
// @Router       /api/companies [get]
func (h *PresetHandler) List(c *fiber.Ctx) error {
	list, loading, status := h.uc.Companies()
	out := dto.CompaniesResponse{
		Companies: make([]dto.CompanyDTO, 0, len(list)),
		Loading:   loading,
		Status:    status,
	}
	for _, company := range list {
		out.Companies = append(out.Companies, dto.FromCompany(company))
	}
	return c.JSON(out)
}

// Reload godoc
// @Summary      Recargar el catálogo de presets
// @Tags         companies
// @Produce      json
// @Success      202  {object}  dto.CompaniesResponse
// @Router       /api/companies/reload [post]
func (h *PresetHandler) Reload(c *fiber.Ctx) error {
	// la recarga sobrevive a la petición: no puede colgar del contexto fasthttp
	go h.uc.Load(context.Background())
	list, loading, status := h.uc.Companies()
	out := dto.CompaniesResponse{
		Companies: make([]dto.CompanyDTO, 0, len(list)),
		Loading:   loading,
		Status:    status,
	}
	for _, company := range list {
		out.Companies = append(out.Companies, dto.FromCompany(company))
	}
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// Apply godoc
// @Summary      Aplicar un preset al borrador
// @Tags         companies
// @Produce      json
// @Param        name  path  string  true  "Nombre del preset"
// @Success      200   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/companies/{name}/apply [post]
func (h *PresetHandler) Apply(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_NAME", Message: "nombre inválido"})
	}
	company, err := h.uc.Apply(c.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrPresetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRESET_NOT_FOUND", Message: "preset no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromCompany(company))
}
