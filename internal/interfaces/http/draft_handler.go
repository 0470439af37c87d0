// Package http handlers y router de la API (Fiber).
package http

import (
	"errors"
	"io"
	nethttp "net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/median-ltd/invoice-studio/internal/application/dto"
	"github.com/median-ltd/invoice-studio/internal/application/usecase"
	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
)

// DraftHandler maneja las peticiones HTTP sobre el borrador de factura.
type DraftHandler struct {
	uc *usecase.DraftUseCase
}

// NewDraftHandler construye el handler inyectando el caso de uso.
func NewDraftHandler(uc *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener el borrador actual
// @Tags         draft
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/draft [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutAgency godoc
// @Summary      Reemplazar los datos del emisor
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AgencyRequest  true  "Datos del emisor"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/draft/agency [put]
func (h *DraftHandler) PutAgency(c *fiber.Ctx) error {
	var in dto.AgencyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetAgency(entity.Agency{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Website: in.Website,
	})
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutClient godoc
// @Summary      Reemplazar los datos del receptor
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "Datos del receptor"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/draft/client [put]
func (h *DraftHandler) PutClient(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetClient(entity.Client{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	})
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutMeta godoc
// @Summary      Reemplazar los metadatos de la factura
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MetaRequest  true  "Metadatos"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/draft/meta [put]
func (h *DraftHandler) PutMeta(c *fiber.Ctx) error {
	var in dto.MetaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetMeta(entity.InvoiceMeta{
		Number:   in.Number,
		Date:     in.Date,
		Due:      in.Due,
		Currency: strings.ToUpper(strings.TrimSpace(in.Currency)),
	})
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutNotes godoc
// @Summary      Reemplazar las notas
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.NotesRequest  true  "Notas"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/draft/notes [put]
func (h *DraftHandler) PutNotes(c *fiber.Ctx) error {
	var in dto.NotesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetNotes(in.Notes)
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutTax godoc
// @Summary      Fijar el porcentaje de impuesto
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TaxRequest  true  "Porcentaje"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/draft/tax [put]
func (h *DraftHandler) PutTax(c *fiber.Ctx) error {
	var in dto.TaxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetTax(in.Pct)
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutDiscount godoc
// @Summary      Fijar el descuento absoluto
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DiscountRequest  true  "Importe"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/draft/discount [put]
func (h *DraftHandler) PutDiscount(c *fiber.Ctx) error {
	var in dto.DiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetDiscount(in.Amount)
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// PutTheme godoc
// @Summary      Cambiar el tema de exportación
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ThemeRequest  true  "light o dark"
// @Success      200   {object}  dto.DraftResponse
// @Router       /api/draft/theme [put]
func (h *DraftHandler) PutTheme(c *fiber.Ctx) error {
	var in dto.ThemeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	h.uc.SetTheme(entity.ParseTheme(in.Mode))
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// AddItem godoc
// @Summary      Añadir una línea en blanco
// @Tags         draft
// @Produce      json
// @Success      201  {object}  dto.LineItemDTO
// @Router       /api/draft/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	it := h.uc.AddItem()
	return c.Status(fiber.StatusCreated).JSON(dto.FromLineItem(it))
}

// PatchItem godoc
// @Summary      Modificar una línea existente
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la línea"
// @Param        body  body  dto.LineItemPatchRequest  true  "Cambios"
// @Success      200   {object}  dto.LineItemDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/draft/items/{id} [patch]
func (h *DraftHandler) PatchItem(c *fiber.Ctx) error {
	var in dto.LineItemPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	it, err := h.uc.UpdateItem(c.Params("id"), usecase.LineItemPatch{
		Description: in.Description,
		Qty:         in.Qty,
		Price:       in.Price,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromLineItem(it))
}

// DeleteItem godoc
// @Summary      Eliminar una línea
// @Tags         draft
// @Produce      json
// @Param        id  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/draft/items/{id} [delete]
func (h *DraftHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveItem(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// UploadLogo godoc
// @Summary      Subir el logo (multipart, campo "logo")
// @Tags         draft
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/draft/logo [post]
func (h *DraftHandler) UploadLogo(c *fiber.Ctx) error {
	fh, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo logo requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	mimeType := nethttp.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_AN_IMAGE", Message: "el archivo no es una imagen"})
	}
	h.uc.SetLogo(data, mimeType)
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

// DeleteLogo godoc
// @Summary      Quitar el logo (vuelve al placeholder)
// @Tags         draft
// @Produce      json
// @Success      200  {object}  dto.DraftResponse
// @Router       /api/draft/logo [delete]
func (h *DraftHandler) DeleteLogo(c *fiber.Ctx) error {
	h.uc.ClearLogo()
	return c.JSON(dto.FromInvoice(h.uc.Snapshot()))
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
