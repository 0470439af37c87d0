package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/median-ltd/invoice-studio/internal/application/export"
	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DraftUC  *usecase.DraftUseCase
	PresetUC *usecase.PresetUseCase
	Pipeline *export.Pipeline
	Preview  ports.PreviewRenderer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Borrador (estado único en memoria)
	draft := api.Group("/draft")
	draftHandler := NewDraftHandler(deps.DraftUC)
	draft.Get("/", draftHandler.Get)
	draft.Put("/agency", draftHandler.PutAgency)
	draft.Put("/client", draftHandler.PutClient)
	draft.Put("/meta", draftHandler.PutMeta)
	draft.Put("/notes", draftHandler.PutNotes)
	draft.Put("/tax", draftHandler.PutTax)
	draft.Put("/discount", draftHandler.PutDiscount)
	draft.Put("/theme", draftHandler.PutTheme)
	draft.Post("/items", draftHandler.AddItem)
	draft.Patch("/items/:id", draftHandler.PatchItem)
	draft.Delete("/items/:id", draftHandler.DeleteItem)
	draft.Post("/logo", draftHandler.UploadLogo)
	draft.Delete("/logo", draftHandler.DeleteLogo)

	// Presets de compañías
	companies := api.Group("/companies")
	presetHandler := NewPresetHandler(deps.PresetUC)
	companies.Get("/", presetHandler.List)
	companies.Post("/reload", presetHandler.Reload)
	companies.Post("/:name/apply", presetHandler.Apply)

	// Exportación y vista previa
	exportHandler := NewExportHandler(deps.DraftUC, deps.Pipeline, deps.Preview)
	api.Post("/export", exportHandler.Export)
	api.Get("/preview", exportHandler.Preview)
}
