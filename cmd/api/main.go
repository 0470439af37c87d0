package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/median-ltd/invoice-studio/internal/application/export"
	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/application/usecase"
	"github.com/median-ltd/invoice-studio/internal/infrastructure/keyvalue"
	infrapdf "github.com/median-ltd/invoice-studio/internal/infrastructure/pdf"
	"github.com/median-ltd/invoice-studio/internal/infrastructure/presets"
	"github.com/median-ltd/invoice-studio/internal/infrastructure/raster"
	httpRouter "github.com/median-ltd/invoice-studio/internal/interfaces/http"
	"github.com/median-ltd/invoice-studio/pkg/config"
	"github.com/median-ltd/invoice-studio/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Marcador del último preset aplicado: memoria o Redis según config
	var marker ports.MarkerStore
	switch cfg.Marker.Store {
	case "redis":
		store := keyvalue.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer store.Close()
		marker = store
		log.Info().Str("addr", cfg.Redis.Addr).Msg("marcador de presets en Redis")
	default:
		marker = keyvalue.NewMemoryStore()
	}

	draftUC := usecase.NewDraftUseCase()
	presetUC := usecase.NewPresetUseCase(
		presets.NewHTTPSource(cfg.Presets.CompaniesURL),
		presets.NewEmbeddedSource(),
		marker,
		cfg.Marker.Key,
		draftUC,
		log,
	)

	fonts, err := raster.NewFontSet()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar fuentes de rasterización")
	}

	staging := export.NewStaging()
	pipeline := export.NewPipeline(
		staging,
		fonts,
		raster.NewRasterizer(fonts),
		infrapdf.NewGofpdfAssembler(),
		cfg.Export.OutputDir,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // la exportación rasteriza y ensambla en línea
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DraftUC:  draftUC,
		PresetUC: presetUC,
		Pipeline: pipeline,
		Preview:  infrapdf.NewMarotoPreviewRenderer(),
	})

	// Carga inicial del catálogo de presets en segundo plano
	go presetUC.Load(context.Background())

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
