// Package ports define los puertos de salida de la capa de aplicación.
// Los adaptadores concretos viven en internal/infrastructure; la aplicación
// sólo conoce estos contratos (DIP), lo que permite sustituirlos en tests.
package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
)

// PageRasterizer rasteriza una página de layout a un bitmap PNG de tamaño
// fijo con el fondo de la paleta activa.
type PageRasterizer interface {
	RasterizePNG(ctx context.Context, p *layout.Page) ([]byte, error)
}

// DocumentAssembler ensambla las imágenes de página, en orden, en un
// documento multipágina con escala fit-to-page.
type DocumentAssembler interface {
	Assemble(ctx context.Context, pages [][]byte) ([]byte, error)
}

// MarkerStore almacén clave-valor para el marcador de último preset
// aplicado. Get devuelve (valor, encontrado, error).
type MarkerStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// PresetSource devuelve la lista ordenada de presets de compañías.
type PresetSource interface {
	Fetch(ctx context.Context) ([]entity.Company, error)
}

// PreviewRenderer genera el documento de vista previa (flujo continuo, sin
// paginación manual) a partir del snapshot actual.
type PreviewRenderer interface {
	RenderPreview(ctx context.Context, inv entity.Invoice, money func(decimal.Decimal) string) ([]byte, error)
}
