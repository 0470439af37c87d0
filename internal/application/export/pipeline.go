package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
	"github.com/median-ltd/invoice-studio/pkg/logger"
	"github.com/median-ltd/invoice-studio/pkg/money"
)

// Result documento exportado listo para servir.
type Result struct {
	Filename string
	PDF      []byte
	Pages    int
}

// Pipeline exportación completa de un snapshot de factura:
//
//  1. construye una página sintética de medición y lee sus métricas
//  2. calcula capacidades y reparte los ítems en páginas
//  3. construye las páginas reales (totales/footer sólo en la última)
//  4. rasteriza cada página a PNG sobremuestreado
//  5. ensambla el documento multipágina
//
// Las páginas viven en el staging sólo mientras dura la exportación.
type Pipeline struct {
	staging   *Staging
	measurer  layout.TextMeasurer
	raster    ports.PageRasterizer
	assembler ports.DocumentAssembler
	outputDir string
	log       *logger.Logger
}

// NewPipeline construye el pipeline. outputDir vacío desactiva la copia a
// disco del documento generado.
func NewPipeline(
	staging *Staging,
	measurer layout.TextMeasurer,
	raster ports.PageRasterizer,
	assembler ports.DocumentAssembler,
	outputDir string,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		staging:   staging,
		measurer:  measurer,
		raster:    raster,
		assembler: assembler,
		outputDir: outputDir,
		log:       log,
	}
}

// Export ejecuta el pipeline sobre el snapshot dado.
func (p *Pipeline) Export(ctx context.Context, inv entity.Invoice) (*Result, error) {
	if p.staging == nil {
		return nil, domain.ErrStagingUnavailable
	}
	release, err := p.staging.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	fm := money.New(inv.Meta.Currency)
	builder := layout.NewBuilder(p.measurer, fm.Format)

	// Página sintética de medición: misma introducción y tabla que una página
	// real, con filas placeholder de contenido fijo y sin bloque de cierre.
	probeInv := inv
	probeInv.Items = layout.ProbeItems()
	probe := builder.Build(probeInv, probeInv.Items, false)
	p.staging.mount(probe)
	metrics := layout.ReadMetrics(probe)
	p.staging.unmount()

	caps := layout.ComputeCapacities(metrics)
	chunks := layout.Paginate(inv.Items, caps.First, caps.Other)

	pages := make([]*layout.Page, 0, len(chunks))
	for i, chunk := range chunks {
		page := builder.Build(inv, chunk, i == len(chunks)-1)
		p.staging.mount(page)
		pages = append(pages, page)
	}

	images := make([][]byte, 0, len(pages))
	for i, page := range pages {
		img, err := p.raster.RasterizePNG(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("rasterizar página %d: %w", i+1, err)
		}
		images = append(images, img)
	}

	pdf, err := p.assembler.Assemble(ctx, images)
	if err != nil {
		return nil, fmt.Errorf("ensamblar documento: %w", err)
	}

	res := &Result{Filename: Filename(inv.Meta.Number), PDF: pdf, Pages: len(pages)}
	p.writeCopy(res)

	p.log.Info().
		Str("filename", res.Filename).
		Int("pages", res.Pages).
		Int("items", len(inv.Items)).
		Int("first_capacity", caps.First).
		Int("other_capacity", caps.Other).
		Msg("Exportación completada")
	return res, nil
}

// writeCopy guarda una copia del documento en outputDir si está configurado.
// Un fallo de escritura no invalida la exportación: sólo se registra.
func (p *Pipeline) writeCopy(res *Result) {
	if p.outputDir == "" {
		return
	}
	path := filepath.Join(p.outputDir, res.Filename)
	if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
		p.log.Warn().Err(err).Str("path", path).Msg("No se pudo guardar la copia del documento")
	}
}

// Filename nombre de descarga derivado del número de factura.
func Filename(number string) string {
	number = strings.TrimSpace(number)
	if number == "" {
		return "invoice.pdf"
	}
	return number + ".pdf"
}
