package export_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/median-ltd/invoice-studio/internal/application/export"
	"github.com/median-ltd/invoice-studio/internal/domain"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
	"github.com/median-ltd/invoice-studio/pkg/logger"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fixedMeasurer struct{}

func (fixedMeasurer) Width(s string, size float64, _ bool) float64 {
	return 0.5 * size * float64(len([]rune(s)))
}

// fakeRaster registra las páginas recibidas; failAt > 0 hace fallar esa
// llamada (contando desde 1).
type fakeRaster struct {
	mu      sync.Mutex
	pages   []*layout.Page
	failAt  int
	release chan struct{} // si no es nil, bloquea hasta que se cierre
}

func (f *fakeRaster) RasterizePNG(_ context.Context, p *layout.Page) ([]byte, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, p)
	if f.failAt > 0 && len(f.pages) == f.failAt {
		return nil, errors.New("fallo simulado de rasterización")
	}
	return []byte(fmt.Sprintf("png-%d", len(f.pages))), nil
}

type fakeAssembler struct {
	gotPages int
}

func (f *fakeAssembler) Assemble(_ context.Context, pages [][]byte) ([]byte, error) {
	f.gotPages = len(pages)
	return []byte("%PDF-fake"), nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newPipeline(staging *export.Staging, raster *fakeRaster, asm *fakeAssembler) *export.Pipeline {
	return export.NewPipeline(staging, fixedMeasurer{}, raster, asm, "", testLogger())
}

func draftWithItems(n int) entity.Invoice {
	inv := entity.NewDraft()
	inv.Items = nil
	for i := 0; i < n; i++ {
		inv.Items = append(inv.Items, entity.LineItem{
			ID:          uuid.NewString(),
			Description: fmt.Sprintf("Servicio %d", i+1),
			Qty:         decimal.NewFromInt(1),
			Price:       decimal.NewFromInt(1500),
		})
	}
	return inv
}

// ── tests ────────────────────────────────────────────────────────────────────

// TestExport_DocumentoMinimo un borrador corto produce un documento de una
// página con el nombre derivado del número.
func TestExport_DocumentoMinimo(t *testing.T) {
	raster := &fakeRaster{}
	asm := &fakeAssembler{}
	p := newPipeline(export.NewStaging(), raster, asm)

	res, err := p.Export(context.Background(), draftWithItems(3))
	require.NoError(t, err)

	assert.Equal(t, "INV-1001.pdf", res.Filename)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, 1, asm.gotPages)
	assert.Equal(t, []byte("%PDF-fake"), res.PDF)
}

// TestExport_TotalesSoloUltimaPagina con muchos ítems salen varias páginas y
// sólo la última lleva totales y pie.
func TestExport_TotalesSoloUltimaPagina(t *testing.T) {
	raster := &fakeRaster{}
	p := newPipeline(export.NewStaging(), raster, &fakeAssembler{})

	res, err := p.Export(context.Background(), draftWithItems(80))
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.Pages, 3, "80 ítems no caben en dos páginas")

	for i, page := range raster.pages {
		isLast := i == len(raster.pages)-1
		assert.Equal(t, isLast, page.Last, "página %d", i+1)
		assert.Equal(t, isLast, hasBlock(page, layout.BlockTotals),
			"los totales sólo van en la última página")
		assert.Equal(t, isLast, hasBlock(page, layout.BlockFooter),
			"el pie sólo va en la última página")
		assert.True(t, hasBlock(page, layout.BlockTableHead),
			"la cabecera de tabla se repite en todas")
	}
}

// TestExport_ParticionCompleta la unión de los ítems de todas las páginas
// rasterizadas reproduce la lista original en orden.
func TestExport_ParticionCompleta(t *testing.T) {
	raster := &fakeRaster{}
	p := newPipeline(export.NewStaging(), raster, &fakeAssembler{})
	inv := draftWithItems(45)

	_, err := p.Export(context.Background(), inv)
	require.NoError(t, err)

	var flat []entity.LineItem
	for _, page := range raster.pages {
		flat = append(flat, page.Items...)
	}
	require.Len(t, flat, len(inv.Items))
	for i := range inv.Items {
		assert.Equal(t, inv.Items[i].ID, flat[i].ID)
	}
}

// TestExport_NombreDeArchivo sin número de factura el nombre cae a
// invoice.pdf.
func TestExport_NombreDeArchivo(t *testing.T) {
	assert.Equal(t, "INV-2024-007.pdf", export.Filename("INV-2024-007"))
	assert.Equal(t, "invoice.pdf", export.Filename(""))
	assert.Equal(t, "invoice.pdf", export.Filename("   "))
}

// TestExport_StagingLimpioTrasExito al terminar no queda ninguna página
// montada en el staging.
func TestExport_StagingLimpioTrasExito(t *testing.T) {
	staging := export.NewStaging()
	p := newPipeline(staging, &fakeRaster{}, &fakeAssembler{})

	_, err := p.Export(context.Background(), draftWithItems(40))
	require.NoError(t, err)
	assert.Equal(t, 0, staging.Count(), "el staging debe quedar vacío")
}

// TestExport_StagingLimpioTrasFallo un fallo de rasterización aborta la
// exportación pero el staging queda igualmente limpio y reutilizable.
func TestExport_StagingLimpioTrasFallo(t *testing.T) {
	staging := export.NewStaging()
	p := newPipeline(staging, &fakeRaster{failAt: 2}, &fakeAssembler{})

	_, err := p.Export(context.Background(), draftWithItems(80))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rasterizar página 2")
	assert.Equal(t, 0, staging.Count())

	// el staging sigue siendo utilizable
	_, err = newPipeline(staging, &fakeRaster{}, &fakeAssembler{}).
		Export(context.Background(), draftWithItems(3))
	assert.NoError(t, err)
}

// TestExport_ConcurrenciaRechazada una segunda exportación mientras la
// primera sigue en curso falla con ErrExportInProgress.
func TestExport_ConcurrenciaRechazada(t *testing.T) {
	staging := export.NewStaging()
	release := make(chan struct{})
	slow := &fakeRaster{release: release}
	p := newPipeline(staging, slow, &fakeAssembler{})

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := p.Export(context.Background(), draftWithItems(3))
		done <- err
	}()
	<-started
	// esperar a que la primera exportación entre en el rasterizador
	for staging.Count() == 0 {
		time.Sleep(time.Millisecond)
	}

	_, err := p.Export(context.Background(), draftWithItems(3))
	assert.ErrorIs(t, err, domain.ErrExportInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 0, staging.Count())
}

// TestExport_SinStaging un pipeline sin staging responde
// ErrStagingUnavailable.
func TestExport_SinStaging(t *testing.T) {
	p := newPipeline(nil, &fakeRaster{}, &fakeAssembler{})
	_, err := p.Export(context.Background(), draftWithItems(1))
	assert.ErrorIs(t, err, domain.ErrStagingUnavailable)
}

func hasBlock(p *layout.Page, kind layout.BlockKind) bool {
	for _, blk := range p.Blocks {
		if blk.Kind == kind {
			return true
		}
	}
	return false
}
