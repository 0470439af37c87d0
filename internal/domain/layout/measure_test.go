package layout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
)

// fixedMeasurer métrica determinista para tests: medio punto por carácter.
type fixedMeasurer struct{}

func (fixedMeasurer) Width(s string, size float64, _ bool) float64 {
	return 0.5 * size * float64(len([]rune(s)))
}

func testMoney(d decimal.Decimal) string {
	return "AED " + d.StringFixed(2)
}

func buildDraft(items int) entity.Invoice {
	inv := entity.NewDraft()
	inv.Items = buildItems(items)
	return inv
}

// ── Página de medición ───────────────────────────────────────────────────────

// TestReadMetrics_PaginaDePrueba la página sintética (sin bloque de cierre,
// como la construye el pipeline) aporta métricas positivas y coherentes: la
// tabla empieza después de la cabecera del documento.
func TestReadMetrics_PaginaDePrueba(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)

	inv := buildDraft(0)
	inv.Items = layout.ProbeItems()
	page := b.Build(inv, inv.Items, false)

	assert.False(t, hasBlock(page, layout.BlockTotals), "la página de medición no lleva totales")
	assert.False(t, hasBlock(page, layout.BlockFooter), "la página de medición no lleva pie")

	m := layout.ReadMetrics(page)
	assert.Greater(t, m.HeaderHeight, 0.0, "la banda de cabecera debe medirse")
	assert.Greater(t, m.RowHeight, 0.0, "la fila de prueba debe medirse")
	assert.Greater(t, m.UsedTop, 100.0, "la tabla empieza bajo cabecera, chips y partes")
	assert.Less(t, m.UsedTop, layout.PageHeight/2, "la introducción no puede comerse media página")
}

// TestReadMetrics_IndependienteDelCierre las métricas de tabla no dependen de
// si la página lleva o no el bloque de totales y pie: la lectura sólo mira la
// banda de cabecera y la primera fila.
func TestReadMetrics_IndependienteDelCierre(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)
	inv := buildDraft(0)
	inv.Items = layout.ProbeItems()

	sinCierre := layout.ReadMetrics(b.Build(inv, inv.Items, false))
	conCierre := layout.ReadMetrics(b.Build(inv, inv.Items, true))

	assert.Equal(t, sinCierre, conCierre)
}

// TestReadMetrics_SinFilas sin filas medibles se usa la altura de reserva.
func TestReadMetrics_SinFilas(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)
	page := b.Build(buildDraft(0), nil, false)

	m := layout.ReadMetrics(page)
	assert.Equal(t, layout.FallbackRowHeight, m.RowHeight,
		"sin filas la métrica cae a la altura de reserva")
}

// TestProbeItems_ContenidoFijo las filas de prueba son siempre seis y de
// contenido estable, para que la medición no dependa del borrador real.
func TestProbeItems_ContenidoFijo(t *testing.T) {
	items := layout.ProbeItems()
	require.Len(t, items, 6)
	for i, it := range items {
		assert.NotEmpty(t, it.ID)
		assert.Contains(t, it.Description, "Measure row")
		assert.True(t, it.Qty.Equal(decimal.NewFromInt(1)), "fila %d", i)
		assert.True(t, it.Price.Equal(decimal.NewFromInt(1000)), "fila %d", i)
	}
}

// ── Capacidades ──────────────────────────────────────────────────────────────

// TestComputeCapacities_ModeloBasico con métricas razonables las páginas
// siguientes admiten al menos tantas filas como la primera.
func TestComputeCapacities_ModeloBasico(t *testing.T) {
	caps := layout.ComputeCapacities(layout.Metrics{
		HeaderHeight: 40,
		RowHeight:    32,
		UsedTop:      300,
	})

	assert.GreaterOrEqual(t, caps.First, 1)
	assert.GreaterOrEqual(t, caps.Other, caps.First,
		"sin bloque de introducción caben al menos las mismas filas")
}

// TestComputeCapacities_SueloUno filas gigantes nunca dejan la capacidad por
// debajo de 1: el documento siempre progresa.
func TestComputeCapacities_SueloUno(t *testing.T) {
	caps := layout.ComputeCapacities(layout.Metrics{
		HeaderHeight: 40,
		RowHeight:    5000,
		UsedTop:      300,
	})

	assert.Equal(t, 1, caps.First)
	assert.Equal(t, 1, caps.Other)
}

// TestComputeCapacities_FilaInvalida alturas cero o negativas caen a la
// altura de reserva en lugar de dividir por cero.
func TestComputeCapacities_FilaInvalida(t *testing.T) {
	for _, rowH := range []float64{0, -10} {
		caps := layout.ComputeCapacities(layout.Metrics{
			HeaderHeight: 40,
			RowHeight:    rowH,
			UsedTop:      300,
		})
		assert.GreaterOrEqual(t, caps.First, 1)
		assert.GreaterOrEqual(t, caps.Other, 1)
	}
}

// ── Construcción de páginas ──────────────────────────────────────────────────

// TestBuild_TotalesSoloUltima los bloques de totales y pie aparecen sólo en la
// página construida con last=true.
func TestBuild_TotalesSoloUltima(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)
	inv := buildDraft(4)

	middle := b.Build(inv, inv.Items[:2], false)
	last := b.Build(inv, inv.Items[2:], true)

	assert.False(t, hasBlock(middle, layout.BlockTotals), "página intermedia sin totales")
	assert.False(t, hasBlock(middle, layout.BlockFooter), "página intermedia sin pie")
	assert.True(t, hasBlock(last, layout.BlockTotals))
	assert.True(t, hasBlock(last, layout.BlockFooter))
}

// TestBuild_CabeceraEnTodas la banda de cabecera de la tabla se repite en
// todas las páginas.
func TestBuild_CabeceraEnTodas(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)
	inv := buildDraft(4)

	for _, last := range []bool{false, true} {
		page := b.Build(inv, inv.Items[:2], last)
		assert.True(t, hasBlock(page, layout.BlockHeader))
		assert.True(t, hasBlock(page, layout.BlockChips))
		assert.True(t, hasBlock(page, layout.BlockTableHead))
	}
}

// TestBuild_PlaceholderLogo sin logo se pinta la caja discontinua; con logo
// inline se referencia la imagen y desaparece el placeholder.
func TestBuild_PlaceholderLogo(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)

	inv := buildDraft(1)
	page := b.Build(inv, inv.Items, true)
	require.Nil(t, page.Logo)
	dashed := false
	for _, bx := range page.Boxes {
		if bx.Dashed {
			dashed = true
		}
	}
	assert.True(t, dashed, "sin logo debe existir la caja discontinua")

	inv.LogoDataURL = "data:image/png;base64,AAAA"
	page = b.Build(inv, inv.Items, true)
	require.NotNil(t, page.Logo)
	assert.Equal(t, inv.LogoDataURL, page.Logo.DataURL)
}

// TestBuild_FallbacksDeCliente los campos vacíos del receptor se sustituyen
// por textos de relleno, nunca por huecos.
func TestBuild_FallbacksDeCliente(t *testing.T) {
	b := layout.NewBuilder(fixedMeasurer{}, testMoney)
	inv := buildDraft(1)
	inv.Client = entity.Client{}

	page := b.Build(inv, inv.Items, true)

	assert.True(t, hasText(page, "Client Name"))
	assert.True(t, hasText(page, "Address"))
}

func hasBlock(p *layout.Page, kind layout.BlockKind) bool {
	for _, blk := range p.Blocks {
		if blk.Kind == kind {
			return true
		}
	}
	return false
}

func hasText(p *layout.Page, s string) bool {
	for _, txt := range p.Texts {
		if txt.S == s {
			return true
		}
	}
	return false
}
