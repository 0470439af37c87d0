package raster_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
	"github.com/median-ltd/invoice-studio/internal/infrastructure/raster"
)

func testMoney(d decimal.Decimal) string {
	return "AED " + d.StringFixed(2)
}

// TestRasterize_DimensionesSobremuestreadas el bitmap mide exactamente la
// página por el factor de sobremuestreo.
func TestRasterize_DimensionesSobremuestreadas(t *testing.T) {
	fonts, err := raster.NewFontSet()
	require.NoError(t, err)
	r := raster.NewRasterizer(fonts)

	inv := entity.NewDraft()
	b := layout.NewBuilder(fonts, testMoney)
	page := b.Build(inv, inv.Items, true)

	data, err := r.RasterizePNG(context.Background(), page)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int(layout.PageWidth*raster.Oversample), img.Bounds().Dx())
	assert.Equal(t, int(layout.PageHeight*raster.Oversample), img.Bounds().Dy())
}

// TestRasterize_FondoPorTema el fondo del bitmap es el color bg de la paleta
// activa, nunca transparente.
func TestRasterize_FondoPorTema(t *testing.T) {
	fonts, err := raster.NewFontSet()
	require.NoError(t, err)
	r := raster.NewRasterizer(fonts)
	b := layout.NewBuilder(fonts, testMoney)

	cases := []struct {
		theme entity.ThemeMode
		want  color.RGBA
	}{
		{entity.ThemeDark, color.RGBA{R: 0x0B, G: 0x0B, B: 0x0E, A: 0xFF}},
		{entity.ThemeLight, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	}
	for _, tc := range cases {
		inv := entity.NewDraft()
		inv.Theme = tc.theme
		page := b.Build(inv, inv.Items, true)

		data, err := r.RasterizePNG(context.Background(), page)
		require.NoError(t, err)
		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		// punto en zona libre del margen izquierdo, bajo la barra de acento
		got := color.RGBAModel.Convert(img.At(5, 200)).(color.RGBA)
		assert.Equal(t, tc.want, got, "fondo del tema %s", tc.theme)
	}
}

// TestRasterize_LogoCorrupto un data URL ilegible hace fallar el rasterizado
// en lugar de producir una página sin logo en silencio.
func TestRasterize_LogoCorrupto(t *testing.T) {
	fonts, err := raster.NewFontSet()
	require.NoError(t, err)
	r := raster.NewRasterizer(fonts)
	b := layout.NewBuilder(fonts, testMoney)

	inv := entity.NewDraft()
	inv.LogoDataURL = "data:image/png;base64,no-es-base64-válido"
	page := b.Build(inv, inv.Items, true)

	_, err = r.RasterizePNG(context.Background(), page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logo")
}

// TestRasterize_LogoValido un PNG inline mínimo se dibuja sin error.
func TestRasterize_LogoValido(t *testing.T) {
	fonts, err := raster.NewFontSet()
	require.NoError(t, err)
	r := raster.NewRasterizer(fonts)
	b := layout.NewBuilder(fonts, testMoney)

	var buf bytes.Buffer
	square := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, png.Encode(&buf, square))

	inv := entity.NewDraft()
	inv.LogoDataURL = "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	page := b.Build(inv, inv.Items, true)

	_, err = r.RasterizePNG(context.Background(), page)
	assert.NoError(t, err)
}
