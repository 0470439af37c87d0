// Package raster rasteriza páginas de layout a bitmaps PNG y aporta las
// métricas de texto reales (opentype) que usa la medición de layout.
package raster

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/median-ltd/invoice-studio/internal/domain/layout"
)

// FontSet fuentes regular/bold con caché de faces por tamaño. Implementa
// layout.TextMeasurer.
type FontSet struct {
	regular *sfnt.Font
	bold    *sfnt.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

var _ layout.TextMeasurer = (*FontSet)(nil)

// NewFontSet carga las fuentes Go empaquetadas.
func NewFontSet() (*FontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parsear fuente regular: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parsear fuente bold: %w", err)
	}
	return &FontSet{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

func (f *FontSet) face(size float64, bold bool) (font.Face, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := faceKey{size: size, bold: bold}
	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: face %.1f: %w", size, err)
	}
	f.faces[key] = face
	return face, nil
}

// Width ancho renderizado de s en unidades de layout.
func (f *FontSet) Width(s string, size float64, bold bool) float64 {
	face, err := f.face(size, bold)
	if err != nil {
		// estimación burda si la face no puede crearse
		return 0.6 * size * float64(len([]rune(s)))
	}
	return float64(font.MeasureString(face, s)) / 64.0
}
