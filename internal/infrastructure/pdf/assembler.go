// Package pdf ensamblado del documento exportado y vista previa vectorial.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
)

// GofpdfAssembler compone el documento final: una página A4 por imagen, con
// escala fit-to-page que preserva la relación de aspecto (primero por ancho,
// re-escala por alto si desborda) y la imagen centrada.
type GofpdfAssembler struct{}

var _ ports.DocumentAssembler = (*GofpdfAssembler)(nil)

// NewGofpdfAssembler construye el ensamblador.
func NewGofpdfAssembler() *GofpdfAssembler { return &GofpdfAssembler{} }

func (a *GofpdfAssembler) Assemble(ctx context.Context, pages [][]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := gofpdf.New("P", "pt", "A4", "")
	pageW, pageH := doc.GetPageSize()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}

	for i, img := range pages {
		name := fmt.Sprintf("page-%d", i+1)
		info := doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(img))
		if doc.Err() {
			return nil, fmt.Errorf("pdf: registrar imagen %d: %w", i+1, doc.Error())
		}

		imgW := pageW
		imgH := info.Height() * imgW / info.Width()
		if imgH > pageH {
			imgH = pageH
			imgW = info.Width() * imgH / info.Height()
		}

		doc.AddPage()
		doc.ImageOptions(name, (pageW-imgW)/2, (pageH-imgH)/2, imgW, imgH, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return buf.Bytes(), nil
}
