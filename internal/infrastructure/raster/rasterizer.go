package raster

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"

	_ "image/gif"  // formatos de logo admitidos
	_ "image/jpeg" //

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/median-ltd/invoice-studio/internal/application/ports"
	"github.com/median-ltd/invoice-studio/internal/domain/entity"
	"github.com/median-ltd/invoice-studio/internal/domain/layout"
)

// Oversample factor de sobremuestreo del bitmap para nitidez.
const Oversample = 2

const accentBarHeight = 4.0

// Rasterizer dibuja una página de layout en un RGBA del tamaño exacto de la
// página (con sobremuestreo) y la codifica a PNG. El fondo es el color bg de
// la paleta activa.
type Rasterizer struct {
	fonts *FontSet
}

var _ ports.PageRasterizer = (*Rasterizer)(nil)

// NewRasterizer construye el rasterizador.
func NewRasterizer(fonts *FontSet) *Rasterizer {
	return &Rasterizer{fonts: fonts}
}

func (r *Rasterizer) RasterizePNG(ctx context.Context, p *layout.Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pal := p.Theme.Palette()
	w := int(layout.PageWidth * Oversample)
	h := int(layout.PageHeight * Oversample)
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	fillRect(img, 0, 0, w, h, parseHex(pal.BG))
	r.drawAccents(img, pal, w, h)

	for _, bx := range p.Boxes {
		r.drawBox(img, p, pal, bx)
	}
	for _, rl := range p.Rules {
		fillRect(img,
			scale(rl.X1), scale(rl.Y),
			scale(rl.X2)-scale(rl.X1), Oversample,
			roleColor(pal, rl.Role))
	}
	for _, t := range p.Texts {
		if err := r.drawText(img, pal, t); err != nil {
			return nil, err
		}
	}
	if p.Logo != nil {
		if err := r.drawLogo(img, p.Logo); err != nil {
			return nil, fmt.Errorf("raster: logo: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawAccents barras de 4 unidades arriba y abajo; el degradado de acento se
// aproxima con dos mitades de color (invertidas en la barra inferior).
func (r *Rasterizer) drawAccents(img *image.RGBA, pal entity.Palette, w, h int) {
	barH := int(accentBarHeight * Oversample)
	a := parseHex(pal.AccentA)
	b := parseHex(pal.AccentB)
	fillRect(img, 0, 0, w/2, barH, a)
	fillRect(img, w/2, 0, w-w/2, barH, b)
	fillRect(img, 0, h-barH, w/2, barH, b)
	fillRect(img, w/2, h-barH, w-w/2, barH, a)
}

func (r *Rasterizer) drawBox(img *image.RGBA, p *layout.Page, pal entity.Palette, bx layout.Box) {
	x, y := scale(bx.X), scale(bx.Y)
	bw, bh := scale(bx.W), scale(bx.H)
	if bx.Fill {
		fillRect(img, x, y, bw, bh, parseHex(p.Theme.ChipBG()))
	}
	border := roleColor(pal, bx.Border)
	if bx.Dashed {
		dashedRect(img, x, y, bw, bh, border)
		return
	}
	// borde sólido de 1 unidad
	fillRect(img, x, y, bw, Oversample, border)
	fillRect(img, x, y+bh-Oversample, bw, Oversample, border)
	fillRect(img, x, y, Oversample, bh, border)
	fillRect(img, x+bw-Oversample, y, Oversample, bh, border)
}

func (r *Rasterizer) drawText(img *image.RGBA, pal entity.Palette, t layout.Text) error {
	face, err := r.fonts.face(t.Size*Oversample, t.Bold)
	if err != nil {
		return err
	}
	x := t.X * Oversample
	if t.Right {
		x -= float64(font.MeasureString(face, t.S)) / 64.0
	}
	baseline := scale(t.Y) + face.Metrics().Ascent.Ceil()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(roleColor(pal, t.Role)),
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), baseline),
	}
	d.DrawString(t.S)
	return nil
}

func (r *Rasterizer) drawLogo(img *image.RGBA, l *layout.Logo) error {
	src, err := decodeDataURL(l.DataURL)
	if err != nil {
		return err
	}
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return fmt.Errorf("imagen vacía")
	}
	dh := scale(l.H)
	dw := int(math.Round(float64(dh) * float64(sb.Dx()) / float64(sb.Dy())))
	x1 := scale(l.RightX) - dw
	y1 := scale(l.Y)
	dst := image.Rect(x1, y1, x1+dw, y1+dh)
	xdraw.ApproxBiLinear.Scale(img, dst, src, sb, xdraw.Over, nil)
	return nil
}

// decodeDataURL decodifica una imagen inline "data:<mime>;base64,...".
func decodeDataURL(s string) (image.Image, error) {
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("data URL sin separador")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decodificar base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decodificar imagen: %w", err)
	}
	return img, nil
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	xdraw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// dashedRect borde discontinuo (placeholder del logo).
func dashedRect(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	const on, off = 8, 6
	for dx := 0; dx < w; dx += on + off {
		seg := min(on, w-dx)
		fillRect(img, x+dx, y, seg, Oversample, c)
		fillRect(img, x+dx, y+h-Oversample, seg, Oversample, c)
	}
	for dy := 0; dy < h; dy += on + off {
		seg := min(on, h-dy)
		fillRect(img, x, y+dy, Oversample, seg, c)
		fillRect(img, x+w-Oversample, y+dy, Oversample, seg, c)
	}
}

func scale(v float64) int {
	return int(math.Round(v * Oversample))
}

func roleColor(pal entity.Palette, role layout.Role) color.RGBA {
	switch role {
	case layout.RoleSubtext:
		return parseHex(pal.Subtext)
	case layout.RoleLine:
		return parseHex(pal.Line)
	case layout.RoleLineSoft:
		return parseHex(pal.LineSoft)
	default:
		return parseHex(pal.Text)
	}
}

// parseHex convierte #RRGGBB a color.RGBA; una cadena inválida produce negro.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{A: 0xFF}
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		var v int
		if _, err := fmt.Sscanf(s[i*2:i*2+2], "%02x", &v); err != nil {
			return color.RGBA{A: 0xFF}
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xFF}
}
