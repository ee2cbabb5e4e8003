package sink

import (
	"bytes"
	"image"
	stdcolor "image/color"
	"image/png"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/viz"
	"github.com/pangenome/gfalook/pkg/viz/color"
)

// RenderPNG rasterizes the frame into a PNG. Text is drawn with the
// built-in 5x8 bitmap font, scaled to the row height.
func RenderPNG(f *viz.Frame, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	s := buildScene(f, &r)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))

	for _, op := range s.rects {
		fillRect(img, op.x, op.y, op.w, op.h, op.c)
	}
	for _, op := range s.lines {
		drawLine(img, op)
	}
	for _, op := range s.texts {
		drawText(img, op)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func rgba(c color.RGB) stdcolor.RGBA {
	return stdcolor.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func fillRect(img *image.RGBA, x, y, w, h int, c color.RGB) {
	px := rgba(c)
	bounds := img.Bounds()
	for yy := y; yy < y+h; yy++ {
		if yy < bounds.Min.Y || yy >= bounds.Max.Y {
			continue
		}
		for xx := x; xx < x+w; xx++ {
			if xx < bounds.Min.X || xx >= bounds.Max.X {
				continue
			}
			img.SetRGBA(xx, yy, px)
		}
	}
}

// drawLine handles the axis-aligned lines the scene produces.
func drawLine(img *image.RGBA, op lineOp) {
	x1, y1, x2, y2 := op.x1, op.y1, op.x2, op.y2
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if y1 == y2 {
		fillRect(img, x1, y1, x2-x1+1, 1, op.c)
		return
	}
	fillRect(img, x1, y1, 1, y2-y1+1, op.c)
}

// drawText renders a string with the 5x8 font, one 8x8 cell per
// character, scaled so the cell height matches op.size. Characters
// outside printable ASCII render as '?'. Truncated labels get the
// trailing-dots glyph appended.
func drawText(img *image.RGBA, op textOp) {
	scale := op.size / 8
	if scale < 1 {
		scale = 1
	}
	x := op.x
	for _, ch := range op.text {
		glyph := byte('?')
		if ch >= 0x20 && ch < 0x7f {
			glyph = byte(ch)
		}
		drawGlyph(img, font5x8[glyph], x, op.y, scale, op.c)
		x += 8 * scale
	}
	if op.truncated {
		drawGlyph(img, trailingDots, x, op.y, scale, op.c)
	}
}

func drawGlyph(img *image.RGBA, rows [8]byte, x, y, scale int, c color.RGB) {
	for ry, bits := range rows {
		for rx := 0; rx < 5; rx++ {
			if bits&(0x80>>rx) == 0 {
				continue
			}
			fillRect(img, x+rx*scale, y+ry*scale, scale, scale, c)
		}
	}
}
