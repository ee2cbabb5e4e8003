package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/pangenome/gfalook/pkg/viz"
	"github.com/pangenome/gfalook/pkg/viz/color"
)

// RenderSVG serializes the frame as a standalone SVG document.
func RenderSVG(f *viz.Frame, opts ...Option) []byte {
	r := newRenderer(opts...)
	s := buildScene(f, &r)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		s.width, s.height, s.width, s.height)

	for _, op := range s.rects {
		fmt.Fprintf(&buf, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
			op.x, op.y, op.w, op.h, hexColor(op.c))
	}
	for _, op := range s.lines {
		fmt.Fprintf(&buf, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			op.x1, op.y1, op.x2, op.y2, hexColor(op.c))
	}
	for _, op := range s.texts {
		// Dominant-baseline keeps the y anchor at the glyph top, matching
		// the raster sink's coordinate convention.
		fmt.Fprintf(&buf, `<text x="%d" y="%d" font-family="monospace" font-size="%d" fill="%s" dominant-baseline="hanging">%s</text>`+"\n",
			op.x, op.y, op.size, hexColor(op.c), escapeXML(op.text))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func hexColor(c color.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
