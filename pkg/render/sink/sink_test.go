package sink

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/viz"
	"github.com/pangenome/gfalook/pkg/viz/cluster"
	"github.com/pangenome/gfalook/pkg/viz/color"
	"github.com/pangenome/gfalook/pkg/viz/layout"
)

var (
	red  = color.RGB{R: 200, G: 30, B: 30}
	blue = color.RGB{R: 30, G: 30, B: 200}
)

// testFrame builds a two-path frame by hand: 4 bins, path "alpha"
// solid red, path "b" blue with a hole at bin 2.
func testFrame() *viz.Frame {
	plan := layout.Rows([]string{"alpha", "b"}, nil, layout.Config{PathHeight: 10})
	return &viz.Frame{
		Bins:     4,
		BinWidth: 1,
		Plan:     plan,
		Rows: []viz.FrameRow{
			{
				Name:       "alpha",
				NameColor:  red,
				Colors:     []color.RGB{red, red, red, red},
				Present:    []bool{true, true, true, true},
				Annotation: -1,
			},
			{
				Name:       "b",
				NameColor:  blue,
				Colors:     []color.RGB{blue, blue, blue, blue},
				Present:    []bool{true, true, false, true},
				Annotation: -1,
			},
		},
	}
}

func TestRenderSVGBasic(t *testing.T) {
	data := RenderSVG(testFrame())
	svg := string(data)

	// charSize 8, longest label "alpha" -> text column 5*8+4 = 44,
	// canvas 44+4 x 20.
	if !strings.Contains(svg, `width="48" height="20"`) {
		t.Errorf("unexpected canvas size in:\n%s", svg)
	}
	if !strings.Contains(svg, ">alpha</text>") {
		t.Error("missing path name")
	}
	// Present bins merge into one rect per run: alpha covers all 4 bins.
	if !strings.Contains(svg, `x="44" y="0" width="4"`) {
		t.Error("missing merged bin run for first path")
	}
	if !strings.Contains(svg, `fill="#c81e1e"`) {
		t.Error("missing run color")
	}
}

func TestRenderSVGEscapesNames(t *testing.T) {
	f := testFrame()
	f.Rows[0].Name = "a<b&c"
	f.Plan.Rows[0].Label = "a<b&c"

	svg := string(RenderSVG(f))
	if !strings.Contains(svg, "a&lt;b&amp;c") {
		t.Errorf("name not XML-escaped:\n%s", svg)
	}
	if strings.Contains(svg, ">a<b&c<") {
		t.Error("raw name leaked into markup")
	}
}

func TestRenderSVGHiddenNames(t *testing.T) {
	svg := string(RenderSVG(testFrame(), WithHiddenNames()))
	if !strings.Contains(svg, `width="4" height="20"`) {
		t.Errorf("expected 4x20 canvas without name column:\n%s", svg)
	}
	if strings.Contains(svg, "alpha") {
		t.Error("name rendered despite WithHiddenNames")
	}
}

func TestRenderSVGDendrogram(t *testing.T) {
	f := testFrame()
	f.Dendrogram = &cluster.Dendrogram{
		Merges:    []cluster.Merge{{Left: 0, Right: 1, Height: 0.4, Size: 2}},
		LeafOrder: []int{0, 1},
		MaxHeight: 0.4,
	}
	f.DendrogramWidth = 100
	for i := range f.Plan.Rows {
		f.Plan.Rows[i].ClusterID = 0
	}

	svg := string(RenderSVG(f))
	if !strings.Contains(svg, `stroke="#505050"`) {
		t.Error("missing dendrogram lines")
	}
	// Root merged at max height sits at the panel's left edge (x = 0).
	if !strings.Contains(svg, `x1="0"`) {
		t.Errorf("root merge not at panel edge:\n%s", svg)
	}
}

func TestRenderSVGRepresentativesDendrogram(t *testing.T) {
	// Representative-only display keeps one row per cluster while the
	// dendrogram still has one leaf per clustered path. Rendering must
	// not index rows by leaf position.
	plan := layout.Rows([]string{"a (n=3)"}, []int{0}, layout.Config{PathHeight: 10})
	f := &viz.Frame{
		Bins: 4,
		Plan: plan,
		Rows: []viz.FrameRow{
			{
				Name:       "a",
				Colors:     []color.RGB{red, red, red, red},
				Present:    []bool{true, true, true, true},
				Annotation: -1,
			},
		},
		Dendrogram: &cluster.Dendrogram{
			Merges: []cluster.Merge{
				{Left: 0, Right: 1, Height: 0.2, Size: 2},
				{Left: 3, Right: 2, Height: 0.5, Size: 3},
			},
			LeafOrder: []int{0, 1, 2},
			MaxHeight: 0.5,
		},
		DendrogramWidth: 100,
	}

	svg := string(RenderSVG(f))
	if strings.Contains(svg, `stroke="#505050"`) {
		t.Error("dendrogram drawn with fewer rows than leaves")
	}
	if !strings.Contains(svg, ">a (n=3)</text>") {
		t.Error("missing representative label")
	}
}

func TestRenderSVGEmptyFrame(t *testing.T) {
	svg := string(RenderSVG(&viz.Frame{Plan: &layout.Plan{}, Empty: true}))
	if !strings.Contains(svg, "no paths to display") {
		t.Error("empty frame should carry a placeholder message")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testFrame())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 48 || h != 20 {
		t.Fatalf("canvas = %dx%d, want 48x20", w, h)
	}

	tests := []struct {
		name    string
		x, y    int
		r, g, b uint32
	}{
		{"first path bin", 44, 4, 200, 30, 30},
		{"row border gap", 44, 9, 255, 255, 255},
		{"second path hole", 46, 14, 255, 255, 255},
		{"second path bin", 44, 14, 30, 30, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, _ := img.At(tt.x, tt.y).RGBA()
			if r>>8 != tt.r || g>>8 != tt.g || b>>8 != tt.b {
				t.Errorf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)",
					tt.x, tt.y, r>>8, g>>8, b>>8, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestRenderPNGWithoutBorders(t *testing.T) {
	data, err := RenderPNG(testFrame(), WithoutBorders())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Without borders row 0 paints its full 10px height.
	r, g, b, _ := img.At(44, 9).RGBA()
	if r>>8 != 200 || g>>8 != 30 || b>>8 != 30 {
		t.Errorf("pixel (44,9) = (%d,%d,%d), want run color", r>>8, g>>8, b>>8)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	svgPath := filepath.Join(dir, "out.svg")
	if err := WriteFile(svgPath, testFrame()); err != nil {
		t.Fatalf("WriteFile svg: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Error("svg output missing XML prolog")
	}

	pngPath := filepath.Join(dir, "out.png")
	if err := WriteFile(pngPath, testFrame()); err != nil {
		t.Fatalf("WriteFile png: %v", err)
	}

	err = WriteFile(filepath.Join(dir, "out.bmp"), testFrame())
	if !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("unsupported extension error = %v, want config error", err)
	}
}
