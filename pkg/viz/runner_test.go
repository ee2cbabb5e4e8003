package viz

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/pangenome/gfalook/pkg/cache"
	"github.com/pangenome/gfalook/pkg/gfa"
	"github.com/pangenome/gfalook/pkg/viz/color"
)

const testGFA = "H\tVN:Z:1.0\n" +
	"S\t1\tAAAAAAAAAA\n" +
	"S\t2\tCCCCC\n" +
	"S\t3\tGGGGGGGGGG\n" +
	"P\tx\t1+,2+,3+\t*\n" +
	"P\ty\t1+,3+\t*\n" +
	"P\tdecoy1\t1+\t*\n" +
	"L\t1\t+\t2\t+\t0M\n" +
	"L\t2\t+\t3\t+\t0M\n"

func testGraph(t *testing.T) *gfa.Graph {
	t.Helper()
	g, err := gfa.Parse(strings.NewReader(testGFA))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func quietOptions() Options {
	return Options{Logger: log.NewWithOptions(io.Discard, log.Options{})}
}

func TestRenderBasic(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	opts := quietOptions()
	opts.Width = 25
	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if frame.Empty {
		t.Fatal("frame unexpectedly empty")
	}
	if frame.Bins != 25 {
		t.Errorf("Bins = %d, want 25", frame.Bins)
	}
	if frame.BinWidth != 1 {
		t.Errorf("BinWidth = %v, want 1", frame.BinWidth)
	}
	if len(frame.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(frame.Rows))
	}
	if frame.Plan.Height != 3*DefaultPathHeight {
		t.Errorf("Height = %d, want %d", frame.Plan.Height, 3*DefaultPathHeight)
	}

	// Path x traverses every base, so every bin must be present and
	// carry its identity color.
	want := color.PathColor("x")
	row := frame.Rows[0]
	for b := 0; b < frame.Bins; b++ {
		if !row.Present[b] {
			t.Fatalf("bin %d missing from full-coverage path", b)
		}
		if row.Colors[b] != want {
			t.Fatalf("bin %d color = %v, want identity %v", b, row.Colors[b], want)
		}
	}

	// Path y skips segment 2 (bins 10-14).
	y := frame.Rows[1]
	if y.Present[12] {
		t.Error("path y should not occupy segment 2's bins")
	}
	if !y.Present[0] || !y.Present[24] {
		t.Error("path y missing its traversed bins")
	}

	if len(frame.Edges) == 0 {
		t.Error("no edge spans emitted")
	}
	if frame.EdgeHeight != 25 {
		t.Errorf("EdgeHeight = %d, want 25 (total length caps the band)", frame.EdgeHeight)
	}
}

func TestRenderIgnorePrefix(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	opts := quietOptions()
	opts.Width = 25
	opts.IgnorePrefix = "decoy"
	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(frame.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(frame.Rows))
	}
	for _, row := range frame.Rows {
		if strings.HasPrefix(row.Name, "decoy") {
			t.Errorf("decoy path %q survived the filter", row.Name)
		}
	}
}

func TestRenderEmptyAfterFilter(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	opts := quietOptions()
	opts.IgnorePrefix = "" // keep all, then exclude all via list
	list := filepath.Join(t.TempDir(), "paths.txt")
	if err := os.WriteFile(list, []byte("nosuchpath\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts.PathsToDisplay = list

	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !frame.Empty {
		t.Fatal("expected a degenerate empty frame")
	}
	if len(frame.Rows) != 0 {
		t.Errorf("empty frame has %d rows", len(frame.Rows))
	}
}

func TestRenderCompressed(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	opts := quietOptions()
	opts.Width = 25
	opts.CompressedMode = true
	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !frame.Plan.Compressed {
		t.Fatal("plan not marked compressed")
	}
	if len(frame.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(frame.Rows))
	}
	row := frame.Rows[0]
	if row.Name != "COMPRESSED_MODE" {
		t.Errorf("row name = %q", row.Name)
	}
	// All three paths cover bin 0 at depth 1, so the consensus depth
	// is 1 and the color falls in the grey band.
	if !row.Present[0] {
		t.Fatal("bin 0 missing from consensus row")
	}
	if got, want := row.Colors[0], (color.RGB{R: 128, G: 128, B: 128}); got != want {
		t.Errorf("consensus color = %v, want %v", got, want)
	}
}

func TestRenderClusteredWithCache(t *testing.T) {
	g := testGraph(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, log.NewWithOptions(io.Discard, log.Options{}))
	defer r.Close()

	out := filepath.Join(t.TempDir(), "img.png")
	opts := quietOptions()
	opts.Width = 25
	opts.ClusterPaths = true
	opts.Out = out

	render := func() *Frame {
		frame, err := r.Render(context.Background(), g, opts)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		return frame
	}

	first := render()
	second := render() // cached distance matrix and profiles

	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("row count changed across cached run: %d vs %d", len(first.Rows), len(second.Rows))
	}
	for i := range first.Rows {
		if first.Rows[i].Name != second.Rows[i].Name {
			t.Errorf("row %d order changed across cached run", i)
		}
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(out), "img.clusters.tsv"))
	if err != nil {
		t.Fatalf("clusters sidecar missing: %v", err)
	}
	if !strings.HasPrefix(string(data), "path.name\tcluster\n") {
		t.Errorf("clusters TSV header = %q", strings.SplitN(string(data), "\n", 2)[0])
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), "img.medoids.tsv")); err != nil {
		t.Errorf("medoids sidecar missing: %v", err)
	}
}

func TestRenderAxisTicks(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	opts := quietOptions()
	opts.Width = 25
	opts.XAxis = "pangenomic"
	opts.XTicks = 5
	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if frame.Axis == nil {
		t.Fatal("no axis mapper on frame")
	}
	if len(frame.Ticks) != 5 {
		t.Fatalf("got %d ticks, want 5", len(frame.Ticks))
	}
	if frame.Ticks[0].Bin != 0 {
		t.Errorf("first tick bin = %d, want 0", frame.Ticks[0].Bin)
	}
	if last := frame.Ticks[len(frame.Ticks)-1]; last.Bin != 24 {
		t.Errorf("last tick bin = %d, want 24", last.Bin)
	}
}

func TestRenderDepthColoring(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	opts := quietOptions()
	opts.Width = 25
	opts.ColorByMeanDepth = true
	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Depth 1 lands in the light grey band.
	want := color.RGB{R: 128, G: 128, B: 128}
	if got := frame.Rows[0].Colors[0]; got != want {
		t.Errorf("depth color = %v, want %v", got, want)
	}
}

func TestRenderLegendOnlyUsedCategories(t *testing.T) {
	g := testGraph(t)
	r := NewRunner(nil, log.NewWithOptions(io.Discard, log.Options{}))

	// "ghost" matches no displayed path and must not reach the legend.
	annPath := filepath.Join(t.TempDir(), "ann.tsv")
	content := "prefix\tcategory\n" +
		"y\tcontrol\n" +
		"zzz\tghost\n" +
		"x\tsample\n"
	if err := os.WriteFile(annPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := quietOptions()
	opts.Width = 25
	opts.AnnotationFile = annPath
	frame, err := r.Render(context.Background(), g, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(frame.Legend) != 2 {
		t.Fatalf("got %d legend entries, want 2", len(frame.Legend))
	}
	if frame.Legend[0].Category != "control" || frame.Legend[1].Category != "sample" {
		t.Errorf("legend = [%s, %s], want [control, sample]",
			frame.Legend[0].Category, frame.Legend[1].Category)
	}

	// Row annotations index the filtered legend.
	byName := make(map[string]int)
	for _, row := range frame.Rows {
		byName[row.Name] = row.Annotation
	}
	if byName["x"] != 1 {
		t.Errorf("x annotation = %d, want 1 (sample)", byName["x"])
	}
	if byName["y"] != 0 {
		t.Errorf("y annotation = %d, want 0 (control)", byName["y"])
	}
	if byName["decoy1"] != -1 {
		t.Errorf("decoy1 annotation = %d, want -1", byName["decoy1"])
	}
}
