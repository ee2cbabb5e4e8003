package bin

import (
	"strings"
	"testing"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/gfa"
)

// buildGraph assembles a graph from a compact spec: segment lengths in
// file order plus paths as oriented index lists.
func buildGraph(t *testing.T, segLens []int, paths map[string][]int) *gfa.Graph {
	t.Helper()
	var sb strings.Builder
	for i, n := range segLens {
		sb.WriteString("S\t")
		sb.WriteString(segName(i))
		sb.WriteString("\t")
		sb.WriteString(strings.Repeat("A", n))
		sb.WriteString("\n")
	}
	for name, steps := range paths {
		sb.WriteString("P\t")
		sb.WriteString(name)
		sb.WriteString("\t")
		for j, s := range steps {
			if j > 0 {
				sb.WriteString(",")
			}
			if s < 0 {
				sb.WriteString(segName(-s - 1))
				sb.WriteString("-")
			} else {
				sb.WriteString(segName(s - 1))
				sb.WriteString("+")
			}
		}
		sb.WriteString("\t*\n")
	}
	g, err := gfa.Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func segName(i int) string {
	return string(rune('a' + i))
}

func pathPtrs(g *gfa.Graph) []*gfa.Path {
	out := make([]*gfa.Path, len(g.Paths))
	for i := range g.Paths {
		out[i] = &g.Paths[i]
	}
	return out
}

func TestCoverageSumEqualsPathLength(t *testing.T) {
	g := buildGraph(t, []int{100, 3, 250, 7, 640}, map[string][]int{
		"x": {1, 2, 3, 4, 5},
		"y": {1, 3, -5},
		"z": {2},
	})

	b := New(g, Config{Width: 100})
	m := b.Profiles(pathPtrs(g))

	for i, row := range m.Rows {
		var sum uint64
		for _, pr := range row.Profiles {
			sum += pr.Coverage
		}
		want := g.PathLength(&g.Paths[i])
		if sum != want {
			t.Errorf("path %s: summed coverage = %d, want %d", g.Paths[i].Name, sum, want)
		}
	}
}

func TestBinWidthFromImageWidth(t *testing.T) {
	g := buildGraph(t, []int{400, 600}, map[string][]int{"x": {1, 2}})

	b := New(g, Config{Width: 100})
	if b.Bins() != 100 {
		t.Errorf("Bins() = %d, want 100", b.Bins())
	}
	if b.BinWidth() != 10 {
		t.Errorf("BinWidth() = %v, want 10", b.BinWidth())
	}

	m := b.Profiles(pathPtrs(g))
	row := m.Rows[0]
	for i, pr := range row.Profiles {
		if pr.Coverage != 10 {
			t.Fatalf("bin %d coverage = %d, want 10 (no bin left unassigned)", i, pr.Coverage)
		}
		if pr.MeanDepth != 1.0 {
			t.Errorf("bin %d mean depth = %v, want 1.0", i, pr.MeanDepth)
		}
	}
}

func TestShortStepNeverVanishes(t *testing.T) {
	// A 1-base segment inside 100-base bins must still contribute.
	g := buildGraph(t, []int{500, 1, 499}, map[string][]int{"x": {2}})

	b := New(g, Config{Width: 10})
	m := b.Profiles(pathPtrs(g))
	row := m.Rows[0]

	var sum uint64
	for _, pr := range row.Profiles {
		sum += pr.Coverage
	}
	if sum != 1 {
		t.Errorf("summed coverage = %d, want 1", sum)
	}
	// Offset 500 with bin width 100 lands in bin 5.
	if row.MinBin != 5 || row.MaxBin != 5 {
		t.Errorf("extent = [%d, %d], want [5, 5]", row.MinBin, row.MaxBin)
	}
}

func TestReverseAndPositionStats(t *testing.T) {
	g := buildGraph(t, []int{10, 10}, map[string][]int{"x": {1, -2}})

	b := New(g, Config{Width: 2})
	m := b.Profiles(pathPtrs(g))
	row := m.Rows[0]

	first, second := row.Profiles[0], row.Profiles[1]
	if first.MeanInv != 0 {
		t.Errorf("first bin MeanInv = %v, want 0", first.MeanInv)
	}
	if second.MeanInv != 1 {
		t.Errorf("second bin MeanInv = %v, want 1", second.MeanInv)
	}
	// Path positions 0..9 in the first bin, 10..19 in the second.
	if first.MeanPos != 4.5 {
		t.Errorf("first bin MeanPos = %v, want 4.5", first.MeanPos)
	}
	if second.MeanPos != 14.5 {
		t.Errorf("second bin MeanPos = %v, want 14.5", second.MeanPos)
	}
}

func TestUncalledProportion(t *testing.T) {
	input := "S\ta\tNNNNNAAAAA\nP\tx\ta+\t*\n"
	g, err := gfa.Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	b := New(g, Config{Width: 1})
	m := b.Profiles(pathPtrs(g))
	if got := m.Rows[0].Profiles[0].MeanUncalled; got != 0.5 {
		t.Errorf("MeanUncalled = %v, want 0.5", got)
	}
}

func TestHighlightedBins(t *testing.T) {
	g := buildGraph(t, []int{10, 10}, map[string][]int{"x": {1, 2}})

	b := New(g, Config{Width: 2, Highlights: map[int]bool{1: true}})
	m := b.Profiles(pathPtrs(g))
	row := m.Rows[0]

	if row.Profiles[0].Highlighted {
		t.Error("first bin marked highlighted, want unmarked")
	}
	if !row.Profiles[1].Highlighted {
		t.Error("second bin not highlighted")
	}
}

func TestWindowRestriction(t *testing.T) {
	g := buildGraph(t, []int{100, 100, 100}, map[string][]int{"x": {1, 2, 3}})

	b := New(g, Config{Width: 10, Window: &Window{Start: 100, End: 200}})
	if b.Bins() != 10 || b.BinWidth() != 10 {
		t.Fatalf("window binner = %d bins of %v, want 10 of 10", b.Bins(), b.BinWidth())
	}

	m := b.Profiles(pathPtrs(g))
	row := m.Rows[0]
	var sum uint64
	for _, pr := range row.Profiles {
		sum += pr.Coverage
	}
	if sum != 100 {
		t.Errorf("windowed coverage = %d, want 100", sum)
	}
	// Path positions inside the window start at 100, not 0.
	if row.Profiles[0].MeanPos != 104.5 {
		t.Errorf("first windowed bin MeanPos = %v, want 104.5", row.Profiles[0].MeanPos)
	}
}

func TestCompress(t *testing.T) {
	g := buildGraph(t, []int{100}, map[string][]int{"x": {1}, "y": {1}, "z": {1}})

	b := New(g, Config{Width: 10})
	m := b.Profiles(pathPtrs(g))
	row := Compress(m)

	for i, pr := range row.Profiles {
		// Three identical paths of depth 1 average to depth 1.
		if pr.MeanDepth != 1.0 {
			t.Errorf("bin %d compressed depth = %v, want 1.0", i, pr.MeanDepth)
		}
	}
	if row.MinBin != 0 || row.MaxBin != 9 {
		t.Errorf("compressed extent = [%d, %d], want [0, 9]", row.MinBin, row.MaxBin)
	}
}

func TestParseRange(t *testing.T) {
	g := buildGraph(t, []int{100, 100, 100}, map[string][]int{"x": {1, 2, 3}})

	tests := []struct {
		name    string
		arg     string
		want    Window
		wantErr errors.Code
	}{
		{name: "pangenomic", arg: "50-150", want: Window{Start: 50, End: 150}},
		{name: "path scoped", arg: "x:150-250", want: Window{Start: 100, End: 300}},
		{name: "no dash", arg: "12345", wantErr: errors.ErrCodeConfigRange},
		{name: "inverted", arg: "200-100", wantErr: errors.ErrCodeConfigRange},
		{name: "unknown path", arg: "nope:0-10", wantErr: errors.ErrCodePathNotFound},
		{name: "past path end", arg: "x:900-950", wantErr: errors.ErrCodeConfigRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseRange(tt.arg, g)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParseRange(%q) error = nil, want %v", tt.arg, tt.wantErr)
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error code = %v, want %v", errors.GetCode(err), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange(%q) error = %v", tt.arg, err)
			}
			if *w != tt.want {
				t.Errorf("ParseRange(%q) = %+v, want %+v", tt.arg, *w, tt.want)
			}
		})
	}
}
