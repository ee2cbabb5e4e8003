package axis

import (
	"strings"
	"testing"

	"github.com/pangenome/gfalook/pkg/gfa"
)

func testGraph(t *testing.T) *gfa.Graph {
	t.Helper()
	text := "S\t1\t" + strings.Repeat("A", 400) + "\n" +
		"S\t2\t" + strings.Repeat("C", 300) + "\n" +
		"S\t3\t" + strings.Repeat("G", 300) + "\n" +
		"P\tchr1:1000-1600\t2+,3+\t*\n"
	g, err := gfa.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return g
}

func TestPangenomicMapper(t *testing.T) {
	g := testGraph(t)
	m, fallback := New(g, "pangenomic", false, 10, 100)
	if fallback {
		t.Fatal("pangenomic reported fallback")
	}
	if m.CoordStart != 0 || m.CoordEnd != 1000 || m.BinStart != 0 || m.BinEnd != 100 {
		t.Errorf("mapper = %+v", m)
	}
	if m.Label != "pangenomic" {
		t.Errorf("label = %q", m.Label)
	}
}

func TestReferencePathMapper(t *testing.T) {
	g := testGraph(t)
	m, fallback := New(g, "chr1:1000-1600", false, 10, 100)
	if fallback {
		t.Fatal("known path reported fallback")
	}
	// The path covers pangenomic [400, 1000), bins 40..100, and is 600
	// bases long in its own coordinates.
	if m.CoordStart != 0 || m.CoordEnd != 600 {
		t.Errorf("coords = [%d, %d], want [0, 600]", m.CoordStart, m.CoordEnd)
	}
	if m.BinStart != 40 || m.BinEnd != 100 {
		t.Errorf("bins = [%d, %d], want [40, 100]", m.BinStart, m.BinEnd)
	}
	if m.Label != "chr1:1000-1600" {
		t.Errorf("label = %q", m.Label)
	}
}

func TestAbsoluteMapper(t *testing.T) {
	g := testGraph(t)
	m, _ := New(g, "chr1:1000-1600", true, 10, 100)
	if m.CoordStart != 1000 || m.CoordEnd != 1600 {
		t.Errorf("absolute coords = [%d, %d], want [1000, 1600]", m.CoordStart, m.CoordEnd)
	}
	if m.Label != "chr1" {
		t.Errorf("absolute label = %q, want chr1", m.Label)
	}
}

func TestUnknownPathFallsBack(t *testing.T) {
	g := testGraph(t)
	m, fallback := New(g, "chrMissing", false, 10, 100)
	if !fallback {
		t.Error("unknown path did not report fallback")
	}
	if m.Label != "pangenomic" || m.CoordEnd != 1000 {
		t.Errorf("fallback mapper = %+v", m)
	}
}

func TestTicksRoundTrip(t *testing.T) {
	g := testGraph(t)
	m, _ := New(g, "pangenomic", false, 10, 100)

	ticks := m.Ticks(5)
	if len(ticks) != 5 {
		t.Fatalf("ticks = %d, want 5", len(ticks))
	}
	for _, tick := range ticks {
		// Mapping the tick's coordinate back recovers its bin.
		if got := m.BinAt(float64(tick.Coord)); got != tick.Bin {
			t.Errorf("BinAt(CoordAt(%d)) = %d, round trip lost the bin", tick.Bin, got)
		}
		if tick.Label != FormatCoord(tick.Coord) {
			t.Errorf("tick label %q not derived from its own coordinate", tick.Label)
		}
	}
	if ticks[0].Bin != 0 || ticks[len(ticks)-1].Bin != 99 {
		t.Errorf("tick span = [%d, %d], want [0, 99]", ticks[0].Bin, ticks[len(ticks)-1].Bin)
	}
}

func TestTicksMinimumTwo(t *testing.T) {
	g := testGraph(t)
	m, _ := New(g, "pangenomic", false, 10, 100)
	if got := len(m.Ticks(0)); got != 2 {
		t.Errorf("Ticks(0) = %d ticks, want 2", got)
	}
}

func TestFormatCoord(t *testing.T) {
	tests := []struct {
		v    uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{2_500_000, "2.5M"},
		{3_200_000_000, "3.2G"},
	}
	for _, tt := range tests {
		if got := FormatCoord(tt.v); got != tt.want {
			t.Errorf("FormatCoord(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestSubpathHelpers(t *testing.T) {
	if got := ParseSubpathStart("chr1:1000-1600"); got != 1000 {
		t.Errorf("ParseSubpathStart = %d, want 1000", got)
	}
	if got := ParseSubpathStart("chr1"); got != 0 {
		t.Errorf("ParseSubpathStart without range = %d, want 0", got)
	}
	if got := StripSubpathRange("chr1:1000-1600"); got != "chr1" {
		t.Errorf("StripSubpathRange = %q, want chr1", got)
	}
	if got := StripSubpathRange("sample#1#chr1"); got != "sample#1#chr1" {
		t.Errorf("StripSubpathRange mangled a plain name: %q", got)
	}
	if got := StripSubpathRange("chr1:abc-def"); got != "chr1:abc-def" {
		t.Errorf("StripSubpathRange stripped a non-numeric range: %q", got)
	}
}
