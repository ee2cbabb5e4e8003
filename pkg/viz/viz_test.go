package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pangenome/gfalook/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}

	if opts.Width != DefaultWidth {
		t.Errorf("Width = %d, want %d", opts.Width, DefaultWidth)
	}
	if opts.PathHeight != DefaultPathHeight {
		t.Errorf("PathHeight = %d, want %d", opts.PathHeight, DefaultPathHeight)
	}
	if opts.XTicks != DefaultTicks {
		t.Errorf("XTicks = %d, want %d", opts.XTicks, DefaultTicks)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	// Idempotent: a second call must not change anything.
	opts.Width = 7
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Width != 7 {
		t.Errorf("second call reset Width to %d", opts.Width)
	}
}

func TestValidateConflicts(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{
			name: "pack with compressed",
			opts: Options{PackPaths: true, CompressedMode: true},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "pack with cluster",
			opts: Options{PackPaths: true, ClusterPaths: true},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "pack with merges",
			opts: Options{PackPaths: true, PrefixMerges: "merges.txt"},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "compressed with cluster",
			opts: Options{CompressedMode: true, ClusterPaths: true},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "cluster with merges",
			opts: Options{ClusterPaths: true, PrefixMerges: "merges.txt"},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "dendrogram without cluster",
			opts: Options{Dendrogram: true},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "absolute axis without axis",
			opts: Options{XAxisAbsolute: true},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "absolute axis on pangenomic",
			opts: Options{XAxisAbsolute: true, XAxis: "pangenomic"},
			code: errors.ErrCodeConfigConflict,
		},
		{
			name: "unknown palette scheme",
			opts: Options{ColorbrewerPalette: "viridis:11"},
			code: errors.ErrCodeConfigPalette,
		},
		{
			name: "malformed palette arg",
			opts: Options{ColorbrewerPalette: "rdbu:x:y"},
			code: errors.ErrCodeConfigPalette,
		},
		{
			name: "multi-char prefix separator",
			opts: Options{ColorByPrefix: "##"},
			code: errors.ErrCodeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestValidateAcceptsKnownPalette(t *testing.T) {
	opts := Options{ColorbrewerPalette: "RdBu:11"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if p := opts.DepthPalette(); len(p) != 11 {
		t.Errorf("DepthPalette() length = %d, want 11", len(p))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.toml")
	content := `
width = 800
path_height = 6
cluster_paths = true
use_upgma = true
x_axis = "chr1"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if opts.Width != 800 {
		t.Errorf("Width = %d, want 800", opts.Width)
	}
	if opts.PathHeight != 6 {
		t.Errorf("PathHeight = %d, want 6", opts.PathHeight)
	}
	if !opts.ClusterPaths || !opts.UseUPGMA {
		t.Error("cluster flags not loaded")
	}
	if opts.XAxis != "chr1" {
		t.Errorf("XAxis = %q, want chr1", opts.XAxis)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, errors.ErrCodeConfigFile) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeConfigFile)
	}
}
