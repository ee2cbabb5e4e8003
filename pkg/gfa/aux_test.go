package gfa

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pangenome/gfalook/pkg/errors"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestLoadPathList(t *testing.T) {
	path := writeTemp(t, "# samples to show\nsample1\n\nsample2\n  sample3  \n")

	names, err := LoadPathList(path)
	if err != nil {
		t.Fatalf("LoadPathList() error = %v", err)
	}
	want := []string{"sample1", "sample2", "sample3"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLoadPathListMissingFile(t *testing.T) {
	_, err := LoadPathList(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestLoadHighlights(t *testing.T) {
	g, err := Parse(strings.NewReader(miniGFA))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	path := writeTemp(t, "1\n3\n")
	hl, err := LoadHighlights(path, g)
	if err != nil {
		t.Fatalf("LoadHighlights() error = %v", err)
	}
	if !hl[0] || hl[1] || !hl[2] {
		t.Errorf("highlights = %v, want segments 1 and 3", hl)
	}

	bad := writeTemp(t, "99\n")
	if _, err := LoadHighlights(bad, g); !errors.Is(err, errors.ErrCodeUnknownSegment) {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeUnknownSegment)
	}
}

func TestLoadPrefixMerges(t *testing.T) {
	path := writeTemp(t, "HG002\nHG003\nHG002\n")

	prefixes, err := LoadPrefixMerges(path)
	if err != nil {
		t.Fatalf("LoadPrefixMerges() error = %v", err)
	}
	if len(prefixes) != 2 || prefixes[0] != "HG002" || prefixes[1] != "HG003" {
		t.Errorf("prefixes = %v, want [HG002 HG003]", prefixes)
	}
}
