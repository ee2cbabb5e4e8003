package viz

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAnnotationFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAnnotationsTSV(t *testing.T) {
	path := writeAnnotationFile(t, "ann.tsv",
		"prefix\tcategory\n"+
			"HG002\tchild\n"+
			"HG003\tfather\n"+
			"HG004\tmother\n")

	a, err := LoadAnnotations(path, 0)
	if err != nil {
		t.Fatalf("LoadAnnotations() error = %v", err)
	}

	if len(a.Categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(a.Categories))
	}
	// Categories are sorted alphabetically.
	want := []string{"child", "father", "mother"}
	for i, cat := range want {
		if a.Categories[i] != cat {
			t.Errorf("Categories[%d] = %q, want %q", i, a.Categories[i], cat)
		}
	}

	cat, ok := a.Category("HG002#1#chr1")
	if !ok || cat != "child" {
		t.Errorf("Category(HG002#1#chr1) = %q, %v; want child, true", cat, ok)
	}
	if _, ok := a.Category("NA12878"); ok {
		t.Error("unannotated path reported a category")
	}
	if idx := a.CategoryIndex("HG003#2#chr1"); idx != 1 {
		t.Errorf("CategoryIndex = %d, want 1", idx)
	}
	if idx := a.CategoryIndex("NA12878"); idx != -1 {
		t.Errorf("CategoryIndex for unannotated = %d, want -1", idx)
	}
}

func TestLoadAnnotationsLongestPrefixWins(t *testing.T) {
	path := writeAnnotationFile(t, "ann.tsv",
		"prefix\tcategory\n"+
			"HG\tshort\n"+
			"HG002\tlong\n")

	a, err := LoadAnnotations(path, 0)
	if err != nil {
		t.Fatalf("LoadAnnotations() error = %v", err)
	}
	if cat, _ := a.Category("HG002#1"); cat != "long" {
		t.Errorf("Category = %q, want long", cat)
	}
	if cat, _ := a.Category("HG005#1"); cat != "short" {
		t.Errorf("Category = %q, want short", cat)
	}
}

func TestLoadAnnotationsCSV(t *testing.T) {
	// CSV defaults to column 4, HPRC-style; quoted fields may hold commas.
	path := writeAnnotationFile(t, "ann.csv",
		"sample,pop,region,label\n"+
			"HG002,EUR,\"a, b\",trio\n"+
			"NA191,AFR,c,panel\n")

	a, err := LoadAnnotations(path, 0)
	if err != nil {
		t.Fatalf("LoadAnnotations() error = %v", err)
	}
	if cat, _ := a.Category("HG002"); cat != "trio" {
		t.Errorf("Category = %q, want trio", cat)
	}
	if cat, _ := a.Category("NA191"); cat != "panel" {
		t.Errorf("Category = %q, want panel", cat)
	}
}

func TestLoadAnnotationsColumnOverride(t *testing.T) {
	path := writeAnnotationFile(t, "ann.csv",
		"sample,pop,region,label\n"+
			"HG002,EUR,west,trio\n")

	a, err := LoadAnnotations(path, 2)
	if err != nil {
		t.Fatalf("LoadAnnotations() error = %v", err)
	}
	if cat, _ := a.Category("HG002"); cat != "EUR" {
		t.Errorf("Category = %q, want EUR", cat)
	}
}

func TestLoadAnnotationsColors(t *testing.T) {
	path := writeAnnotationFile(t, "ann.tsv",
		"prefix\tcategory\n"+
			"a\tone\n"+
			"b\ttwo\n")

	a, err := LoadAnnotations(path, 0)
	if err != nil {
		t.Fatalf("LoadAnnotations() error = %v", err)
	}
	c1, c2 := a.Color("one"), a.Color("two")
	if c1 == c2 {
		t.Error("distinct categories share a color")
	}
}
