package viz

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/viz/color"
)

// Annotations maps path-name prefixes to display categories. Each
// category gets a stable color from the qualitative palettes.
type Annotations struct {
	byPrefix map[string]string
	// prefixes sorted by length descending, so the longest prefix wins
	// when several match one path name.
	prefixes   []string
	Categories []string
	colors     map[string]color.RGB
}

// LoadAnnotations reads a prefix-to-category table. The delimiter
// follows the file extension: comma for .csv (quoted fields supported),
// tab otherwise. The first non-empty line is treated as a header.
// column selects the 1-based category column; 0 picks the format
// default (2 for TSV, 4 for CSV).
func LoadAnnotations(path string, column int) (*Annotations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read annotation file %s", path)
	}

	isCSV := strings.EqualFold(filepath.Ext(path), ".csv")
	colIdx := column - 1
	if column <= 0 {
		if isCSV {
			colIdx = 3
		} else {
			colIdx = 1
		}
	}

	a := &Annotations{
		byPrefix: make(map[string]string),
		colors:   make(map[string]color.RGB),
	}
	seen := make(map[string]bool)

	header := true
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		var fields []string
		if isCSV {
			fields = splitCSV(line)
		} else {
			fields = strings.Split(line, "\t")
		}
		if len(fields) <= colIdx {
			continue
		}
		prefix, category := fields[0], fields[colIdx]
		if prefix == "" || category == "" {
			continue
		}
		a.byPrefix[prefix] = category
		if !seen[category] {
			seen[category] = true
			a.Categories = append(a.Categories, category)
		}
	}

	for p := range a.byPrefix {
		a.prefixes = append(a.prefixes, p)
	}
	sort.Slice(a.prefixes, func(i, j int) bool {
		return len(a.prefixes[i]) > len(a.prefixes[j])
	})
	sort.Strings(a.Categories)
	for i, cat := range a.Categories {
		a.colors[cat] = color.AnnotationColor(i, len(a.Categories))
	}
	return a, nil
}

// Category resolves the annotation for a path name, longest matching
// prefix first. The second return reports whether any prefix matched.
func (a *Annotations) Category(pathName string) (string, bool) {
	for _, p := range a.prefixes {
		if strings.HasPrefix(pathName, p) {
			return a.byPrefix[p], true
		}
	}
	return "", false
}

// CategoryIndex returns the position of a path's category within
// Categories, or -1 when the path is unannotated.
func (a *Annotations) CategoryIndex(pathName string) int {
	cat, ok := a.Category(pathName)
	if !ok {
		return -1
	}
	for i, c := range a.Categories {
		if c == cat {
			return i
		}
	}
	return -1
}

// Color returns the display color for a category.
func (a *Annotations) Color(category string) color.RGB {
	return a.colors[category]
}

// splitCSV splits a comma-separated line honoring double-quoted fields
// with "" escapes.
func splitCSV(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))
	return fields
}
