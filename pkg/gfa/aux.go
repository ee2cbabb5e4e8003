package gfa

import (
	"bufio"
	"os"
	"strings"

	"github.com/pangenome/gfalook/pkg/errors"
)

// LoadPathList reads a one-name-per-line path inclusion list. Order is
// preserved; blank lines and #-comments are skipped.
func LoadPathList(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range lines {
		names = append(names, line)
	}
	return names, nil
}

// LoadHighlights reads a node-id list (segment names, one per line) and
// resolves them against the graph. An unknown segment is an integrity
// error, consistent with path records.
func LoadHighlights(path string, g *Graph) (map[int]bool, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	highlighted := make(map[int]bool, len(lines))
	for _, name := range lines {
		id, ok := g.SegmentID(name)
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownSegment, "highlight list references unknown segment %s", name)
		}
		highlighted[id] = true
	}
	return highlighted, nil
}

// LoadPrefixMerges reads a prefix list used to collapse paths sharing a
// prefix onto one display row. The order of first match defines group
// order; duplicate prefixes keep their first position.
func LoadPrefixMerges(path string) ([]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(lines))
	var prefixes []string
	for _, p := range lines {
		if seen[p] {
			continue
		}
		seen[p] = true
		prefixes = append(prefixes, p)
	}
	return prefixes, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "open %s", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "read %s", path)
	}
	return lines, nil
}
