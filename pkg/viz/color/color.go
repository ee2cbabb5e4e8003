// Package color maps path identity and per-bin statistics to RGB
// values. Every function here is pure: the same inputs always produce
// the same color, across runs and across tool versions.
package color

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pangenome/gfalook/pkg/errors"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse reads "#rrggbb" or "r,g,b" notation.
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return RGB{}, errors.New(errors.ErrCodeBadRecord, "malformed hex color %q", s)
		}
		var c RGB
		for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
			v, err := strconv.ParseUint(s[1+2*i:3+2*i], 16, 8)
			if err != nil {
				return RGB{}, errors.New(errors.ErrCodeBadRecord, "malformed hex color %q", s)
			}
			*dst = uint8(v)
		}
		return c, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, errors.New(errors.ErrCodeBadRecord, "malformed color %q, want #rrggbb or r,g,b", s)
	}
	var c RGB
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return RGB{}, errors.New(errors.ErrCodeBadRecord, "malformed color %q, want #rrggbb or r,g,b", s)
		}
		*dst = uint8(v)
	}
	return c, nil
}

// LoadTable reads an explicit per-path color table: one tab-separated
// "name<TAB>color" pair per line, color in either notation Parse takes.
func LoadTable(path string) (map[string]RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "color table not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "open color table %s", path)
	}
	defer f.Close()

	table := make(map[string]RGB)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, errors.New(errors.ErrCodeBadRecord, "color table %s line %d: want name<TAB>color", path, lineNo)
		}
		c, err := Parse(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "color table %s line %d", path, lineNo)
		}
		table[fields[0]] = c
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "read color table %s", path)
	}
	return table, nil
}
