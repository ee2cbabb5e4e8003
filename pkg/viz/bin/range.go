package bin

import (
	"strconv"
	"strings"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/gfa"
)

// ParseRange resolves a "[PATH:]start-end" range argument to a
// pangenomic window. Without a path prefix the numbers are pangenomic
// coordinates directly; with one, start-end are positions along that
// path and the window spans the pangenomic extent of the segments the
// interval touches.
func ParseRange(s string, g *gfa.Graph) (*Window, error) {
	var pathName, rangePart string
	if i := strings.LastIndex(s, ":"); i >= 0 {
		pathName, rangePart = s[:i], s[i+1:]
	} else {
		rangePart = s
	}

	dash := strings.Index(rangePart, "-")
	if dash < 0 {
		return nil, errors.New(errors.ErrCodeConfigRange, "malformed range %q, want [PATH:]start-end", s)
	}
	start, err1 := strconv.ParseUint(rangePart[:dash], 10, 64)
	end, err2 := strconv.ParseUint(rangePart[dash+1:], 10, 64)
	if err1 != nil || err2 != nil || end <= start {
		return nil, errors.New(errors.ErrCodeConfigRange, "malformed range %q, want [PATH:]start-end with start < end", s)
	}

	if pathName == "" {
		if start >= g.TotalLength {
			return nil, errors.New(errors.ErrCodeConfigRange, "range %q starts past the pangenome end (%d)", s, g.TotalLength)
		}
		return &Window{Start: start, End: end}, nil
	}

	p := g.Path(pathName)
	if p == nil {
		return nil, errors.New(errors.ErrCodePathNotFound, "range path %q not found in graph", pathName)
	}

	// Translate path coordinates to the pangenomic extent of the
	// segments the interval overlaps.
	var (
		pathPos uint64
		found   bool
		lo, hi  uint64
	)
	for _, st := range p.Steps {
		segLen := g.Segments[st.Segment].Length
		stepEnd := pathPos + segLen
		if stepEnd > start && pathPos < end {
			off := g.Offsets[st.Segment]
			if !found || off < lo {
				lo = off
			}
			if segEnd := off + segLen; !found || segEnd > hi {
				hi = segEnd
			}
			found = true
		}
		pathPos = stepEnd
		if pathPos >= end {
			break
		}
	}
	if !found {
		return nil, errors.New(errors.ErrCodeConfigRange, "range %q lies past the end of path %s (length %d)", s, pathName, pathPos)
	}
	return &Window{Start: lo, End: hi}, nil
}
