package gfa

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pangenome/gfalook/pkg/errors"
	"github.com/pangenome/gfalook/pkg/observability"
)

const maxLineBytes = 256 * 1024 * 1024

// ParseFile reads a GFA file from disk.
func ParseFile(path string) (*Graph, error) {
	ctx := context.Background()
	observability.Pipeline().OnParseStart(ctx, path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "graph file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "open graph file %s", path)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, path, 0, 0, time.Since(start), err)
		return nil, err
	}
	observability.Pipeline().OnParseComplete(ctx, path, len(g.Segments), len(g.Paths), time.Since(start), nil)
	return g, nil
}

// Parse reads GFA text into a Graph. Segment records are assigned ids in
// file order; pangenomic offsets are the running prefix sum over those
// lengths. Path records (P and W lines) referencing a segment that never
// appeared on an S line abort the parse.
func Parse(r io.Reader) (*Graph, error) {
	hasher := sha256.New()
	scanner := bufio.NewScanner(io.TeeReader(r, hasher))
	scanner.Buffer(make([]byte, 1024*1024), maxLineBytes)

	g := &Graph{index: make(map[string]int)}
	edgeSeen := make(map[Edge]struct{})
	var rawEdges []Edge

	// Record order is not guaranteed, so segments are indexed in a first
	// pass and path/link records are resolved afterwards.
	type pending struct {
		line string
		no   int
	}
	var deferred []pending

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		switch line[0] {
		case 'S':
			if err := g.parseSegment(line, lineNo); err != nil {
				return nil, err
			}
		case 'P', 'W', 'L':
			deferred = append(deferred, pending{line: line, no: lineNo})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadRecord, err, "read graph")
	}

	for _, rec := range deferred {
		var err error
		switch rec.line[0] {
		case 'P':
			err = g.parsePath(rec.line, rec.no)
		case 'W':
			err = g.parseWalk(rec.line, rec.no)
		case 'L':
			var e Edge
			e, err = g.parseLink(rec.line, rec.no)
			if err == nil {
				rawEdges = append(rawEdges, e)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	// Implicit edges from consecutive path steps, then the explicit
	// links, all deduplicated through the canonical direction.
	for _, p := range g.Paths {
		for i := 1; i < len(p.Steps); i++ {
			a, b := p.Steps[i-1], p.Steps[i]
			rawEdges = append(rawEdges, Edge{From: a.Segment, FromRev: a.Reverse, To: b.Segment, ToRev: b.Reverse})
		}
	}
	for _, e := range rawEdges {
		c := canonical(e)
		if _, ok := edgeSeen[c]; ok {
			continue
		}
		edgeSeen[c] = struct{}{}
		g.Edges = append(g.Edges, c)
	}

	g.Checksum = hex.EncodeToString(hasher.Sum(nil))
	return g, nil
}

func (g *Graph) parseSegment(line string, lineNo int) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return errors.New(errors.ErrCodeBadRecord, "line %d: segment record has %d fields, want at least 3", lineNo, len(fields))
	}
	name, seq := fields[1], fields[2]

	var length, uncalled uint64
	if seq == "*" {
		// Sequence elided; the length must come from an LN tag.
		for _, tag := range fields[3:] {
			if strings.HasPrefix(tag, "LN:i:") {
				n, err := strconv.ParseUint(tag[5:], 10, 64)
				if err != nil {
					return errors.New(errors.ErrCodeBadRecord, "line %d: segment %s has malformed LN tag %q", lineNo, name, tag)
				}
				length = n
			}
		}
		if length == 0 {
			return errors.New(errors.ErrCodeBadRecord, "line %d: segment %s has no sequence and no LN tag", lineNo, name)
		}
	} else {
		length = uint64(len(seq))
		for i := 0; i < len(seq); i++ {
			if seq[i] == 'N' || seq[i] == 'n' {
				uncalled++
			}
		}
	}

	if _, dup := g.index[name]; dup {
		return errors.New(errors.ErrCodeBadRecord, "line %d: duplicate segment %s", lineNo, name)
	}
	g.index[name] = len(g.Segments)
	g.Names = append(g.Names, name)
	g.Offsets = append(g.Offsets, g.TotalLength)
	g.TotalLength += length
	g.Segments = append(g.Segments, Segment{Length: length, Uncalled: uncalled})
	return nil
}

func (g *Graph) parsePath(line string, lineNo int) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		return errors.New(errors.ErrCodeBadRecord, "line %d: path record has %d fields, want at least 3", lineNo, len(fields))
	}
	name := fields[1]
	rawSteps := strings.Split(fields[2], ",")

	steps := make([]Step, 0, len(rawSteps))
	for _, raw := range rawSteps {
		if len(raw) < 2 {
			return errors.New(errors.ErrCodeBadRecord, "line %d: path %s has malformed step %q", lineNo, name, raw)
		}
		segName, orient := raw[:len(raw)-1], raw[len(raw)-1]
		if orient != '+' && orient != '-' {
			return errors.New(errors.ErrCodeBadRecord, "line %d: path %s has malformed step %q", lineNo, name, raw)
		}
		id, ok := g.index[segName]
		if !ok {
			return errors.New(errors.ErrCodeUnknownSegment, "path %s references unknown segment %s", name, segName)
		}
		steps = append(steps, Step{Segment: id, Reverse: orient == '-'})
	}
	g.Paths = append(g.Paths, Path{Name: name, Steps: steps})
	return nil
}

func (g *Graph) parseWalk(line string, lineNo int) error {
	fields := strings.Split(line, "\t")
	if len(fields) < 7 {
		return errors.New(errors.ErrCodeBadRecord, "line %d: walk record has %d fields, want at least 7", lineNo, len(fields))
	}
	name := fields[1] + "#" + fields[2] + "#" + fields[3]
	if fields[4] != "*" && fields[5] != "*" {
		name += ":" + fields[4] + "-" + fields[5]
	}

	walk := fields[6]
	var steps []Step
	for i := 0; i < len(walk); {
		orient := walk[i]
		if orient != '>' && orient != '<' {
			return errors.New(errors.ErrCodeBadRecord, "line %d: walk %s has malformed step at offset %d", lineNo, name, i)
		}
		j := i + 1
		for j < len(walk) && walk[j] != '>' && walk[j] != '<' {
			j++
		}
		segName := walk[i+1 : j]
		id, ok := g.index[segName]
		if !ok {
			return errors.New(errors.ErrCodeUnknownSegment, "path %s references unknown segment %s", name, segName)
		}
		steps = append(steps, Step{Segment: id, Reverse: orient == '<'})
		i = j
	}
	g.Paths = append(g.Paths, Path{Name: name, Steps: steps})
	return nil
}

func (g *Graph) parseLink(line string, lineNo int) (Edge, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 5 {
		return Edge{}, errors.New(errors.ErrCodeBadRecord, "line %d: link record has %d fields, want at least 5", lineNo, len(fields))
	}
	from, ok := g.index[fields[1]]
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeUnknownSegment, "link references unknown segment %s", fields[1])
	}
	to, ok := g.index[fields[3]]
	if !ok {
		return Edge{}, errors.New(errors.ErrCodeUnknownSegment, "link references unknown segment %s", fields[3])
	}
	return Edge{From: from, FromRev: fields[2] == "-", To: to, ToRev: fields[4] == "-"}, nil
}
