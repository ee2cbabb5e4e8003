package cluster

import (
	"fmt"
	"io"

	"github.com/pangenome/gfalook/pkg/gfa"
)

// WriteClusters emits the per-path cluster assignment as TSV, rows in
// display order.
func WriteClusters(w io.Writer, paths []*gfa.Path, res *Result) error {
	if _, err := fmt.Fprintln(w, "path.name\tcluster"); err != nil {
		return err
	}
	for i, idx := range res.Order {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", paths[idx].Name, res.ClusterIDs[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteMedoids emits one row per cluster with its representative path
// and size, largest cluster first.
func WriteMedoids(w io.Writer, paths []*gfa.Path, res *Result) error {
	if _, err := fmt.Fprintln(w, "cluster\tmedoid.path\tcluster.size"); err != nil {
		return err
	}
	for id, medoid := range res.Medoids {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d\n", id, paths[medoid].Name, res.Sizes[id]); err != nil {
			return err
		}
	}
	return nil
}
