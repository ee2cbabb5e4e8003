package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pangenome/gfalook/pkg/gfa"
	"github.com/pangenome/gfalook/pkg/viz"
)

// newClusterCmd creates the cluster command: group paths by similarity
// and report membership without producing an image. The cluster and
// medoid tables are written as TSV files next to the output base.
func newClusterCmd() *cobra.Command {
	var opts viz.Options

	cmd := &cobra.Command{
		Use:   "cluster [gfa-file]",
		Short: "Group paths by similarity and report cluster membership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ClusterPaths = true
			if opts.Out == "" {
				opts.Out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".tsv"
			}
			return runCluster(cmd.Context(), args[0], &opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.Out, "out", "o", "", "output base for the TSV tables; default: input file base")
	f.Float64Var(&opts.ClusterThreshold, "threshold", -1, "similarity threshold in [0,1]; negative selects automatically")
	f.BoolVar(&opts.ClusterAllNodes, "all-nodes", false, "cluster on node presence instead of coverage")
	f.IntVar(&opts.MaxClusters, "max-clusters", 0, "target cluster count for automatic thresholds")
	f.BoolVar(&opts.UseUPGMA, "use-upgma", false, "cut the UPGMA tree instead of running DBSCAN")
	f.Float64Var(&opts.UPGMAThreshold, "upgma-threshold", -1, "UPGMA cut as a fraction of the maximum merge height")
	f.StringVar(&opts.PathsToDisplay, "paths-to-display", "", "file with one path name per line")
	f.StringVar(&opts.IgnorePrefix, "ignore-prefix", "", "drop paths whose name starts with this prefix")
	f.StringVar(&opts.PathRange, "path-range", "", "restrict to a window: [PATH:]start-end")
	f.BoolVar(&opts.NoCache, "no-cache", false, "recompute everything, skip the result cache")

	return cmd
}

func runCluster(ctx context.Context, input string, opts *viz.Options) error {
	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	g, err := gfa.ParseFile(input)
	if err != nil {
		return err
	}
	logger.Infof("Loaded graph: %d segments, %d paths, %d bp",
		len(g.Segments), len(g.Paths), g.TotalLength)

	runner, err := newRunner(opts.NoCache, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	frame, err := runner.Render(ctx, g, *opts)
	if err != nil {
		return err
	}
	if frame.Empty {
		printWarning("No paths to cluster")
		return nil
	}

	clusters := make(map[int][]string)
	for i, row := range frame.Plan.Rows {
		clusters[row.ClusterID] = append(clusters[row.ClusterID], frame.Rows[i].Name)
	}
	ids := make([]int, 0, len(clusters))
	for id := range clusters {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	printNewline()
	fmt.Println(StyleTitle.Render("Clusters"))
	for _, id := range ids {
		members := clusters[id]
		printKeyValue(fmt.Sprintf("cluster %d", id), fmt.Sprintf("%d paths", len(members)))
		for _, name := range members {
			printDetail("%s", name)
		}
	}

	prog.done(fmt.Sprintf("Clustered %d paths into %d clusters", len(frame.Rows), len(ids)))
	base := strings.TrimSuffix(opts.Out, filepath.Ext(opts.Out))
	printSuccess("Wrote cluster tables")
	printFile(base + ".clusters.tsv")
	printFile(base + ".medoids.tsv")
	return nil
}
