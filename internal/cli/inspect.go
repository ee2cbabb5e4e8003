package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pangenome/gfalook/pkg/gfa"
)

// inspectPathLimit caps the per-path listing; larger graphs get a
// summary line instead of hundreds of rows.
const inspectPathLimit = 25

// newInspectCmd creates the inspect command: parse a GFA file and
// print its statistics without rendering anything.
func newInspectCmd() *cobra.Command {
	var showPaths bool

	cmd := &cobra.Command{
		Use:   "inspect [gfa-file]",
		Short: "Print variation graph statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			logger.Debugf("Parsing %s", args[0])

			g, err := gfa.ParseFile(args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Graph"))
			printKeyValue("segments", fmt.Sprintf("%d", len(g.Segments)))
			printKeyValue("length", fmt.Sprintf("%d bp", g.TotalLength))
			printKeyValue("paths", fmt.Sprintf("%d", len(g.Paths)))
			printKeyValue("edges", fmt.Sprintf("%d", len(g.Edges)))
			printKeyValue("checksum", g.Checksum[:12])

			if !showPaths {
				return nil
			}

			printNewline()
			fmt.Println(StyleTitle.Render("Paths"))
			paths := make([]gfa.Path, len(g.Paths))
			copy(paths, g.Paths)
			sort.Slice(paths, func(i, j int) bool {
				return g.PathLength(&paths[i]) > g.PathLength(&paths[j])
			})
			for i := range paths {
				if i == inspectPathLimit {
					printDetail("... and %d more", len(paths)-inspectPathLimit)
					break
				}
				printKeyValue(paths[i].Name,
					fmt.Sprintf("%d bp, %d steps", g.PathLength(&paths[i]), len(paths[i].Steps)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPaths, "paths", false, "list individual paths, longest first")
	return cmd
}
