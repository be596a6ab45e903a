package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roadmap/internal/engine"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

func (a *app) newNextCmd() *cobra.Command {
	var limit int
	var branch string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "List checkpoints that can be completed now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.open()
			if err != nil {
				return err
			}
			defer rm.Close()

			eng := rm.Engine()
			results := []types.Checkpoint{}
			for _, name := range eng.Branches() {
				if branch != "" && name != branch {
					continue
				}
				for _, id := range eng.Branch(name) {
					if eng.Status(id) == engine.StatusUnlocked {
						cp, _ := find(eng.Checkpoints(), id)
						results = append(results, cp)
					}
				}
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tBRANCH\tTITLE\tURL")
			fmt.Fprintln(tw, "--\t------\t-----\t---")
			for _, cp := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cp.ID, cp.Branch, cp.Title, cp.URL)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of checkpoints to list")
	cmd.Flags().StringVar(&branch, "branch", "", "only list checkpoints of this branch")
	return cmd
}
