package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roadmap/internal/catalog"
	"github.com/mesh-intelligence/roadmap/internal/sqlite"
)

func (a *app) newCheckpointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checkpoint",
		Aliases: []string{"cp"},
		Short:   "Manage the checkpoints of the managed catalog",
	}
	cmd.AddCommand(a.newCheckpointAddCmd())
	cmd.AddCommand(a.newCheckpointListCmd())
	cmd.AddCommand(a.newCheckpointDeleteCmd())
	cmd.AddCommand(a.newCheckpointMoveCmd())
	cmd.AddCommand(a.newCheckpointImportCmd())
	return cmd
}

func (a *app) newCheckpointAddCmd() *cobra.Command {
	var branch string

	cmd := &cobra.Command{
		Use:   "add <title> <url>",
		Short: "Append a checkpoint to a branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			cp, err := backend.Add(args[0], args[1], branch)
			if err != nil {
				return classify(err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), cp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, order %d)\n", cp.ID, cp.Branch, cp.Order)
			return nil
		},
	}
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "branch name (default: main)")
	return cmd
}

func (a *app) newCheckpointListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List checkpoints by branch and order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			cps, err := backend.Checkpoints()
			if err != nil {
				return sysError(err)
			}

			if a.flags.jsonMode {
				if cps == nil {
					return writeJSON(cmd.OutOrStdout(), []any{})
				}
				return writeJSON(cmd.OutOrStdout(), cps)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tBRANCH\tORDER\tTITLE\tURL")
			fmt.Fprintln(tw, "--\t------\t-----\t-----\t---")
			for _, cp := range cps {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", cp.ID, cp.Branch, cp.Order, cp.Title, cp.URL)
			}
			return tw.Flush()
		},
	}
}

func (a *app) newCheckpointDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a checkpoint and close the gap in its branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			id, err := a.resolveManaged(backend, args[0])
			if err != nil {
				return err
			}
			if err := backend.Delete(id); err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}

func (a *app) newCheckpointMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "move <id> <up|down>",
		Short:     "Swap a checkpoint with its neighbour in the branch",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{sqlite.DirectionUp, sqlite.DirectionDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			id, err := a.resolveManaged(backend, args[0])
			if err != nil {
				return err
			}
			if err := backend.Move(id, args[1]); err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s %s\n", id, args[1])
			return nil
		},
	}
}

func (a *app) newCheckpointImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Copy the checkpoints of a catalog file into the managed catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return userError(err)
			}
			cps, _ := c.Checkpoints()

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			n, err := backend.Import(cps)
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d checkpoints\n", n)
			return nil
		},
	}
}

// resolveManaged expands an id prefix against the managed catalog.
func (a *app) resolveManaged(backend *sqlite.Backend, arg string) (string, error) {
	cps, err := backend.Checkpoints()
	if err != nil {
		return "", sysError(err)
	}
	id, err := resolveID(cps, arg)
	if err != nil {
		return "", userError(err)
	}
	return id, nil
}
