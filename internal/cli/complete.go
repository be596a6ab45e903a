package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roadmap/internal/engine"
)

// errLocked is returned when completing a checkpoint that is still locked.
var errLocked = errors.New("checkpoint is locked")

// completeResult is the JSON output of the complete command.
type completeResult struct {
	ID      string         `json:"id"`
	Changed bool           `json:"changed"`
	Next    string         `json:"next,omitempty"`
	Signals engine.Signals `json:"signals"`
}

func (a *app) newCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a checkpoint as done",
		Long:  "Mark a checkpoint as done. The id may be shortened to any unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.open()
			if err != nil {
				return err
			}
			defer rm.Close()

			eng := rm.Engine()
			cps := eng.Checkpoints()
			id, err := resolveID(cps, args[0])
			if err != nil {
				return userError(err)
			}
			cp, _ := find(cps, id)

			switch eng.Status(id) {
			case engine.StatusLocked:
				return userError(fmt.Errorf("%s: %w", title(cp), errLocked))
			case engine.StatusCompleted:
				if a.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), completeResult{ID: id, Signals: eng.Signals()})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already completed\n", title(cp))
				return nil
			}

			changed := eng.Complete(id)
			next, hasNext := eng.Next(id)

			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), completeResult{
					ID:      id,
					Changed: changed,
					Next:    next,
					Signals: eng.Signals(),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", title(cp))
			if hasNext {
				nextCP, _ := find(cps, next)
				fmt.Fprintf(cmd.OutOrStdout(), "Next: %s (%s)\n", title(nextCP), next)
			}
			sig := eng.Signals()
			fmt.Fprintf(cmd.OutOrStdout(), "Progress: %d/%d  Glow: %.1f%%  Fog: %.1f%%\n",
				sig.Completed, sig.Total, sig.GlowOffset, sig.FogReveal)
			return nil
		},
	}
}
