package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// WriteText prints the board as a table, one row per checkpoint in the
// order given, followed by the signal summary.
func WriteText(w io.Writer, cps []types.Checkpoint, board Board) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBRANCH\tORDER\tSTATE\tACTION\tTITLE")
	fmt.Fprintln(tw, "--\t------\t-----\t-----\t------\t-----")

	for _, cp := range cps {
		n, ok := board.Node(cp.ID)
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			displayID(cp.ID), cp.Branch, cp.Order, stateLabel(n), n.Button.Label, cp.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nGlow: %.1f%%  Fog: %.1f%%\n", board.GlowOffset, board.FogReveal)
	return err
}

func stateLabel(n Node) string {
	switch {
	case n.Locked:
		return "locked"
	case !n.Button.Enabled:
		return "done"
	default:
		return "open"
	}
}

// displayID truncates generated ids for display.
func displayID(id string) string {
	if len(id) > 12 {
		return id[:8]
	}
	return id
}
