package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roadmap/internal/engine"
	"github.com/mesh-intelligence/roadmap/pkg/roadmap"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// statusRow is one checkpoint in JSON status output.
type statusRow struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	URL    string        `json:"url"`
	Branch string        `json:"branch"`
	Order  int           `json:"order"`
	Status engine.Status `json:"status"`
	Button types.Button  `json:"button"`
}

// statusDoc is the JSON form of the board.
type statusDoc struct {
	Root        string         `json:"root,omitempty"`
	Checkpoints []statusRow    `json:"checkpoints"`
	Signals     engine.Signals `json:"signals"`
	Progress    []string       `json:"progress"`
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show every checkpoint with its lock state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.open()
			if err != nil {
				return err
			}
			defer rm.Close()
			return a.printBoard(cmd.OutOrStdout(), rm)
		},
	}
}

// printBoard writes the board as a table, or as JSON with --json.
func (a *app) printBoard(w io.Writer, rm *roadmap.Roadmap) error {
	eng := rm.Engine()
	if !a.flags.jsonMode && !eng.Active() {
		fmt.Fprintln(w, "No checkpoints. Add some with \"roadmap checkpoint add\" or set catalog in config.yaml.")
		return nil
	}

	if a.flags.jsonMode {
		doc := statusDoc{
			Checkpoints: []statusRow{},
			Signals:     eng.Signals(),
			Progress:    eng.Progress(),
		}
		doc.Root, _ = eng.Root()
		for _, cp := range rm.Checkpoints() {
			st := eng.Status(cp.ID)
			doc.Checkpoints = append(doc.Checkpoints, statusRow{
				ID:     cp.ID,
				Title:  cp.Title,
				URL:    cp.URL,
				Branch: cp.Branch,
				Order:  cp.Order,
				Status: st,
				Button: engine.ButtonFor(st),
			})
		}
		return writeJSON(w, doc)
	}

	return rm.WriteText(w)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
