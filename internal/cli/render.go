package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func (a *app) newRenderCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the roadmap as an SVG document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.open()
			if err != nil {
				return err
			}
			defer rm.Close()

			if out == "" || out == "-" {
				return rm.WriteSVG(cmd.OutOrStdout())
			}

			f, err := os.Create(out)
			if err != nil {
				return userError(fmt.Errorf("create %s: %w", out, err))
			}
			if err := rm.WriteSVG(f); err != nil {
				f.Close()
				return sysError(fmt.Errorf("render: %w", err))
			}
			if err := f.Close(); err != nil {
				return sysError(fmt.Errorf("close %s: %w", out, err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}
