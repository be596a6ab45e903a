package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roadmap/pkg/roadmap"
)

const modulePath = "github.com/mesh-intelligence/roadmap"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the roadmap version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "roadmap v%s\nmodule: %s\n", roadmap.Version, modulePath)
			return nil
		},
	}
}
