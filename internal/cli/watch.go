package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/roadmap/internal/watch"
)

func (a *app) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reprint the board whenever progress changes",
		Long:  "Print the board, then print it again each time progress is saved, by this\nor any other roadmap process, until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rm, err := a.open()
			if err != nil {
				return err
			}
			path := rm.StorePath()
			err = a.printBoard(cmd.OutOrStdout(), rm)
			rm.Close()
			if err != nil {
				return err
			}

			w, err := watch.New(path, a.log)
			if err != nil {
				return sysError(err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return w.Run(ctx, func() {
				rm, err := a.open()
				if err != nil {
					a.log.Warn("reloading roadmap", zap.Error(err))
					return
				}
				defer rm.Close()
				fmt.Fprintln(cmd.OutOrStdout())
				if err := a.printBoard(cmd.OutOrStdout(), rm); err != nil {
					a.log.Warn("printing board", zap.Error(err))
				}
			})
		},
	}
}
