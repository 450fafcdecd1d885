package root

import (
	"context"

	"github.com/spf13/cobra"

	"taskventure/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI quest board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, e.svc, e.store, cmd.OutOrStdout())
		},
	}

	return cmd
}
