package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskventure/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quest (and its subtasks)",
		Args:  requireTaskID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := strconv.ParseInt(args[0], 10, 64)

			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := e.store.FindTask(ctx, id)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("quest %d not found", id)
			}

			if err := e.store.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Quest %d deleted: %s\n", ui.IconWarn, id, task.Title)
			return nil
		},
	}

	return cmd
}
