package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskventure/internal/model"
	"taskventure/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Move a completed quest back to pending",
		Long:  "Moves a completed quest back to pending. Earned XP stays earned; completing it again awards XP again.",
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
			if task.Status != model.TaskCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Quest %d is not completed.", id)))
				return nil
			}

			if err := e.store.UpdateTaskStatus(ctx, id, model.TaskPending, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Quest %d restored to pending: %s\n", ui.IconScroll, id, task.Title)
			return nil
		},
	}

	return cmd
}
