package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"taskventure/internal/progress"
	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest",
		Args:  requireTaskID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := strconv.ParseInt(args[0], 10, 64)

			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := e.svc.CompleteTask(ctx, storage.DefaultUserID, id)
			if errors.Is(err, progress.ErrAlreadyCompleted) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("Quest %d is already completed.", id)))
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Quest %d completed: +%d XP\n", ui.IconDone, res.TaskID, res.XPAwarded)
			if res.LeveledUp {
				fmt.Fprintf(out, "%s %s Level %d!\n", ui.IconBolt, ui.BadgeLevelUp, res.Level)
			}
			fmt.Fprintln(out, ui.XPBar(res.Experience, e.svc.LevelThreshold(), 20))
			for _, u := range res.Unlocked {
				fmt.Fprintf(out, "%s Achievement unlocked: %s\n", ui.IconTrophy, ui.Gold.Render(u.Title))
			}
			return nil
		},
	}

	return cmd
}

func requireTaskID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}
