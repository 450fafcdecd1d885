package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"taskventure/internal/ui"
)

func newRemindCmd() *cobra.Command {
	var within time.Duration

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "List pending quests due soon",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			tasks, err := e.store.ListTasksDueWithin(ctx, within)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Nothing due in the next %s.", within)))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconBell, "Quests due soon"))
			for _, t := range tasks {
				fmt.Fprintf(out, "%3d. %s %s\n", t.TaskID, t.Title,
					ui.Warn.Render("due "+t.DueDate.Local().Format("15:04")))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&within, "within", time.Hour, "Look-ahead window")

	return cmd
}
