package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskventure/internal/model"
	"taskventure/internal/ui"
)

func newListCmd() *cobra.Command {
	var (
		completed bool
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []model.Task
			switch {
			case all:
				tasks, err = e.store.ListAllTasks(ctx)
			case completed:
				tasks, err = e.store.ListTasks(ctx, model.TaskCompleted)
			default:
				tasks, err = e.store.ListTasks(ctx, model.TaskPending)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No quests here. Add one with `tv add`."))
				return nil
			}

			counts, err := e.store.SubtaskCounts(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconQuest, "Quests"))
			for _, t := range tasks {
				line := fmt.Sprintf("%3d. %s [%s] %s", t.TaskID, ui.StatusText(t.Status), ui.DifficultyText(t.Difficulty), t.Title)
				if c, ok := counts[t.TaskID]; ok {
					line += ui.Muted.Render(fmt.Sprintf("  (%d/%d subtasks)", c[0], c[1]))
				}
				if t.DueDate != nil && t.Status == model.TaskPending {
					line += ui.Muted.Render("  due " + t.DueDate.Local().Format("2006-01-02 15:04"))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&completed, "completed", "c", false, "Show completed quests")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show all quests")

	return cmd
}
