package root

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newEditCmd() *cobra.Command {
	var (
		title       string
		description string
		due         string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a quest's title, description, or due date",
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

			edit := storage.TaskEdit{
				Title:       task.Title,
				Description: task.Description,
				DueDate:     task.DueDate,
			}
			if cmd.Flags().Changed("title") {
				if strings.TrimSpace(title) == "" {
					return fmt.Errorf("title cannot be empty")
				}
				edit.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("desc") {
				if d := strings.TrimSpace(description); d == "" {
					edit.Description = nil
				} else {
					edit.Description = &d
				}
			}
			if cmd.Flags().Changed("due") {
				if strings.TrimSpace(due) == "" {
					edit.DueDate = nil
				} else {
					dueAt, err := parseDue(due)
					if err != nil {
						return err
					}
					edit.DueDate = &dueAt
				}
			}

			if err := e.store.UpdateTask(ctx, id, edit); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Quest %d updated.\n", ui.IconSparkle, id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "desc", "D", "", "New description (empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (empty clears)")

	return cmd
}
