package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"taskventure/internal/model"
	"taskventure/internal/ui"
)

func newSubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub",
		Short: "Manage a quest's subtasks",
	}

	cmd.AddCommand(
		newSubAddCmd(),
		newSubDoneCmd(),
		newSubUndoCmd(),
		newSubRmCmd(),
	)
	return cmd
}

func newSubAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <taskID> <title>",
		Short: "Add a subtask to a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task id and title are required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("task id must be an integer")
			}
			if strings.TrimSpace(args[1]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			taskID, _ := strconv.ParseInt(args[0], 10, 64)
			title := strings.TrimSpace(args[1])

			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := e.store.FindTask(ctx, taskID)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("quest %d not found", taskID)
			}

			id, err := e.store.AddSubtask(ctx, taskID, title)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Subtask %d added to quest %d: %s\n", ui.IconPlus, id, taskID, title)
			return nil
		},
	}
}

func newSubDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <subtaskID>",
		Short: "Mark a subtask completed",
		Args:  requireTaskID,
		RunE:  subStatusRunE(model.SubtaskCompleted, "completed"),
	}
}

func newSubUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <subtaskID>",
		Short: "Mark a subtask incomplete again",
		Args:  requireTaskID,
		RunE:  subStatusRunE(model.SubtaskIncomplete, "incomplete"),
	}
}

func subStatusRunE(status model.SubtaskStatus, word string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, _ := strconv.ParseInt(args[0], 10, 64)

		e, cleanup, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := e.store.UpdateSubtaskStatus(ctx, id, status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Subtask %d marked %s.\n", ui.IconDone, id, word)
		return nil
	}
}

func newSubRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <subtaskID>",
		Short: "Delete a subtask",
		Args:  requireTaskID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, _ := strconv.ParseInt(args[0], 10, 64)

			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := e.store.DeleteSubtask(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Subtask %d deleted.\n", ui.IconWarn, id)
			return nil
		},
	}
}
