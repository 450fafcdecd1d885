package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"taskventure/internal/model"
	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		description string
		difficulty  string
		due         string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a quest",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			title := ""
			if len(args) == 1 {
				title = strings.TrimSpace(args[0])
			}

			if interactive || title == "" {
				if err := runAddForm(&title, &description, &difficulty, &due); err != nil {
					return err
				}
			}
			if title == "" {
				return errors.New("title is required")
			}

			diff, ok := model.ParseDifficulty(difficulty)
			if !ok {
				return fmt.Errorf("invalid difficulty %q (easy|medium|hard)", difficulty)
			}

			in := storage.TaskInsert{Title: title, Difficulty: diff}
			if d := strings.TrimSpace(description); d != "" {
				in.Description = &d
			}
			if due != "" {
				dueAt, err := parseDue(due)
				if err != nil {
					return err
				}
				in.DueDate = &dueAt
			}

			id, err := e.store.CreateTask(ctx, in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Quest %d added: %s (%s)\n", ui.IconPlus, id, ui.Title.Render(title), ui.DifficultyText(diff))
			if in.DueDate != nil {
				fmt.Fprintf(out, "   due %s\n", ui.Muted.Render(in.DueDate.Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "D", "", "Description")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "easy", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (2006-01-02 or \"2006-01-02 15:04\")")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the quest with a form")

	return cmd
}

func runAddForm(title, description, difficulty, due *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quest title").
				Value(title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(description),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy (+10 XP)", "easy"),
					huh.NewOption("Medium (+20 XP)", "medium"),
					huh.NewOption("Hard (+30 XP)", "hard"),
				).
				Value(difficulty),
			huh.NewInput().
				Title("Due date (optional, 2006-01-02)").
				Value(due).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := parseDue(s)
					return err
				}),
		),
	)
	return form.Run()
}

func parseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date %q (want 2006-01-02 or \"2006-01-02 15:04\")", s)
}
