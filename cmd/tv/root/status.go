package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskventure/internal/model"
	"taskventure/internal/progress"
	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show your adventurer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := e.svc.Profile(ctx, storage.DefaultUserID)
			if err != nil {
				return err
			}
			completed, err := e.store.CountTasksByStatus(ctx, model.TaskCompleted)
			if err != nil {
				return err
			}
			pending, err := e.store.CountTasksByStatus(ctx, model.TaskPending)
			if err != nil {
				return err
			}
			unlocked, err := e.store.UnlockedTitles(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconShield, p.Username))
			if p.Title != nil {
				fmt.Fprintln(out, ui.LabelValue("Title", ui.Gold.Render(*p.Title)))
			}
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			fmt.Fprintln(out, ui.XPBar(p.Experience, e.svc.LevelThreshold(), 20))
			if p.ProfilePicture != "" {
				fmt.Fprintln(out, ui.LabelValue("Avatar", ui.Muted.Render(p.ProfilePicture)))
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("Quests completed", completed))
			fmt.Fprintln(out, ui.LabelValue("Quests pending", pending))
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", len(unlocked), len(e.svc.Catalog()))))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("🎭 Avatars"))
			for _, a := range e.svc.Avatars() {
				if progress.AvatarUnlocked(a, p.Level) {
					fmt.Fprintf(out, "- %s %s\n", ui.Good.Render(a.Name), ui.Muted.Render(fmt.Sprintf("(level %d)", a.RequiredLevel)))
				} else {
					fmt.Fprintf(out, "- %s %s\n", ui.Muted.Render(a.Name), ui.Bad.Render(fmt.Sprintf("locked until level %d", a.RequiredLevel)))
				}
			}
			return nil
		},
	}

	return cmd
}
