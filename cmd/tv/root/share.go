package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskventure/internal/model"
	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Render a shareable profile card",
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

			var b strings.Builder
			b.WriteString(ui.Title.Render(p.Username) + "\n")
			if p.Title != nil {
				b.WriteString(ui.Gold.Render(*p.Title) + "\n")
			} else {
				b.WriteString(ui.Muted.Render("No title") + "\n")
			}
			b.WriteString("\n")
			b.WriteString(ui.LabelValue("Level", p.Level) + "\n")
			b.WriteString(ui.LabelValue("Completed quests", completed) + "\n")
			b.WriteString("\n")
			b.WriteString(ui.Muted.Render("Share code: " + p.ShareCode))

			fmt.Fprintln(cmd.OutOrStdout(), ui.Card.Render(b.String()))
			return nil
		},
	}

	return cmd
}
