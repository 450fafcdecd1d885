package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"taskventure/internal/progress"
	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "achievements",
		Aliases: []string{"ach"},
		Short:   "Evaluate and list achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fresh, err := e.svc.EvaluateAchievements(ctx, storage.DefaultUserID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, u := range fresh {
				fmt.Fprintf(out, "%s Achievement unlocked: %s\n", ui.IconTrophy, ui.Gold.Render(u.Title))
			}
			if len(fresh) > 0 {
				fmt.Fprintln(out, "")
			}

			metrics, err := e.svc.Metrics(ctx, storage.DefaultUserID)
			if err != nil {
				return err
			}
			unlocked, err := e.store.UnlockedTitles(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			fmt.Fprintln(out, ui.H2.Render("In progress"))
			ongoing := 0
			for _, def := range e.svc.Catalog() {
				if unlocked[def.Title] {
					continue
				}
				ongoing++
				value, _ := progress.MetricValue(def.Metric, metrics)
				if value > def.Required {
					value = def.Required
				}
				fmt.Fprintf(out, "- %s %s %s\n",
					ui.Key.Render(def.Title),
					ui.Muted.Render(def.Description),
					fmt.Sprintf("%d/%d", value, def.Required),
				)
			}
			if ongoing == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing left — you've earned them all."))
			}

			records, err := e.store.ListUnlocks(ctx)
			if err != nil {
				return err
			}
			if len(records) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("Earned"))
				for _, u := range records {
					fmt.Fprintf(out, "- %s %s\n", ui.Gold.Render(u.Title), ui.Muted.Render(u.UnlockedAt.Local().Format("2006-01-02")))
				}
			}
			return nil
		},
	}

	return cmd
}
