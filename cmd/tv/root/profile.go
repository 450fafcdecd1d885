package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskventure/internal/storage"
	"taskventure/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Customize your adventurer",
	}

	cmd.AddCommand(
		newProfileRenameCmd(),
		newProfileTitleCmd(),
		newProfileAvatarCmd(),
	)
	return cmd
}

func newProfileRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <username>",
		Short: "Change your username",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			username := strings.TrimSpace(args[0])
			if username == "" {
				return errors.New("username is required")
			}

			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			// Ensure the profile row exists before updating it.
			if _, err := e.store.FindProfile(ctx, storage.DefaultUserID); err != nil {
				return err
			}
			if err := e.store.UpdateUsername(ctx, storage.DefaultUserID, username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s You are now known as %s.\n", ui.IconSparkle, ui.Title.Render(username))
			return nil
		},
	}
}

func newProfileTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title <achievement title>",
		Short: "Wear an unlocked achievement title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			title := strings.TrimSpace(args[0])
			if err := e.svc.SelectTitle(ctx, storage.DefaultUserID, title); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Now wearing the title %s.\n", ui.IconCrown, ui.Gold.Render(title))
			return nil
		},
	}
}

func newProfileAvatarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "avatar <name>",
		Short: "Pick an unlocked avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, cleanup, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a, err := e.svc.SelectAvatar(ctx, storage.DefaultUserID, strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Avatar set to %s.\n", ui.IconSparkle, ui.Title.Render(a.Name))
			return nil
		},
	}
}
