package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskventure/internal/ui"
)

const Version = "0.1.0"

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "tv",
	Short:         "TaskVenture — gamified local task manager",
	Long:          "TaskVenture turns your to-do list into quests: completing them earns XP, levels, and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/taskventure/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	rootCmd.AddCommand(
		newAddCmd(),
		newListCmd(),
		newDoCmd(),
		newRestoreCmd(),
		newEditCmd(),
		newRmCmd(),
		newSubCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newProfileCmd(),
		newShareCmd(),
		newRemindCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
