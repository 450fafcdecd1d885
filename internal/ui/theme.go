package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskventure/internal/model"
)

// TaskVenture theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBell    = "🔔"
	IconShield  = "🛡️"
	IconScroll  = "📜"
	IconCrown   = "👑"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	Card        = lipgloss.NewStyle().BorderStyle(lipgloss.DoubleBorder()).BorderForeground(cGold).Padding(1, 3)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status model.TaskStatus) string {
	switch status {
	case model.TaskCompleted:
		return Good.Render("completed")
	case model.TaskPending:
		return Warn.Render("pending")
	default:
		return Muted.Render(string(status))
	}
}

func DifficultyText(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return Good.Render("Easy")
	case model.DifficultyMedium:
		return Warn.Render("Medium")
	case model.DifficultyHard:
		return Bad.Render("Hard")
	default:
		return Muted.Render(string(d))
	}
}

// XPBar renders a progress bar for experience within the current level.
func XPBar(experience, threshold, width int) string {
	if width <= 0 {
		width = 20
	}
	if threshold <= 0 {
		threshold = 1
	}
	filled := experience * width / threshold
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return Gold.Render(bar) + " " + Muted.Render(fmt.Sprintf("%d/%d XP", experience, threshold))
}
