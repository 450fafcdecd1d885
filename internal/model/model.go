package model

import (
	"strings"
	"time"
)

// Difficulty is the tier a quest is created with. It is stored as text and
// drives the XP award through the configured XP table.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ParseDifficulty accepts user input in any case ("easy", "HARD", ...).
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, true
	case "medium":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	default:
		return "", false
	}
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

type SubtaskStatus string

const (
	SubtaskIncomplete SubtaskStatus = "incomplete"
	SubtaskCompleted  SubtaskStatus = "completed"
)

// UserProfile is the single local adventurer. Experience is the amount
// accumulated inside the current level, always below the level threshold
// once normalized.
type UserProfile struct {
	UserID         int64     `db:"user_id"`
	Username       string    `db:"username"`
	Experience     int       `db:"experience"`
	Level          int       `db:"level"`
	Title          *string   `db:"title"`
	ProfilePicture string    `db:"profile_picture"`
	ShareCode      string    `db:"share_code"`
	CreatedAt      time.Time `db:"created_at"`
}

type Task struct {
	TaskID      int64      `db:"task_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Status      TaskStatus `db:"status"`
	DateCreated time.Time  `db:"date_created"`
	CompletedAt *time.Time `db:"completed_at"`
	DueDate     *time.Time `db:"due_date"`
	Difficulty  Difficulty `db:"difficulty"`
}

type Subtask struct {
	SubtaskID   int64         `db:"subtask_id"`
	TaskID      int64         `db:"task_id"`
	Title       string        `db:"subtask_title"`
	Status      SubtaskStatus `db:"status"`
	DateCreated time.Time     `db:"date_created"`
	DueDate     *time.Time    `db:"due_date"`
}

// Metric names the value an achievement definition is checked against.
type Metric string

const (
	MetricTasksCompleted Metric = "tasks_completed"
	MetricLevel          Metric = "level"
)

// AchievementDef is one catalog entry. The catalog is configuration supplied
// to the engine, not something the engine hard-codes.
type AchievementDef struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Metric      Metric `mapstructure:"metric"`
	Required    int    `mapstructure:"required"`
	Icon        string `mapstructure:"icon"`
}

// Unlock is the persisted one-time record that an achievement's condition was
// met. The icon is denormalized at unlock time so later catalog edits do not
// rewrite history.
type Unlock struct {
	Title      string    `db:"title"`
	Icon       string    `db:"icon"`
	UnlockedAt time.Time `db:"unlocked_at"`
}

// Avatar is a selectable profile picture gated behind a level.
type Avatar struct {
	Name          string
	Asset         string
	RequiredLevel int
}
