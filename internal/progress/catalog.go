package progress

import (
	"fmt"

	"taskventure/internal/model"
)

// Metrics is a snapshot of the values achievement definitions are checked
// against. Current values, not deltas.
type Metrics struct {
	TasksCompleted int
	Level          int
}

// metricResolvers maps each metric family to the function extracting its
// value. Adding a new family means adding an entry here (and a model.Metric
// constant); the evaluation algorithm itself never changes.
var metricResolvers = map[model.Metric]func(Metrics) int{
	model.MetricTasksCompleted: func(m Metrics) int { return m.TasksCompleted },
	model.MetricLevel:          func(m Metrics) int { return m.Level },
}

// MetricValue resolves one metric against a snapshot.
func MetricValue(metric model.Metric, m Metrics) (int, bool) {
	resolve, ok := metricResolvers[metric]
	if !ok {
		return 0, false
	}
	return resolve(m), true
}

// DefaultCatalog is the built-in achievement set: the three task-count
// milestones from the app plus two level milestones.
func DefaultCatalog() []model.AchievementDef {
	return []model.AchievementDef{
		{Title: "Task Novice", Description: "Complete 10 tasks.", Metric: model.MetricTasksCompleted, Required: 10, Icon: "dedicated.png"},
		{Title: "Task Expert", Description: "Complete 50 tasks.", Metric: model.MetricTasksCompleted, Required: 50, Icon: "dedicated.png"},
		{Title: "Task Master", Description: "Complete 100 tasks.", Metric: model.MetricTasksCompleted, Required: 100, Icon: "gladiator.png"},
		{Title: "Seasoned Adventurer", Description: "Reach level 5.", Metric: model.MetricLevel, Required: 5, Icon: "knight.png"},
		{Title: "Veteran", Description: "Reach level 10.", Metric: model.MetricLevel, Required: 10, Icon: "astronaut.png"},
	}
}

// ValidateCatalog rejects malformed definitions up front so a bad config
// fails at startup instead of silently skipping entries.
func ValidateCatalog(catalog []model.AchievementDef) error {
	seen := make(map[string]bool, len(catalog))
	for i, def := range catalog {
		if def.Title == "" {
			return fmt.Errorf("%w: entry %d has an empty title", ErrInvalidCatalog, i)
		}
		if seen[def.Title] {
			return fmt.Errorf("%w: duplicate title %q", ErrInvalidCatalog, def.Title)
		}
		seen[def.Title] = true
		if def.Required <= 0 {
			return fmt.Errorf("%w: %q requires %d, must be positive", ErrInvalidCatalog, def.Title, def.Required)
		}
		if _, ok := metricResolvers[def.Metric]; !ok {
			return fmt.Errorf("%w: %q uses unknown metric %q", ErrInvalidCatalog, def.Title, def.Metric)
		}
	}
	return nil
}

// Evaluate returns the unlock records for every catalog entry whose metric
// is satisfied and whose title is not already unlocked. Each definition is
// independent; two entries on the same metric can both unlock in one call
// when the metric jumps past both thresholds.
func Evaluate(catalog []model.AchievementDef, m Metrics, unlocked map[string]bool) []model.Unlock {
	var fresh []model.Unlock
	for _, def := range catalog {
		if unlocked[def.Title] {
			continue
		}
		value, ok := MetricValue(def.Metric, m)
		if !ok || value < def.Required {
			continue
		}
		fresh = append(fresh, model.Unlock{Title: def.Title, Icon: def.Icon})
	}
	return fresh
}
