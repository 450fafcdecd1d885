package progress

import (
	"context"
	"time"

	"taskventure/internal/model"
)

// Store is the persistence port the engine drives. The sqlite implementation
// lives in internal/storage; tests substitute an in-memory double.
//
// Contract: reads observe all writes made earlier in the same call
// (read-your-writes), FindTask returns (nil, nil) for a missing task, and
// UpdateProgress applies level+experience as one atomic multi-field update.
type Store interface {
	FindTask(ctx context.Context, taskID int64) (*model.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status model.TaskStatus, completedAt *time.Time) error
	CountTasksByStatus(ctx context.Context, status model.TaskStatus) (int, error)

	FindProfile(ctx context.Context, userID int64) (*model.UserProfile, error)
	UpdateProgress(ctx context.Context, userID int64, level, experience int) error
	UpdateTitle(ctx context.Context, userID int64, title string) error
	UpdateAvatar(ctx context.Context, userID int64, asset string) error

	UnlockedTitles(ctx context.Context) (map[string]bool, error)
	InsertUnlock(ctx context.Context, u model.Unlock) error

	// Transact runs fn against a store view whose writes either all become
	// visible together or not at all.
	Transact(ctx context.Context, fn func(Store) error) error
}
