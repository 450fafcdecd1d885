package progress

import (
	"context"
	"time"

	"taskventure/internal/model"
)

// CompleteResult reports what a completion changed.
type CompleteResult struct {
	TaskID       int64
	XPAwarded    int
	Level        int
	Experience   int
	LeveledUp    bool
	LevelsGained int
	Unlocked     []model.Unlock
}

// CompleteTask marks a pending task completed, awards XP per the table,
// rolls experience over into levels, and evaluates achievements. The whole
// sequence runs in one transaction, so a failure leaves nothing half-applied.
//
// A nonexistent task yields ErrTaskNotFound; a non-pending one yields
// ErrAlreadyCompleted with no mutation.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID int64) (*CompleteResult, error) {
	l := s.lockUser(userID)
	l.Lock()
	defer l.Unlock()

	var res *CompleteResult
	err := s.store.Transact(ctx, func(tx Store) error {
		task, err := tx.FindTask(ctx, taskID)
		if err != nil {
			return err
		}
		if task == nil {
			return ErrTaskNotFound
		}
		if task.Status != model.TaskPending {
			return ErrAlreadyCompleted
		}

		xp, err := s.xpTable.Award(task.Difficulty)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.UpdateTaskStatus(ctx, taskID, model.TaskCompleted, &now); err != nil {
			return err
		}

		p, err := tx.FindProfile(ctx, userID)
		if err != nil {
			return err
		}
		level, exp, gained := normalizeXP(p.Level, p.Experience+xp, s.threshold)
		if err := tx.UpdateProgress(ctx, userID, level, exp); err != nil {
			return err
		}

		unlocked, err := s.evaluateTx(ctx, tx, userID)
		if err != nil {
			return err
		}

		res = &CompleteResult{
			TaskID:       taskID,
			XPAwarded:    xp,
			Level:        level,
			Experience:   exp,
			LeveledUp:    gained > 0,
			LevelsGained: gained,
			Unlocked:     unlocked,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
