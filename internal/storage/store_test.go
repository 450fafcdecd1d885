package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"taskventure/internal/model"
	"taskventure/internal/progress"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestFirstRunProfile(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p, err := s.FindProfile(ctx, DefaultUserID)
	if err != nil {
		t.Fatalf("FindProfile: %v", err)
	}
	if p.UserID != DefaultUserID {
		t.Errorf("user_id = %d, want %d", p.UserID, DefaultUserID)
	}
	if p.Level != 1 || p.Experience != 0 {
		t.Errorf("(level, experience) = (%d, %d), want (1, 0)", p.Level, p.Experience)
	}

	found := false
	for _, name := range defaultNames {
		if p.Username == name {
			found = true
		}
	}
	if !found {
		t.Errorf("username %q not drawn from the default pool", p.Username)
	}
	if _, err := uuid.Parse(p.ShareCode); err != nil {
		t.Errorf("share code %q is not a UUID: %v", p.ShareCode, err)
	}

	// Second read returns the same row, it does not re-roll the name.
	again, err := s.FindProfile(ctx, DefaultUserID)
	if err != nil {
		t.Fatalf("FindProfile again: %v", err)
	}
	if again.Username != p.Username || again.ShareCode != p.ShareCode {
		t.Errorf("profile changed between reads: %+v vs %+v", p, again)
	}
}

func TestTaskCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	desc := "Sharpen the blade first"
	due := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	id, err := s.CreateTask(ctx, TaskInsert{
		Title:       "Slay the backlog",
		Description: &desc,
		DueDate:     &due,
		Difficulty:  model.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	task, err := s.FindTask(ctx, id)
	if err != nil {
		t.Fatalf("FindTask: %v", err)
	}
	if task == nil {
		t.Fatal("expected task, got nil")
	}
	if task.Title != "Slay the backlog" || task.Difficulty != model.DifficultyHard {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Status != model.TaskPending {
		t.Errorf("status = %s, want pending", task.Status)
	}
	if task.Description == nil || *task.Description != desc {
		t.Errorf("description = %v, want %q", task.Description, desc)
	}

	missing, err := s.FindTask(ctx, 9999)
	if err != nil {
		t.Fatalf("FindTask missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing task, got %+v", missing)
	}

	// Complete, then the status write must be visible to the very next read.
	now := time.Now().UTC().Truncate(time.Second)
	if err := s.UpdateTaskStatus(ctx, id, model.TaskCompleted, &now); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	task, err = s.FindTask(ctx, id)
	if err != nil {
		t.Fatalf("FindTask after complete: %v", err)
	}
	if task.Status != model.TaskCompleted || task.CompletedAt == nil {
		t.Errorf("status = %s, completed_at = %v; want completed with timestamp", task.Status, task.CompletedAt)
	}

	n, err := s.CountTasksByStatus(ctx, model.TaskCompleted)
	if err != nil {
		t.Fatalf("CountTasksByStatus: %v", err)
	}
	if n != 1 {
		t.Errorf("completed count = %d, want 1", n)
	}

	// Restore clears the completion timestamp.
	if err := s.UpdateTaskStatus(ctx, id, model.TaskPending, nil); err != nil {
		t.Fatalf("restore: %v", err)
	}
	task, _ = s.FindTask(ctx, id)
	if task.Status != model.TaskPending || task.CompletedAt != nil {
		t.Errorf("after restore: status = %s, completed_at = %v", task.Status, task.CompletedAt)
	}

	if err := s.DeleteTask(ctx, id); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	task, _ = s.FindTask(ctx, id)
	if task != nil {
		t.Fatal("task still present after delete")
	}
}

func TestSubtaskCascadeDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	taskID, err := s.CreateTask(ctx, TaskInsert{Title: "Host game night", Difficulty: model.DifficultyMedium})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	subID, err := s.AddSubtask(ctx, taskID, "Buy snacks")
	if err != nil {
		t.Fatalf("AddSubtask: %v", err)
	}
	if _, err := s.AddSubtask(ctx, taskID, "Pick a game"); err != nil {
		t.Fatalf("AddSubtask: %v", err)
	}

	if err := s.UpdateSubtaskStatus(ctx, subID, model.SubtaskCompleted); err != nil {
		t.Fatalf("UpdateSubtaskStatus: %v", err)
	}
	counts, err := s.SubtaskCounts(ctx)
	if err != nil {
		t.Fatalf("SubtaskCounts: %v", err)
	}
	if c := counts[taskID]; c != [2]int{1, 2} {
		t.Errorf("counts = %v, want [1 2]", c)
	}

	if err := s.DeleteTask(ctx, taskID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	subs, err := s.ListSubtasks(ctx, taskID)
	if err != nil {
		t.Fatalf("ListSubtasks: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("subtasks survived the cascade: %+v", subs)
	}
}

func TestInsertUnlockIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := model.Unlock{Title: "Task Novice", Icon: "dedicated.png"}
	if err := s.InsertUnlock(ctx, u); err != nil {
		t.Fatalf("InsertUnlock: %v", err)
	}
	if err := s.InsertUnlock(ctx, u); err != nil {
		t.Fatalf("InsertUnlock replay: %v", err)
	}

	unlocks, err := s.ListUnlocks(ctx)
	if err != nil {
		t.Fatalf("ListUnlocks: %v", err)
	}
	if len(unlocks) != 1 {
		t.Fatalf("got %d unlock rows, want 1", len(unlocks))
	}

	titles, err := s.UnlockedTitles(ctx)
	if err != nil {
		t.Fatalf("UnlockedTitles: %v", err)
	}
	if !titles["Task Novice"] {
		t.Fatal("expected Task Novice in unlocked set")
	}
}

func TestListTasksDueWithin(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	soon := time.Now().UTC().Add(30 * time.Minute).Truncate(time.Second)
	later := time.Now().UTC().Add(3 * time.Hour).Truncate(time.Second)

	soonID, err := s.CreateTask(ctx, TaskInsert{Title: "Due soon", DueDate: &soon, Difficulty: model.DifficultyEasy})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.CreateTask(ctx, TaskInsert{Title: "Due later", DueDate: &later, Difficulty: model.DifficultyEasy}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := s.CreateTask(ctx, TaskInsert{Title: "No due date", Difficulty: model.DifficultyEasy}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	due, err := s.ListTasksDueWithin(ctx, time.Hour)
	if err != nil {
		t.Fatalf("ListTasksDueWithin: %v", err)
	}
	if len(due) != 1 || due[0].TaskID != soonID {
		t.Fatalf("got %+v, want only task %d", due, soonID)
	}

	// Completed quests never need a reminder.
	now := time.Now().UTC()
	if err := s.UpdateTaskStatus(ctx, soonID, model.TaskCompleted, &now); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	due, err = s.ListTasksDueWithin(ctx, time.Hour)
	if err != nil {
		t.Fatalf("ListTasksDueWithin: %v", err)
	}
	if len(due) != 0 {
		t.Fatalf("got %+v, want none", due)
	}
}

func TestTransactRollsBack(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Transact(ctx, func(tx progress.Store) error {
		if err := tx.InsertUnlock(ctx, model.Unlock{Title: "Ghost", Icon: "x.png"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	titles, err := s.UnlockedTitles(ctx)
	if err != nil {
		t.Fatalf("UnlockedTitles: %v", err)
	}
	if len(titles) != 0 {
		t.Fatalf("transaction leaked rows: %v", titles)
	}
}

func TestCompleteTaskEndToEnd(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	svc, err := progress.NewService(s, progress.Options{
		Catalog: []model.AchievementDef{
			{Title: "First Quest", Metric: model.MetricTasksCompleted, Required: 1, Icon: "a.png"},
		},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	id, err := s.CreateTask(ctx, TaskInsert{Title: "Water the plants", Difficulty: model.DifficultyMedium})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	res, err := svc.CompleteTask(ctx, DefaultUserID, id)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.XPAwarded != 20 || res.Level != 1 || res.Experience != 20 {
		t.Errorf("result = %+v, want +20 XP at level 1", res)
	}
	if len(res.Unlocked) != 1 || res.Unlocked[0].Title != "First Quest" {
		t.Errorf("unlocked = %+v, want First Quest", res.Unlocked)
	}

	// Rapid second tap: the status write is already visible, so no double award.
	if _, err := svc.CompleteTask(ctx, DefaultUserID, id); !errors.Is(err, progress.ErrAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
	}

	p, err := s.FindProfile(ctx, DefaultUserID)
	if err != nil {
		t.Fatalf("FindProfile: %v", err)
	}
	if p.Experience != 20 {
		t.Errorf("experience = %d, want exactly one award", p.Experience)
	}
}
