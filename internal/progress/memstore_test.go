package progress_test

import (
	"context"
	"time"

	"taskventure/internal/model"
	"taskventure/internal/progress"
)

// memStore is an in-memory persistence-port double. Writes are immediately
// visible to reads (read-your-writes); Transact snapshots the state and
// restores it when fn fails, matching the port's all-or-nothing contract.
// failOn injects an error into a named operation.
type memStore struct {
	profile model.UserProfile
	tasks   map[int64]model.Task
	unlocks []model.Unlock
	failOn  map[string]error
}

func newMemStore(profile model.UserProfile, tasks ...model.Task) *memStore {
	s := &memStore{
		profile: profile,
		tasks:   map[int64]model.Task{},
		failOn:  map[string]error{},
	}
	for _, t := range tasks {
		s.tasks[t.TaskID] = t
	}
	return s
}

func (s *memStore) fail(op string) error {
	return s.failOn[op]
}

func (s *memStore) FindTask(ctx context.Context, taskID int64) (*model.Task, error) {
	if err := s.fail("FindTask"); err != nil {
		return nil, err
	}
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *memStore) UpdateTaskStatus(ctx context.Context, taskID int64, status model.TaskStatus, completedAt *time.Time) error {
	if err := s.fail("UpdateTaskStatus"); err != nil {
		return err
	}
	t := s.tasks[taskID]
	t.Status = status
	t.CompletedAt = completedAt
	s.tasks[taskID] = t
	return nil
}

func (s *memStore) CountTasksByStatus(ctx context.Context, status model.TaskStatus) (int, error) {
	if err := s.fail("CountTasksByStatus"); err != nil {
		return 0, err
	}
	n := 0
	for _, t := range s.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (s *memStore) FindProfile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	if err := s.fail("FindProfile"); err != nil {
		return nil, err
	}
	p := s.profile
	return &p, nil
}

func (s *memStore) UpdateProgress(ctx context.Context, userID int64, level, experience int) error {
	if err := s.fail("UpdateProgress"); err != nil {
		return err
	}
	s.profile.Level = level
	s.profile.Experience = experience
	return nil
}

func (s *memStore) UpdateTitle(ctx context.Context, userID int64, title string) error {
	if err := s.fail("UpdateTitle"); err != nil {
		return err
	}
	s.profile.Title = &title
	return nil
}

func (s *memStore) UpdateAvatar(ctx context.Context, userID int64, asset string) error {
	if err := s.fail("UpdateAvatar"); err != nil {
		return err
	}
	s.profile.ProfilePicture = asset
	return nil
}

func (s *memStore) UnlockedTitles(ctx context.Context) (map[string]bool, error) {
	if err := s.fail("UnlockedTitles"); err != nil {
		return nil, err
	}
	set := map[string]bool{}
	for _, u := range s.unlocks {
		set[u.Title] = true
	}
	return set, nil
}

func (s *memStore) InsertUnlock(ctx context.Context, u model.Unlock) error {
	if err := s.fail("InsertUnlock"); err != nil {
		return err
	}
	for _, existing := range s.unlocks {
		if existing.Title == u.Title {
			return nil
		}
	}
	s.unlocks = append(s.unlocks, u)
	return nil
}

func (s *memStore) Transact(ctx context.Context, fn func(progress.Store) error) error {
	if err := s.fail("Transact"); err != nil {
		return err
	}

	snapProfile := s.profile
	snapTasks := make(map[int64]model.Task, len(s.tasks))
	for id, t := range s.tasks {
		snapTasks[id] = t
	}
	snapUnlocks := append([]model.Unlock(nil), s.unlocks...)

	if err := fn(s); err != nil {
		s.profile = snapProfile
		s.tasks = snapTasks
		s.unlocks = snapUnlocks
		return err
	}
	return nil
}
