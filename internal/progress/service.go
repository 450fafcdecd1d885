package progress

import (
	"context"
	"fmt"
	"sync"

	"taskventure/internal/model"
)

// Options is the engine's configuration surface. Zero values fall back to
// the defaults, so progress.NewService(store, progress.Options{}) is valid.
type Options struct {
	XPTable        XPTable
	LevelThreshold int
	Catalog        []model.AchievementDef
	Avatars        []model.Avatar
}

// Service is the progression engine: XP accrual, level rollover, achievement
// unlock bookkeeping, and the level-gated profile cosmetics built on top.
type Service struct {
	store     Store
	xpTable   XPTable
	threshold int
	catalog   []model.AchievementDef
	avatars   []model.Avatar

	// userLocks serializes the read-modify-write on a profile row. The store
	// gives atomic multi-field updates; this guards the whole sequence.
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

func NewService(store Store, opts Options) (*Service, error) {
	if opts.XPTable == nil {
		opts.XPTable = DefaultXPTable()
	}
	if opts.LevelThreshold == 0 {
		opts.LevelThreshold = DefaultLevelThreshold
	}
	if opts.Catalog == nil {
		opts.Catalog = DefaultCatalog()
	}
	if opts.Avatars == nil {
		opts.Avatars = DefaultAvatars()
	}

	if opts.LevelThreshold <= 0 {
		return nil, fmt.Errorf("%w: level threshold must be positive, got %d", ErrInvalidCatalog, opts.LevelThreshold)
	}
	if err := opts.XPTable.validate(); err != nil {
		return nil, err
	}
	if err := ValidateCatalog(opts.Catalog); err != nil {
		return nil, err
	}

	return &Service{
		store:     store,
		xpTable:   opts.XPTable,
		threshold: opts.LevelThreshold,
		catalog:   opts.Catalog,
		avatars:   opts.Avatars,
		userLocks: map[int64]*sync.Mutex{},
	}, nil
}

// LevelThreshold reports the configured XP-per-level amount.
func (s *Service) LevelThreshold() int { return s.threshold }

// Catalog returns the achievement definitions the engine evaluates.
func (s *Service) Catalog() []model.AchievementDef { return s.catalog }

func (s *Service) lockUser(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// Profile returns the user's profile, re-normalizing level/experience first
// if an external write or a lowered threshold left pending level-ups.
func (s *Service) Profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	return s.ApplyPendingLevelUps(ctx, userID)
}

// ApplyPendingLevelUps folds any experience at or above the threshold into
// levels and persists the result. With a normalized profile it is a pure read.
func (s *Service) ApplyPendingLevelUps(ctx context.Context, userID int64) (*model.UserProfile, error) {
	l := s.lockUser(userID)
	l.Lock()
	defer l.Unlock()

	p, err := s.store.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Experience < s.threshold {
		return p, nil
	}

	level, exp, _ := normalizeXP(p.Level, p.Experience, s.threshold)
	if err := s.store.UpdateProgress(ctx, userID, level, exp); err != nil {
		return nil, err
	}
	p.Level = level
	p.Experience = exp
	return p, nil
}

// Metrics fetches the current achievement metrics snapshot.
func (s *Service) Metrics(ctx context.Context, userID int64) (Metrics, error) {
	completed, err := s.store.CountTasksByStatus(ctx, model.TaskCompleted)
	if err != nil {
		return Metrics{}, err
	}
	p, err := s.store.FindProfile(ctx, userID)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{TasksCompleted: completed, Level: p.Level}, nil
}

// EvaluateAchievements checks the catalog against the user's current metrics
// and persists any newly earned unlocks. Re-running with unchanged inputs
// returns an empty list, never duplicates.
func (s *Service) EvaluateAchievements(ctx context.Context, userID int64) ([]model.Unlock, error) {
	var fresh []model.Unlock
	err := s.store.Transact(ctx, func(tx Store) error {
		var err error
		fresh, err = s.evaluateTx(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *Service) evaluateTx(ctx context.Context, tx Store, userID int64) ([]model.Unlock, error) {
	completed, err := tx.CountTasksByStatus(ctx, model.TaskCompleted)
	if err != nil {
		return nil, err
	}
	p, err := tx.FindProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := tx.UnlockedTitles(ctx)
	if err != nil {
		return nil, err
	}

	fresh := Evaluate(s.catalog, Metrics{TasksCompleted: completed, Level: p.Level}, unlocked)
	for _, u := range fresh {
		if err := tx.InsertUnlock(ctx, u); err != nil {
			return nil, err
		}
	}
	return fresh, nil
}
