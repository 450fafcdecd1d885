package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taskventure/internal/model"
	"taskventure/internal/progress"
)

// DefaultUserID is the single local adventurer's row id.
const DefaultUserID int64 = 1

// defaultNames is the pool a first-run username is drawn from.
var defaultNames = []string{"Wanderer", "Lone Wolf", "Boss"}

// Store implements the engine's persistence port plus the task/subtask CRUD
// the CLI needs. Inside Transact the same type runs against the transaction.
type Store struct {
	db  *sqlx.DB // nil when this store is a transaction view
	ext sqlx.ExtContext
}

var _ progress.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db, ext: db}
}

// Transact runs fn inside a SQL transaction. A store that is already a
// transaction view just runs fn against itself.
func (s *Store) Transact(ctx context.Context, fn func(progress.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(&Store{ext: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

const profileCols = `user_id, username, experience, level, title, profile_picture, share_code, created_at`

// FindProfile returns the user's profile, creating the row on first run with
// a random username and a fresh share code.
func (s *Store) FindProfile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var p model.UserProfile
	err := sqlx.GetContext(ctx, s.ext, &p, `SELECT `+profileCols+` FROM users WHERE user_id = ?`, userID)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	username := defaultNames[rand.IntN(len(defaultNames))]
	shareCode := uuid.NewString()
	if _, err := s.ext.ExecContext(ctx,
		`INSERT INTO users (user_id, username, share_code) VALUES (?, ?, ?)`,
		userID, username, shareCode,
	); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	slog.Debug("created profile", "user_id", userID, "username", username)

	if err := sqlx.GetContext(ctx, s.ext, &p, `SELECT `+profileCols+` FROM users WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("reread profile: %w", err)
	}
	return &p, nil
}

// UpdateProgress writes level and experience as one atomic update.
func (s *Store) UpdateProgress(ctx context.Context, userID int64, level, experience int) error {
	if _, err := s.ext.ExecContext(ctx,
		`UPDATE users SET level = ?, experience = ? WHERE user_id = ?`,
		level, experience, userID,
	); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}

func (s *Store) UpdateUsername(ctx context.Context, userID int64, username string) error {
	if _, err := s.ext.ExecContext(ctx, `UPDATE users SET username = ? WHERE user_id = ?`, username, userID); err != nil {
		return fmt.Errorf("update username: %w", err)
	}
	return nil
}

func (s *Store) UpdateTitle(ctx context.Context, userID int64, title string) error {
	if _, err := s.ext.ExecContext(ctx, `UPDATE users SET title = ? WHERE user_id = ?`, title, userID); err != nil {
		return fmt.Errorf("update title: %w", err)
	}
	return nil
}

func (s *Store) UpdateAvatar(ctx context.Context, userID int64, asset string) error {
	if _, err := s.ext.ExecContext(ctx, `UPDATE users SET profile_picture = ? WHERE user_id = ?`, asset, userID); err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

// UnlockedTitles returns the set of achievement titles already recorded.
func (s *Store) UnlockedTitles(ctx context.Context) (map[string]bool, error) {
	var titles []string
	if err := sqlx.SelectContext(ctx, s.ext, &titles, `SELECT title FROM completed_achievements`); err != nil {
		return nil, fmt.Errorf("list unlocked titles: %w", err)
	}
	set := make(map[string]bool, len(titles))
	for _, t := range titles {
		set[t] = true
	}
	return set, nil
}

// ListUnlocks returns all unlock records, oldest first.
func (s *Store) ListUnlocks(ctx context.Context) ([]model.Unlock, error) {
	var out []model.Unlock
	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT title, icon, unlocked_at FROM completed_achievements ORDER BY unlocked_at ASC, id ASC`,
	); err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	return out, nil
}

// InsertUnlock records an unlock. The UNIQUE(title) constraint plus DO
// NOTHING makes a replay a no-op, so unlocks stay one-time events.
func (s *Store) InsertUnlock(ctx context.Context, u model.Unlock) error {
	if _, err := s.ext.ExecContext(ctx,
		`INSERT INTO completed_achievements (title, icon) VALUES (?, ?)
		 ON CONFLICT(title) DO NOTHING`,
		u.Title, u.Icon,
	); err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}
	return nil
}

// now returns the UTC wall clock, truncated the way sqlite stores it.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
