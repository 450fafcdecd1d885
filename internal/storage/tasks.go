package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskventure/internal/model"
)

const taskCols = `task_id, title, description, status, date_created, completed_at, due_date, difficulty`

// TaskInsert carries the caller-supplied fields of a new quest.
type TaskInsert struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Difficulty  model.Difficulty
}

func (s *Store) CreateTask(ctx context.Context, in TaskInsert) (int64, error) {
	res, err := s.ext.ExecContext(ctx,
		`INSERT INTO tasks (title, description, status, due_date, difficulty) VALUES (?, ?, ?, ?, ?)`,
		in.Title, in.Description, model.TaskPending, in.DueDate, in.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

// FindTask returns nil (no error) when the task does not exist.
func (s *Store) FindTask(ctx context.Context, taskID int64) (*model.Task, error) {
	var t model.Task
	err := sqlx.GetContext(ctx, s.ext, &t, `SELECT `+taskCols+` FROM tasks WHERE task_id = ?`, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

func (s *Store) ListTasks(ctx context.Context, status model.TaskStatus) ([]model.Task, error) {
	var out []model.Task
	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT `+taskCols+` FROM tasks WHERE status = ? ORDER BY task_id ASC`, status,
	); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (s *Store) ListAllTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT `+taskCols+` FROM tasks ORDER BY task_id ASC`,
	); err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	return out, nil
}

// ListTasksDueWithin returns pending quests whose due date falls inside the
// next window, soonest first.
func (s *Store) ListTasksDueWithin(ctx context.Context, window time.Duration) ([]model.Task, error) {
	from := now()
	to := from.Add(window)

	var out []model.Task
	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT `+taskCols+` FROM tasks
		 WHERE status = ? AND due_date IS NOT NULL AND due_date BETWEEN ? AND ?
		 ORDER BY due_date ASC`,
		model.TaskPending, from, to,
	); err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return out, nil
}

// UpdateTaskStatus writes the status transition; completedAt is set when
// moving to completed and cleared with nil on a restore.
func (s *Store) UpdateTaskStatus(ctx context.Context, taskID int64, status model.TaskStatus, completedAt *time.Time) error {
	if _, err := s.ext.ExecContext(ctx,
		`UPDATE tasks SET status = ?, completed_at = ? WHERE task_id = ?`,
		status, completedAt, taskID,
	); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

// TaskEdit carries the editable fields of an existing quest.
type TaskEdit struct {
	Title       string
	Description *string
	DueDate     *time.Time
}

func (s *Store) UpdateTask(ctx context.Context, taskID int64, in TaskEdit) error {
	if _, err := s.ext.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, due_date = ? WHERE task_id = ?`,
		in.Title, in.Description, in.DueDate, taskID,
	); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// DeleteTask removes the quest; subtasks cascade away with it.
func (s *Store) DeleteTask(ctx context.Context, taskID int64) error {
	if _, err := s.ext.ExecContext(ctx, `DELETE FROM tasks WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func (s *Store) CountTasksByStatus(ctx context.Context, status model.TaskStatus) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, s.ext, &n,
		`SELECT COUNT(*) FROM tasks WHERE status = ?`, status,
	); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
