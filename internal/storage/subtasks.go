package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"taskventure/internal/model"
)

const subtaskCols = `subtask_id, task_id, subtask_title, status, date_created, due_date`

func (s *Store) AddSubtask(ctx context.Context, taskID int64, title string) (int64, error) {
	res, err := s.ext.ExecContext(ctx,
		`INSERT INTO subtasks (task_id, subtask_title, status) VALUES (?, ?, ?)`,
		taskID, title, model.SubtaskIncomplete,
	)
	if err != nil {
		return 0, fmt.Errorf("insert subtask: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("subtask last insert id: %w", err)
	}
	return id, nil
}

func (s *Store) ListSubtasks(ctx context.Context, taskID int64) ([]model.Subtask, error) {
	var out []model.Subtask
	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT `+subtaskCols+` FROM subtasks WHERE task_id = ? ORDER BY subtask_id ASC`, taskID,
	); err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	return out, nil
}

func (s *Store) UpdateSubtaskStatus(ctx context.Context, subtaskID int64, status model.SubtaskStatus) error {
	if _, err := s.ext.ExecContext(ctx,
		`UPDATE subtasks SET status = ? WHERE subtask_id = ?`, status, subtaskID,
	); err != nil {
		return fmt.Errorf("update subtask status: %w", err)
	}
	return nil
}

func (s *Store) DeleteSubtask(ctx context.Context, subtaskID int64) error {
	if _, err := s.ext.ExecContext(ctx, `DELETE FROM subtasks WHERE subtask_id = ?`, subtaskID); err != nil {
		return fmt.Errorf("delete subtask: %w", err)
	}
	return nil
}

// SubtaskCounts returns done/total subtask counts keyed by task id, for the
// list views.
func (s *Store) SubtaskCounts(ctx context.Context) (map[int64][2]int, error) {
	rows, err := s.ext.QueryxContext(ctx,
		`SELECT task_id,
		        SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS done,
		        COUNT(*) AS total
		 FROM subtasks GROUP BY task_id`,
		model.SubtaskCompleted,
	)
	if err != nil {
		return nil, fmt.Errorf("count subtasks: %w", err)
	}
	defer rows.Close()

	out := map[int64][2]int{}
	for rows.Next() {
		var taskID int64
		var done, total int
		if err := rows.Scan(&taskID, &done, &total); err != nil {
			return nil, fmt.Errorf("scan subtask counts: %w", err)
		}
		out[taskID] = [2]int{done, total}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subtask count rows: %w", err)
	}
	return out, nil
}
