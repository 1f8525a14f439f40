package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreTask(ctx context.Context, task Task) (Task, error)
	GetTask(ctx context.Context, uid string) (Task, error)
	GetTasks(ctx context.Context, from, to time.Time) ([]Task, error)
	UpdateTask(ctx context.Context, task Task) error
	DeleteTask(ctx context.Context, uid string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreTask(ctx context.Context, task Task) (Task, error) {
	if task.UID == "" {
		task.UID = uuid.New().String()
	}

	query := `INSERT INTO task (uid, name, start_time, due_time) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, task.UID, task.Name, startMillis(task), task.DueTime.UnixMilli())
	if err != nil {
		log.Errorf("failed to store task: %v", err)
		return Task{}, fmt.Errorf("could not execute query: %w", err)
	}
	return task, nil
}

func (r *RepositoryImpl) GetTask(ctx context.Context, uid string) (Task, error) {
	query := `SELECT uid, name, start_time, due_time FROM task WHERE uid = ?`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	} else if err != nil {
		log.Errorf("failed to get task: %v", err)
		return Task{}, fmt.Errorf("could not query task: %w", err)
	}
	return task, nil
}

func (r *RepositoryImpl) GetTasks(ctx context.Context, from, to time.Time) ([]Task, error) {
	// A windowed task overlaps [from, to) strictly; a due-only task belongs
	// to the range when its due instant falls inside it.
	query := `SELECT uid, name, start_time, due_time
			  FROM task
			  WHERE (start_time IS NOT NULL AND start_time < ? AND due_time > ?)
			     OR (start_time IS NULL AND due_time >= ? AND due_time < ?)
			  ORDER BY due_time`

	rows, err := r.db.QueryContext(ctx, query, to.UnixMilli(), from.UnixMilli(), from.UnixMilli(), to.UnixMilli())
	if err != nil {
		log.Errorf("failed to query tasks: %v", err)
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0, 10)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *RepositoryImpl) UpdateTask(ctx context.Context, task Task) error {
	query := `UPDATE task SET name = ?, start_time = ?, due_time = ? WHERE uid = ?`

	result, err := r.db.ExecContext(ctx, query, task.Name, startMillis(task), task.DueTime.UnixMilli(), task.UID)
	if err != nil {
		log.Errorf("failed to update task: %v", err)
		return fmt.Errorf("could not execute query: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteTask(ctx context.Context, uid string) error {
	query := `DELETE FROM task WHERE uid = ?`

	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		log.Errorf("failed to delete task: %v", err)
		return fmt.Errorf("could not execute query: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func startMillis(task Task) any {
	if task.StartTime == nil {
		return nil
	}
	return task.StartTime.UnixMilli()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (Task, error) {
	var task Task
	var startMillis sql.NullInt64
	var dueMillis int64
	if err := row.Scan(&task.UID, &task.Name, &startMillis, &dueMillis); err != nil {
		return Task{}, err
	}
	if startMillis.Valid {
		start := time.UnixMilli(startMillis.Int64)
		task.StartTime = &start
	}
	task.DueTime = time.UnixMilli(dueMillis)
	return task, nil
}
