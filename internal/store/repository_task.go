package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
//
// Every owner-scoped statement carries owner_id in its WHERE clause, so a
// foreign task never leaves the database and looks exactly like a missing one.
type taskRepository struct {
	*DB
	logger *logger.Logger
}

// NewTaskRepository constructs a [TaskRepository] backed by db.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		DB:     db,
		logger: logger,
	}
}

func scanTask(row interface{ Scan(...any) error }, task *models.Task) error {
	return row.Scan(&task.ID, &task.Description, &task.Completed, &task.OwnerID, &task.CreatedAt, &task.UpdatedAt)
}

func classifyTaskError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

// CreateTask inserts task with the owner already set by the caller.
func (t *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	var created models.Task
	row := t.DB.QueryRowContext(ctx, createTask, task.Description, task.Completed, task.OwnerID)
	if err := scanTask(row, &created); err != nil {
		log.Err(err).
			Str("func", "taskRepository.CreateTask").
			Int64("owner_id", task.OwnerID).
			Msg("failed to create task")
		return models.Task{}, classifyTaskError(err)
	}

	return created, nil
}

// GetTask returns the task only when it belongs to ownerID.
func (t *taskRepository) GetTask(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	var task models.Task
	if err := scanTask(t.DB.QueryRowContext(ctx, getTask, taskID, ownerID), &task); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).
				Str("func", "taskRepository.GetTask").
				Int64("owner_id", ownerID).
				Int64("task_id", taskID).
				Msg("failed to get task")
		}
		return models.Task{}, classifyTaskError(err)
	}

	return task, nil
}

// ListTasks returns one page of the owner's tasks. The result is never nil.
func (t *taskRepository) ListTasks(ctx context.Context, query models.TaskQuery) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildListTasksQuery(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.ListTasks").
			Int64("owner_id", query.OwnerID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := t.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "taskRepository.ListTasks").
			Int64("owner_id", query.OwnerID).
			Msg("failed to execute query for listing tasks")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Task, 0, min(query.Limit, 64))
	for rows.Next() {
		var task models.Task
		if scanErr := scanTask(rows, &task); scanErr != nil {
			log.Err(scanErr).
				Str("func", "taskRepository.ListTasks").
				Int64("owner_id", query.OwnerID).
				Msg("failed to scan task row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, task)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "taskRepository.ListTasks").
			Int64("owner_id", query.OwnerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// UpdateTask applies the non-nil fields of update to the owner's task.
func (t *taskRepository) UpdateTask(ctx context.Context, ownerID, taskID int64, update models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateTaskQuery(ctx, ownerID, taskID, update)
	if err != nil {
		log.Err(err).Str("func", "taskRepository.UpdateTask").Msg("failed to create query")
		return models.Task{}, err
	}

	var updated models.Task
	if err = scanTask(t.DB.QueryRowContext(ctx, query, args...), &updated); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).
				Str("func", "taskRepository.UpdateTask").
				Int64("owner_id", ownerID).
				Int64("task_id", taskID).
				Msg("failed to update task")
		}
		return models.Task{}, classifyTaskError(err)
	}

	return updated, nil
}

// DeleteTask removes the owner's task and returns what was removed.
func (t *taskRepository) DeleteTask(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	var deleted models.Task
	if err := scanTask(t.DB.QueryRowContext(ctx, deleteTask, taskID, ownerID), &deleted); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).
				Str("func", "taskRepository.DeleteTask").
				Int64("owner_id", ownerID).
				Int64("task_id", taskID).
				Msg("failed to delete task")
		}
		return models.Task{}, classifyTaskError(err)
	}

	return deleted, nil
}
