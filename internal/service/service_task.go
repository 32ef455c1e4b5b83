package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-manager/internal/config"
	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/internal/store"
	"github.com/MKhiriev/go-task-manager/internal/validators"
	"github.com/MKhiriev/go-task-manager/models"
)

type taskService struct {
	tasks     store.TaskRepository
	validator validators.Validator

	// maxPageSize is both the default and the ceiling of a listing limit.
	maxPageSize uint64

	logger *logger.Logger
}

func NewTaskService(tasks store.TaskRepository, cfg config.App, logger *logger.Logger) TaskService {
	return &taskService{
		tasks:       tasks,
		validator:   validators.NewTaskValidator(),
		maxPageSize: cfg.TasksMaxPageSize,
		logger:      logger,
	}
}

func mapTaskError(err error) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrNotFound
	}
	return err
}

// Create stores a new task owned by ownerID. The owner always comes from the
// caller; an "owner" key in fields is rejected as unknown.
func (t *taskService) Create(ctx context.Context, ownerID int64, fields models.Fields) (models.Task, error) {
	log := logger.FromContext(ctx)

	if err := t.validator.Validate(ctx, fields, validators.FieldDescriptionRequired); err != nil {
		return models.Task{}, err
	}

	update := validators.TaskUpdateFromFields(fields)
	task := models.Task{
		Description: *update.Description,
		OwnerID:     ownerID,
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}

	created, err := t.tasks.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Str("func", "*taskService.Create").Int64("owner_id", ownerID).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return created, nil
}

func (t *taskService) Get(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	task, err := t.tasks.GetTask(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, mapTaskError(err)
	}
	return task, nil
}

// List parses the raw listing parameters and returns one page of the owner's
// tasks. Bad completed, limit or skip values yield a *validators.ValidationError.
func (t *taskService) List(ctx context.Context, ownerID int64, params models.TaskListParams) ([]models.Task, error) {
	query, err := validators.ParseTaskQuery(ownerID, params, t.maxPageSize)
	if err != nil {
		return nil, err
	}

	tasks, err := t.tasks.ListTasks(ctx, query)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*taskService.List").Int64("owner_id", ownerID).Msg("listing tasks failed")
		return nil, fmt.Errorf("listing tasks failed: %w", err)
	}

	return tasks, nil
}

// Update applies a partial update to an owned task. An empty update returns
// the task untouched.
func (t *taskService) Update(ctx context.Context, ownerID, taskID int64, fields models.Fields) (models.Task, error) {
	if err := t.validator.Validate(ctx, fields); err != nil {
		return models.Task{}, err
	}

	update := validators.TaskUpdateFromFields(fields)
	if update.IsEmpty() {
		return t.Get(ctx, ownerID, taskID)
	}

	task, err := t.tasks.UpdateTask(ctx, ownerID, taskID, update)
	if err != nil {
		return models.Task{}, mapTaskError(err)
	}
	return task, nil
}

func (t *taskService) Delete(ctx context.Context, ownerID, taskID int64) (models.Task, error) {
	task, err := t.tasks.DeleteTask(ctx, ownerID, taskID)
	if err != nil {
		return models.Task{}, mapTaskError(err)
	}
	return task, nil
}
