package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"task-tracker.com/task-tracker/internal/constants"
	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

// Clock supplies the timestamps stamped on tasks.
type Clock func() time.Time

func SystemClock() time.Time {
	return time.Now()
}

type ListResult struct {
	Tasks []model.Task
	// Total is the size of the whole collection, before filtering.
	Total int
}

// TaskService runs each operation as load, mutate in memory, save.
type TaskService struct {
	repo   repository.Store
	now    Clock
	logger *log.Logger
}

func NewTaskService(repo repository.Store, clock Clock, logger *log.Logger) *TaskService {
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TaskService{
		repo:   repo,
		now:    clock,
		logger: logger,
	}
}

func (s *TaskService) AddTask(ctx context.Context, description string) (int, error) {
	description, err := validateDescription(description)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.mutate(ctx, func(c *model.TaskCollection) error {
		next, ok := c.NextID()
		if !ok {
			return fmt.Errorf("%w: no task ids left", apperrors.ErrInvalidInput)
		}
		now := s.timestamp()
		task := model.Task{
			ID:          next,
			Description: description,
			Status:      constants.StatusTodo,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		c.Append(task)
		id = task.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Debug("task added", "id", id)
	return id, nil
}

// ListTasks returns tasks in stored order. An empty status returns every task;
// any other value is matched exactly.
func (s *TaskService) ListTasks(ctx context.Context, status constants.TaskStatus) (ListResult, error) {
	collection, err := s.repo.Load(ctx)
	if err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Tasks: collection.Filter(status),
		Total: len(collection.Tasks),
	}, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int, description string) error {
	if err := validateID(id); err != nil {
		return err
	}
	description, err := validateDescription(description)
	if err != nil {
		return err
	}

	err = s.mutate(ctx, func(c *model.TaskCollection) error {
		idx, err := findTask(c, id)
		if err != nil {
			return err
		}
		task := &c.Tasks[idx]
		task.Description = description
		task.UpdatedAt = s.stamp(task.UpdatedAt)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task updated", "id", id)
	return nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	if err := validateID(id); err != nil {
		return err
	}

	err := s.mutate(ctx, func(c *model.TaskCollection) error {
		idx, err := findTask(c, id)
		if err != nil {
			return err
		}
		c.Remove(idx)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task deleted", "id", id)
	return nil
}

// SetStatus moves a task to any of the three statuses, in any direction.
func (s *TaskService) SetStatus(ctx context.Context, id int, status constants.TaskStatus) error {
	if err := validateID(id); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidInput, status)
	}

	err := s.mutate(ctx, func(c *model.TaskCollection) error {
		idx, err := findTask(c, id)
		if err != nil {
			return err
		}
		task := &c.Tasks[idx]
		task.Status = status
		task.UpdatedAt = s.stamp(task.UpdatedAt)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task status changed", "id", id, "status", status)
	return nil
}

func (s *TaskService) mutate(ctx context.Context, apply func(c *model.TaskCollection) error) error {
	collection, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if err := apply(&collection); err != nil {
		return err
	}
	return s.repo.Save(ctx, collection)
}

// timestamp reads the clock at the precision the stores keep, so a value
// compared in memory compares the same after a save.
func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// stamp keeps updatedAt strictly increasing even if the clock stalls or steps back.
func (s *TaskService) stamp(previous time.Time) time.Time {
	now := s.timestamp()
	if !now.After(previous) {
		now = previous.Add(time.Microsecond)
	}
	return now
}

func findTask(c *model.TaskCollection, id int) (int, error) {
	idx := c.Find(id)
	if idx < 0 {
		return -1, fmt.Errorf("%w: id %d", apperrors.ErrTaskNotFound, id)
	}
	return idx, nil
}

func validateID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: task id must be positive, got %d", apperrors.ErrInvalidInput, id)
	}
	return nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("%w: description must not be empty", apperrors.ErrInvalidInput)
	}
	return description, nil
}
