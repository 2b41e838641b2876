package service

import (
	"context"
	"errors"
	"fmt"

	"taskService/internal/logger"
	"taskService/internal/models/task"
	rep "taskService/internal/repository"

	"go.uber.org/zap"
)

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	return nil
}

// CreateTask stores the task as given; missing fields become NULL.
func (s *TaskService) CreateTask(ctx context.Context, options ...task.TaskOption) (*task.Task, error) {
	newTask := &task.Task{}
	for _, opt := range options {
		opt(newTask)
	}

	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	logger.Info("Service: task created", zap.Int64("task_id", newTask.ID))
	return newTask, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: task not found", zap.String("target_id", id))
			return nil, NewNotFound(id, err)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return found, nil
}

// UpdateTaskByID replaces every user field at once, so all of them must be set.
func (s *TaskService) UpdateTaskByID(ctx context.Context, id string, options ...task.TaskOption) error {
	updated := &task.Task{}
	for _, opt := range options {
		opt(updated)
	}

	if err := updated.Validate(); err != nil {
		logger.Info("Service: update rejected", zap.String("target_id", id), zap.Error(err))
		return NewValidationError(err)
	}

	if err := s.repo.Update(ctx, id, updated); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: task not found", zap.String("target_id", id))
			return NewNotFound(id, err)
		}
		return fmt.Errorf("update task: %w", err)
	}

	logger.Info("Service: task updated", zap.String("task_id", id))
	return nil
}

func (s *TaskService) DeleteTaskByID(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
