package handlers

import (
	"context"

	"taskService/internal/models/task"
)

type TaskService interface {
	HealthCheck(context.Context) error
	CreateTask(context.Context, ...task.TaskOption) (*task.Task, error)
	ListTasks(context.Context) ([]*task.Task, error)
	GetTaskByID(context.Context, string) (*task.Task, error)
	UpdateTaskByID(context.Context, string, ...task.TaskOption) error
	DeleteTaskByID(context.Context, string) error
}
