package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskService/internal/config"
	"taskService/internal/logger"
	"taskService/internal/models/task"
	repo "taskService/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const slowQuery = 100 * time.Millisecond

// Ids are passed through as strings; pgx sends them in text format and the
// server does the conversion, so a non-numeric id fails as a database error.
const (
	insertTask = `INSERT INTO tasks (title, description, status, due_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id`

	selectTasks = `SELECT id, title, description, status, due_date::text AS due_date
			FROM tasks`

	selectTaskByID = selectTasks + `
			WHERE id = $1`

	updateTask = `UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				due_date = $4
			WHERE id = $5`

	deleteTask = `DELETE FROM tasks
			WHERE id = $1`
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		logger.Error("Repository: failed to parse database config", err)
		return nil, fmt.Errorf("parse config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	poolConfig.MinConns = cfg.MinConnections
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	return NewWithConfig(ctx, poolConfig)
}

func NewWithConfig(ctx context.Context, poolConfig *pgxpool.Config) (*Storage, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: failed to create pool", err)
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: ping failed", err)
		return nil, fmt.Errorf("ping: %w", err)
	}

	logger.Info("Repository: connected to PostgreSQL",
		zap.String("host", poolConfig.ConnConfig.Host),
		zap.String("database", poolConfig.ConnConfig.Database),
		zap.Int32("max_conns", poolConfig.MaxConns))
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: closed all PostgreSQL connections")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: ping failed", err)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	err := s.pool.QueryRow(ctx, insertTask,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.DueDate,
	).Scan(&taskToCreate.ID)
	if err != nil {
		logger.Error("Repository: failed to insert task", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("insert task: %w", err)
	}

	warnIfSlow("create", start)
	return nil
}

func (s *Storage) List(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx, selectTasks)
	if err != nil {
		logger.Error("Repository: failed to query tasks", err)
		return nil, fmt.Errorf("select tasks: %w", err)
	}

	tasks, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[task.Task])
	if err != nil {
		logger.Error("Repository: failed to scan tasks", err)
		return nil, fmt.Errorf("scan tasks: %w", err)
	}

	warnIfSlow("list", start)
	return tasks, nil
}

func (s *Storage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx, selectTaskByID, id)
	if err != nil {
		logger.Error("Repository: failed to query task", err, zap.String("task_id", id))
		return nil, fmt.Errorf("select task: %w", err)
	}

	found, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[task.Task])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: failed to scan task", err, zap.String("task_id", id))
		return nil, fmt.Errorf("select task: %w", err)
	}

	warnIfSlow("get", start)
	return found, nil
}

// Update overwrites all user fields of the row with the given id.
func (s *Storage) Update(ctx context.Context, id string, taskToUpdate *task.Task) error {
	start := time.Now()

	tag, err := s.pool.Exec(ctx, updateTask,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.DueDate,
		id,
	)
	if err != nil {
		logger.Error("Repository: failed to update task", err, zap.String("task_id", id))
		return fmt.Errorf("update task: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow("update", start)
	return nil
}

// Delete removes the row if it exists. A missing row is not an error.
func (s *Storage) Delete(ctx context.Context, id string) error {
	start := time.Now()

	if _, err := s.pool.Exec(ctx, deleteTask, id); err != nil {
		logger.Error("Repository: failed to delete task", err, zap.String("task_id", id))
		return fmt.Errorf("delete task: %w", err)
	}

	warnIfSlow("delete", start)
	return nil
}

func warnIfSlow(op string, start time.Time) {
	if elapsed := time.Since(start); elapsed > slowQuery {
		logger.Warn("Repository: slow query", zap.String("operation", op), zap.Duration("ms", elapsed))
	}
}
