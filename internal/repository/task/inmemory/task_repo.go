package inmemory

import (
	"context"
	"strconv"
	"sync"

	"taskService/internal/models/task"
	repo "taskService/internal/repository"
)

// TaskStorage keeps tasks in insertion order. Ids start at 1 and are never
// reused, even after a delete.
type TaskStorage struct {
	storage map[int64]task.Task
	mtx     *sync.RWMutex
	ids     []int64
	lastID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []int64{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.lastID++
	taskToCreate.ID = s.lastID

	s.storage[taskToCreate.ID] = *taskToCreate
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) List(ctx context.Context) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*task.Task, 0, len(s.ids))
	for _, id := range s.ids {
		stored := s.storage[id]
		res = append(res, &stored)
	}
	return res, nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id string) (*task.Task, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, repo.ErrNotFound
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &stored, nil
}

func (s *TaskStorage) Update(ctx context.Context, id string, taskToUpdate *task.Task) error {
	key, ok := parseID(id)
	if !ok {
		return repo.ErrNotFound
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[key]; !ok {
		return repo.ErrNotFound
	}

	updated := *taskToUpdate
	updated.ID = key
	s.storage[key] = updated
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return nil
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[key]; !ok {
		return nil
	}

	delete(s.storage, key)
	for ind, val := range s.ids {
		if val == key {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}

// parseID treats any id that is not an integer as matching no row.
func parseID(id string) (int64, bool) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return key, true
}
