package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskService/internal/handlers"
	"taskService/internal/handlers/dto"
	"taskService/internal/models/task"
	"taskService/internal/repository"
	"taskService/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// The option-based methods resolve their options into a task first, so
// expectations can match on plain field values.
func apply(options []task.TaskOption) task.Task {
	var t task.Task
	for _, opt := range options {
		opt(&t)
	}
	return t
}

func (m *MockTaskService) CreateTask(ctx context.Context, options ...task.TaskOption) (*task.Task, error) {
	args := m.Called(ctx, apply(options))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTaskByID(ctx context.Context, id string, options ...task.TaskOption) error {
	args := m.Called(ctx, id, apply(options))
	return args.Error(0)
}

func (m *MockTaskService) DeleteTaskByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ handlers.TaskService = (*MockTaskService)(nil)

func ptr(s string) *string { return &s }

func sampleTask(id int64) *task.Task {
	return &task.Task{
		ID:          id,
		Title:       ptr("A"),
		Description: ptr("B"),
		Status:      ptr("open"),
		DueDate:     ptr("2024-01-01"),
	}
}

const fullBody = `{"title":"A","description":"B","status":"open","due_date":"2024-01-01"}`

func newRouter(svc handlers.TaskService) http.Handler {
	r := chi.NewRouter()
	handlers.NewTaskHandler(svc).Register(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestTaskHandler_PostTask(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		contentType    string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   map[string]any
	}{
		{
			name:        "success - created",
			body:        fullBody,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, *sampleTask(0)).Return(sampleTask(1), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody: map[string]any{
				"id": float64(1), "title": "A", "description": "B", "status": "open", "due_date": "2024-01-01",
			},
		},
		{
			name:        "success - missing fields are passed through",
			body:        `{"title":"A"}`,
			contentType: "application/json; charset=utf-8",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, task.Task{Title: ptr("A")}).
					Return(&task.Task{ID: 2, Title: ptr("A")}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody: map[string]any{
				"id": float64(2), "title": "A", "description": nil, "status": nil, "due_date": nil,
			},
		},
		{
			name:        "success - non JSON body is ignored",
			body:        fullBody,
			contentType: "text/plain",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, task.Task{}).Return(&task.Task{ID: 3}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "success - numbers and booleans are stored as text",
			body:        `{"title":"A","description":false,"status":1,"due_date":null}`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, task.Task{
					Title:       ptr("A"),
					Description: ptr("false"),
					Status:      ptr("1"),
				}).Return(&task.Task{ID: 4, Title: ptr("A"), Description: ptr("false"), Status: ptr("1")}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody: map[string]any{
				"id": float64(4), "title": "A", "description": "false", "status": "1", "due_date": nil,
			},
		},
		{
			name:        "success - array body counts as empty",
			body:        `[{"title":"A"}]`,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, task.Task{}).Return(&task.Task{ID: 5}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "error - scalar body",
			body:           `"A"`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "error - malformed JSON",
			body:           `{"title":`,
			contentType:    "application/json",
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "error - database failure",
			body:        fullBody,
			contentType: "application/json",
			setupMock: func(m *MockTaskService) {
				m.On("CreateTask", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("create task: %w", errors.New("connection refused")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]any{"error": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			newRouter(mockService).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
			if tt.expectedBody != nil {
				assert.Equal(t, tt.expectedBody, decodeMap(t, w))
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_GetTasks(t *testing.T) {
	t.Run("success - list", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("ListTasks", mock.Anything).Return([]*task.Task{sampleTask(1), sampleTask(2)}, nil)

		w := doRequest(t, newRouter(mockService), http.MethodGet, "/tasks", "")

		require.Equal(t, http.StatusOK, w.Code)
		var response []dto.TaskResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Len(t, response, 2)
		assert.Equal(t, int64(2), response[1].ID)
		mockService.AssertExpectations(t)
	})

	t.Run("success - empty list is an array", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("ListTasks", mock.Anything).Return([]*task.Task{}, nil)

		w := doRequest(t, newRouter(mockService), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("error - database failure", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("ListTasks", mock.Anything).Return(nil, errors.New("relation \"tasks\" does not exist"))

		w := doRequest(t, newRouter(mockService), http.MethodGet, "/tasks", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"relation \"tasks\" does not exist"}`, w.Body.String())
	})
}

func TestTaskHandler_GetTaskByID(t *testing.T) {
	tests := []struct {
		name           string
		taskID         string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success - get task",
			taskID: "1",
			setupMock: func(m *MockTaskService) {
				m.On("GetTaskByID", mock.Anything, "1").Return(sampleTask(1), nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"title":"A","description":"B","status":"open","due_date":"2024-01-01"}`,
		},
		{
			name:   "error - task not found",
			taskID: "999999",
			setupMock: func(m *MockTaskService) {
				m.On("GetTaskByID", mock.Anything, "999999").
					Return(nil, service.NewNotFound("999999", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Task not found"}`,
		},
		{
			name:   "error - unknown business code is a server error",
			taskID: "1",
			setupMock: func(m *MockTaskService) {
				m.On("GetTaskByID", mock.Anything, "1").
					Return(nil, &service.BusinessError{Code: "TASK_LOCKED", Message: "Task is locked"})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Task is locked"}`,
		},
		{
			name:   "error - non-numeric id reaches the database",
			taskID: "abc",
			setupMock: func(m *MockTaskService) {
				m.On("GetTaskByID", mock.Anything, "abc").
					Return(nil, errors.New("invalid input syntax for type bigint"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"invalid input syntax for type bigint"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			w := doRequest(t, newRouter(mockService), http.MethodGet, "/tasks/"+tt.taskID, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_UpdateTaskByID(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockTaskService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - updated",
			body: fullBody,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTaskByID", mock.Anything, "1", *sampleTask(0)).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Task updated successfully"}`,
		},
		{
			name: "success - numeric status",
			body: `{"title":"A","description":"B","status":2,"due_date":"2024-01-01"}`,
			setupMock: func(m *MockTaskService) {
				expected := *sampleTask(0)
				expected.Status = ptr("2")
				m.On("UpdateTaskByID", mock.Anything, "1", expected).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Task updated successfully"}`,
		},
		{
			name: "error - falsy status counts as missing",
			body: `{"title":"A","description":"B","status":0,"due_date":"2024-01-01"}`,
			setupMock: func(m *MockTaskService) {
				expected := *sampleTask(0)
				expected.Status = nil
				m.On("UpdateTaskByID", mock.Anything, "1", expected).
					Return(service.NewValidationError(errors.New("status: cannot be blank.")))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"All fields are required"}`,
		},
		{
			name: "error - validation",
			body: `{"title":"A","description":"B","due_date":"2024-01-01"}`,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTaskByID", mock.Anything, "1", mock.Anything).
					Return(service.NewValidationError(errors.New("status: cannot be blank.")))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"All fields are required"}`,
		},
		{
			name: "error - task not found",
			body: fullBody,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTaskByID", mock.Anything, "1", mock.Anything).
					Return(service.NewNotFound("1", repository.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Task not found"}`,
		},
		{
			name:           "error - malformed JSON",
			body:           `not json`,
			setupMock:      func(m *MockTaskService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "error - database failure",
			body: fullBody,
			setupMock: func(m *MockTaskService) {
				m.On("UpdateTaskByID", mock.Anything, "1", mock.Anything).Return(errors.New("deadlock detected"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"deadlock detected"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			tt.setupMock(mockService)

			w := doRequest(t, newRouter(mockService), http.MethodPut, "/tasks/1", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Contains(t, decodeMap(t, w), "error")
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_DeleteTaskByID(t *testing.T) {
	t.Run("success - deleted", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("DeleteTaskByID", mock.Anything, "1").Return(nil)

		w := doRequest(t, newRouter(mockService), http.MethodDelete, "/tasks/1", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Task deleted successfully"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("error - database failure", func(t *testing.T) {
		mockService := new(MockTaskService)
		mockService.On("DeleteTaskByID", mock.Anything, "1").Return(errors.New("connection reset"))

		w := doRequest(t, newRouter(mockService), http.MethodDelete, "/tasks/1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"connection reset"}`, w.Body.String())
	})
}

func TestTaskHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "healthy", expectedStatus: http.StatusOK},
		{name: "storage down", err: errors.New("ping failed"), expectedStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockTaskService)
			mockService.On("HealthCheck", mock.Anything).Return(tt.err)

			w := doRequest(t, newRouter(mockService), http.MethodGet, "/health", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockService.AssertExpectations(t)
		})
	}
}
