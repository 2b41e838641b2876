package dto

import (
	"bytes"
	"encoding/json"
	"strconv"

	"taskService/internal/models/task"
)

// Value is one body field as the client sent it. Scalars of any JSON type are
// kept in their text form; null and an absent key both leave it unset.
type Value struct {
	text   *string
	truthy bool
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var text string
	switch x := raw.(type) {
	case nil:
		*v = Value{}
		return nil
	case string:
		text, v.truthy = x, x != ""
	case bool:
		text, v.truthy = strconv.FormatBool(x), x
	case float64:
		text, v.truthy = string(bytes.TrimSpace(data)), x != 0
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		text, v.truthy = compact.String(), true
	}

	v.text = &text
	return nil
}

// Text is the field's value, nil when it was not sent.
func (v Value) Text() *string {
	return v.text
}

// Truthy is nil for values that must count as missing on update:
// absent, null, "", 0 and false.
func (v Value) Truthy() *string {
	if !v.truthy {
		return nil
	}
	return v.text
}

// TaskRequest is the body of POST /tasks and PUT /tasks/{id}.
type TaskRequest struct {
	Title       Value `json:"title"`
	Description Value `json:"description"`
	Status      Value `json:"status"`
	DueDate     Value `json:"due_date"`
}

// CreateOptions passes every sent value through unchecked.
func (r TaskRequest) CreateOptions() []task.TaskOption {
	return []task.TaskOption{
		task.WithTitle(r.Title.Text()),
		task.WithDescription(r.Description.Text()),
		task.WithStatus(r.Status.Text()),
		task.WithDueDate(r.DueDate.Text()),
	}
}

// UpdateOptions drops falsy values so the presence check rejects them.
func (r TaskRequest) UpdateOptions() []task.TaskOption {
	return []task.TaskOption{
		task.WithTitle(r.Title.Truthy()),
		task.WithDescription(r.Description.Truthy()),
		task.WithStatus(r.Status.Truthy()),
		task.WithDueDate(r.DueDate.Truthy()),
	}
}

type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"due_date"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}
