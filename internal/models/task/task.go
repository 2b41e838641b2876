package task

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Task is a row of the tasks table. The user fields are nullable because
// create stores whatever the client sent.
type Task struct {
	ID          int64   `db:"id"`
	Title       *string `db:"title"`
	Description *string `db:"description"`
	Status      *string `db:"status"`
	DueDate     *string `db:"due_date"`
}

// Validate reports every user field that is missing or empty.
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required),
		validation.Field(&t.Description, validation.Required),
		validation.Field(&t.Status, validation.Required),
		validation.Field(&t.DueDate, validation.Required),
	)
}
