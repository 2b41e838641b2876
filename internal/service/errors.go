package service

import "fmt"

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"

	MessageTaskNotFound   = "Task not found"
	MessageFieldsRequired = "All fields are required"
)

// BusinessError is an error the client caused. Message is safe to show.
type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(id string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: MessageTaskNotFound,
		Details: map[string]any{
			"id": id,
		},
		Err: err,
	}
}

func NewValidationError(err error) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: MessageFieldsRequired,
		Details: map[string]any{
			"reason": err.Error(),
		},
		Err: err,
	}
}
