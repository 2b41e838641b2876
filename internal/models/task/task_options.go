package task

type TaskOption func(*Task)

func WithTitle(title *string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description *string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithStatus(status *string) TaskOption {
	return func(task *Task) {
		task.Status = status
	}
}

func WithDueDate(dueDate *string) TaskOption {
	return func(task *Task) {
		task.DueDate = dueDate
	}
}
