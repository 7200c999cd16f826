package upload

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Status is the lifecycle position of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// ErrInvalidTransition is returned when a task is moved out of order.
var ErrInvalidTransition = errors.New("invalid task transition")

var transitions = map[Status][]Status{
	StatusPending:   {StatusUploading},
	StatusUploading: {StatusSucceeded, StatusFailed},
}

// Task is one file's upload attempt.
type Task struct {
	ID    string
	File  File
	Index int // position in the submitted file list
	// Status is pending, uploading, succeeded or failed.
	Status  Status
	URL     string
	Message string
	Err     error
}

func newTask(f File, index int) *Task {
	return &Task{
		ID:     uuid.NewString(),
		File:   f,
		Index:  index,
		Status: StatusPending,
	}
}

func (t *Task) transition(to Status) error {
	for _, allowed := range transitions[t.Status] {
		if allowed == to {
			t.Status = to
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, to)
}

func (t *Task) start() error {
	return t.transition(StatusUploading)
}

func (t *Task) succeed(url string) error {
	if err := t.transition(StatusSucceeded); err != nil {
		return err
	}
	t.URL = url
	return nil
}

func (t *Task) fail(message string, err error) error {
	if transErr := t.transition(StatusFailed); transErr != nil {
		return transErr
	}
	t.Message = message
	t.Err = err
	return nil
}

// queue runs tasks one at a time behind a single cursor.
type queue struct {
	tasks  []*Task
	cursor int
}

func (q *queue) push(t *Task) {
	q.tasks = append(q.tasks, t)
}

// next returns the task under the cursor once the previous one is terminal.
func (q *queue) next() (*Task, bool) {
	if q.cursor > 0 && !q.tasks[q.cursor-1].Status.Terminal() {
		return nil, false
	}
	if q.cursor >= len(q.tasks) {
		return nil, false
	}
	t := q.tasks[q.cursor]
	q.cursor++
	return t, true
}
