package upload

import "fmt"

// RejectReason explains why a file never became a task.
type RejectReason string

const (
	// RejectType is a file whose type or extension the policy does not take.
	RejectType RejectReason = "type"
	// RejectTooMany is a file beyond the per-call MaxFiles limit.
	RejectTooMany RejectReason = "too_many"
	// RejectCapacity is a file the slot has no room for.
	RejectCapacity RejectReason = "capacity"
)

// Rejection is a file turned away before any transfer.
type Rejection struct {
	File   File
	Index  int
	Reason RejectReason
}

func (r Rejection) String() string {
	switch r.Reason {
	case RejectType:
		return fmt.Sprintf("%s: file type not accepted", r.File.Name)
	case RejectTooMany:
		return fmt.Sprintf("%s: too many files", r.File.Name)
	case RejectCapacity:
		return fmt.Sprintf("%s: image limit reached", r.File.Name)
	default:
		return fmt.Sprintf("%s: rejected", r.File.Name)
	}
}

// Failure is a task that ended in the failed state.
type Failure struct {
	TaskID  string
	Index   int
	Name    string
	Message string
	Err     error
}

// Report is the outcome of one batch.
type Report struct {
	BatchID string
	// Tasks are in acceptance order, all terminal.
	Tasks []Task
	// URLs of succeeded tasks in acceptance order.
	URLs       []string
	Failures   []Failure
	Rejections []Rejection
}

// FailedCount returns the number of failed uploads.
func (r Report) FailedCount() int {
	return len(r.Failures)
}

// SucceededCount returns the number of stored files.
func (r Report) SucceededCount() int {
	return len(r.URLs)
}

// RejectedCount returns the number of files rejected up front.
func (r Report) RejectedCount() int {
	return len(r.Rejections)
}

// CapacityExceeded reports whether any file was turned away for lack of room.
func (r Report) CapacityExceeded() bool {
	for _, rejection := range r.Rejections {
		if rejection.Reason == RejectCapacity {
			return true
		}
	}
	return false
}
