package task

import "time"

// Task is a work item with a due instant. A task may additionally carry a
// window start, in which case it spans [StartTime, DueTime]; without one it
// is a due-only task pinned to the day of its due instant.
type Task struct {
	UID       string
	Name      string
	StartTime *time.Time
	DueTime   time.Time
}

// IsDueOnly reports whether the task has no window start.
func (t Task) IsDueOnly() bool {
	return t.StartTime == nil
}
