package event_bus

import "time"

// Event types published on the bus.
const (
	EventCreated EventType = "calendar.event.created"
	EventUpdated EventType = "calendar.event.updated"
	EventDeleted EventType = "calendar.event.deleted"
	TaskCreated  EventType = "calendar.task.created"
	TaskUpdated  EventType = "calendar.task.updated"
	TaskDeleted  EventType = "calendar.task.deleted"
	UserChanged  EventType = "user.changed"
)

type CalendarEventChanged struct {
	UID       string
	Name      string
	Location  string
	StartTime time.Time
	EndTime   time.Time
}

type CalendarTaskChanged struct {
	UID     string
	Name    string
	DueTime time.Time
}

// UserDirectoryChanged notifies subscribers that the set of users (or a
// user's identifying fields) changed, so cached directories must be reloaded.
type UserDirectoryChanged struct {
	UserId int
}
