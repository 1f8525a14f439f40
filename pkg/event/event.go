package event

import "time"

// Event is a scheduled occurrence with an explicit time range, an optional
// location, and the ids of the users taking part.
type Event struct {
	UID            string
	Name           string
	Location       string
	StartTime      time.Time
	EndTime        time.Time
	ParticipantIds []int
}
