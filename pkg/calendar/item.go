package calendar

import (
	"time"

	"github.com/modulink/modulink/pkg/event"
	"github.com/modulink/modulink/pkg/task"
)

// Kind tags an Item with its origin so classification can dispatch
// explicitly instead of sniffing field presence.
type Kind string

const (
	KindEvent Kind = "event"
	KindTask  Kind = "task"
)

// Item is the normalized calendar item both views are computed from.
// Invariant: End >= Start once normalized.
type Item struct {
	UID            string
	Kind           Kind
	Title          string
	Start          time.Time
	End            time.Time
	Location       string
	ParticipantIds []int
	// DueOnly marks a task that has a due instant but no window: it is
	// rendered on the due day only, never stretched across days.
	DueOnly bool
}

// defaultDuration is assumed when a source item carries no end time.
const defaultDuration = time.Hour

// FromEvent normalizes a stored event.
func FromEvent(e event.Event) Item {
	end := e.EndTime
	if end.IsZero() || end.Before(e.StartTime) {
		end = e.StartTime.Add(defaultDuration)
	}
	return Item{
		UID:            e.UID,
		Kind:           KindEvent,
		Title:          e.Name,
		Start:          e.StartTime,
		End:            end,
		Location:       e.Location,
		ParticipantIds: e.ParticipantIds,
	}
}

// FromTask normalizes a stored task. A due-only task gets a synthetic
// one-hour window anchored at its due instant; classification treats it as
// pinned to the due day regardless of that window.
func FromTask(t task.Task) Item {
	item := Item{
		UID:   t.UID,
		Kind:  KindTask,
		Title: t.Name,
	}
	if t.StartTime == nil {
		item.Start = t.DueTime
		item.End = t.DueTime.Add(defaultDuration)
		item.DueOnly = true
		return item
	}
	item.Start = *t.StartTime
	item.End = t.DueTime
	if item.End.Before(item.Start) {
		item.End = item.Start.Add(defaultDuration)
	}
	return item
}

// Filter selects which item kinds take part in a view.
type Filter struct {
	ShowEvents bool
	ShowTasks  bool
}

// Merge concatenates the two independently fetched lists, applying the kind
// toggles. It gives no ordering guarantee; sorting happens during packing.
func Merge(events []Item, tasks []Item, filter Filter) []Item {
	merged := make([]Item, 0, len(events)+len(tasks))
	if filter.ShowEvents {
		merged = append(merged, events...)
	}
	if filter.ShowTasks {
		merged = append(merged, tasks...)
	}
	return merged
}
