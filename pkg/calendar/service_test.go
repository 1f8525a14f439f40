package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/modulink/modulink/internal/utils"
	"github.com/modulink/modulink/pkg/event"
	"github.com/modulink/modulink/pkg/task"
)

type stubEventSource struct {
	events   []event.Event
	failWith error
}

func (s *stubEventSource) GetEvents(_ context.Context, from, to time.Time) ([]event.Event, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	result := make([]event.Event, 0)
	for _, e := range s.events {
		if e.EndTime.After(from) && e.StartTime.Before(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

type stubTaskSource struct {
	tasks    []task.Task
	failWith error
}

func (s *stubTaskSource) GetTasks(_ context.Context, from, to time.Time) ([]task.Task, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	result := make([]task.Task, 0)
	for _, t := range s.tasks {
		if t.DueTime.After(from) && t.DueTime.Before(to) {
			result = append(result, t)
		} else if t.StartTime != nil && t.DueTime.After(from) && t.StartTime.Before(to) {
			result = append(result, t)
		}
	}
	return result, nil
}

func newTestService(events *stubEventSource, tasks *stubTaskSource, now time.Time) *Service {
	return NewService(events, tasks, &utils.MockClock{FixedNow: now})
}

func TestService_WeekView(t *testing.T) {
	events := &stubEventSource{events: []event.Event{
		{
			UID:       "e-1",
			Name:      "design review",
			StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
			EndTime:   time.Date(2024, 1, 3, 15, 30, 0, 0, time.Local),
		},
	}}
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.Local)
	tasks := &stubTaskSource{tasks: []task.Task{
		{
			UID:       "t-1",
			Name:      "prepare release",
			StartTime: &start,
			DueTime:   time.Date(2024, 1, 5, 9, 0, 0, 0, time.Local),
		},
	}}
	service := newTestService(events, tasks, time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local))

	view := service.WeekView(context.Background(), time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), Filter{ShowEvents: true, ShowTasks: true})

	assert.Equal(t, "1 - 7 January 2024", view.Label)
	assert.Len(t, view.Days, 7)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local), view.Window.Start)

	// Monday has nothing
	assert.Empty(t, view.Days[0].Slots)

	// Tuesday has the task only
	assert.Len(t, view.Days[1].Slots, 1)
	assert.Equal(t, "t-1", view.Days[1].Slots[0].Item.UID)
	assert.InDelta(t, 9.0, view.Days[1].Slots[0].StartHour, 1e-9)
	assert.InDelta(t, 24.0, view.Days[1].Slots[0].EndHour, 1e-9)

	// Wednesday has the task (full day) and the event
	wednesday := view.Days[2]
	assert.True(t, wednesday.Today)
	assert.Len(t, wednesday.Slots, 2)
	assert.Equal(t, "t-1", wednesday.Slots[0].Item.UID)
	assert.Equal(t, "e-1", wednesday.Slots[1].Item.UID)
	assert.InDelta(t, 14.0, wednesday.Slots[1].StartHour, 1e-9)
	assert.InDelta(t, 15.5, wednesday.Slots[1].EndHour, 1e-9)
	assert.Equal(t, 1, wednesday.Slots[1].Column)
	assert.Equal(t, 2, wednesday.Slots[1].TotalColumns)

	// Friday is the task's last day, Saturday is free
	assert.Len(t, view.Days[4].Slots, 1)
	assert.InDelta(t, 9.0, view.Days[4].Slots[0].EndHour, 1e-9)
	assert.Empty(t, view.Days[5].Slots)
}

func TestService_WeekViewFilter(t *testing.T) {
	events := &stubEventSource{events: []event.Event{
		{
			UID:       "e-1",
			Name:      "design review",
			StartTime: time.Date(2024, 1, 3, 14, 0, 0, 0, time.Local),
			EndTime:   time.Date(2024, 1, 3, 15, 30, 0, 0, time.Local),
		},
	}}
	tasks := &stubTaskSource{tasks: []task.Task{
		{UID: "t-1", Name: "file report", DueTime: time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)},
	}}
	service := newTestService(events, tasks, time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local))

	view := service.WeekView(context.Background(), time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), Filter{ShowEvents: false, ShowTasks: true})

	assert.Len(t, view.Days[2].Slots, 1)
	assert.Equal(t, "t-1", view.Days[2].Slots[0].Item.UID)
}

func TestService_LoadDegradesOnSourceFailure(t *testing.T) {
	events := &stubEventSource{failWith: errors.New("connection refused")}
	tasks := &stubTaskSource{tasks: []task.Task{
		{UID: "t-1", Name: "file report", DueTime: time.Date(2024, 1, 3, 12, 0, 0, 0, time.Local)},
	}}
	service := newTestService(events, tasks, time.Date(2024, 1, 3, 10, 0, 0, 0, time.Local))

	items := service.Load(context.Background(), WeekWindow(time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local)), Filter{ShowEvents: true, ShowTasks: true})

	assert.Len(t, items, 1)
	assert.Equal(t, "t-1", items[0].UID)
}

func TestService_MonthView(t *testing.T) {
	events := &stubEventSource{events: []event.Event{
		{
			UID:       "e-1",
			Name:      "kickoff",
			StartTime: time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local),
			EndTime:   time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local),
		},
		{
			UID:       "e-2",
			Name:      "carried over from February",
			StartTime: time.Date(2024, 2, 27, 10, 0, 0, 0, time.Local),
			EndTime:   time.Date(2024, 2, 27, 11, 0, 0, 0, time.Local),
		},
	}}
	service := newTestService(events, &stubTaskSource{}, time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))

	view := service.MonthView(context.Background(), time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), Filter{ShowEvents: true, ShowTasks: true})

	assert.Equal(t, "March 2024", view.Label)
	assert.Len(t, view.Cells, 42)

	// Grid starts on Mon Feb 26th; the leading cells are out of month.
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.Local), view.Cells[0].Day)
	assert.False(t, view.Cells[0].InMonth)

	// Feb 27th is the second cell and carries its event despite being padding.
	assert.Len(t, view.Cells[1].Items, 1)
	assert.Equal(t, "e-2", view.Cells[1].Items[0].UID)

	// Mar 1st is the fifth cell.
	first := view.Cells[4]
	assert.True(t, first.InMonth)
	assert.True(t, first.Today)
	assert.Len(t, first.Items, 1)
	assert.Equal(t, "e-1", first.Items[0].UID)
}

func TestWeekLabel_CrossMonth(t *testing.T) {
	label := weekLabel(WeekWindow(time.Date(2024, 9, 30, 0, 0, 0, 0, time.Local)))

	assert.Equal(t, "30 Sep - 6 Oct 2024", label)
}
