package calendar

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/modulink/modulink/internal/utils"
	"github.com/modulink/modulink/pkg/event"
	"github.com/modulink/modulink/pkg/task"
	log "github.com/sirupsen/logrus"
)

// EventSource provides the stored events overlapping a time range.
type EventSource interface {
	GetEvents(ctx context.Context, from, to time.Time) ([]event.Event, error)
}

// TaskSource provides the stored tasks overlapping a time range.
type TaskSource interface {
	GetTasks(ctx context.Context, from, to time.Time) ([]task.Task, error)
}

// Service assembles calendar views: it loads events and tasks for a window,
// normalizes them, and runs the classifier and packer per day.
type Service struct {
	events EventSource
	tasks  TaskSource
	clock  utils.Clock
}

func NewService(events EventSource, tasks TaskSource, clock utils.Clock) *Service {
	return &Service{events: events, tasks: tasks, clock: clock}
}

// DayLayout is one rendered day column of the week view.
type DayLayout struct {
	Day   time.Time
	Today bool
	Slots []Slot
}

// WeekView is the computed layout of one Monday-anchored week.
type WeekView struct {
	Window Window
	Label  string
	Days   []DayLayout
}

// MonthCell is one cell of the 42-cell month grid.
type MonthCell struct {
	Day     time.Time
	InMonth bool
	Today   bool
	Items   []Item
}

// MonthView is the computed 6x7 month grid.
type MonthView struct {
	Window Window
	Label  string
	Cells  []MonthCell
}

// Load fetches the event and task lists for the window concurrently and
// merges them. The two fetches are joined; a failed side degrades to an
// empty list with a logged warning instead of failing the whole view, so
// the worst case is a partially or fully empty calendar.
func (s *Service) Load(ctx context.Context, w Window, filter Filter) []Item {
	var (
		wg         sync.WaitGroup
		eventItems []Item
		taskItems  []Item
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		events, err := s.events.GetEvents(ctx, w.Start, w.End)
		if err != nil {
			log.Warnf("failed to load events for window %s: %v", w.Start.Format(time.DateOnly), err)
			return
		}
		eventItems = make([]Item, 0, len(events))
		for _, e := range events {
			eventItems = append(eventItems, FromEvent(e))
		}
	}()
	go func() {
		defer wg.Done()
		tasks, err := s.tasks.GetTasks(ctx, w.Start, w.End)
		if err != nil {
			log.Warnf("failed to load tasks for window %s: %v", w.Start.Format(time.DateOnly), err)
			return
		}
		taskItems = make([]Item, 0, len(tasks))
		for _, t := range tasks {
			taskItems = append(taskItems, FromTask(t))
		}
	}()
	wg.Wait()

	return Merge(eventItems, taskItems, filter)
}

// WeekView computes the packed layout for the week containing date.
func (s *Service) WeekView(ctx context.Context, date time.Time, filter Filter) WeekView {
	window := WeekWindow(date)
	items := s.Load(ctx, window, filter)
	today := s.clock.Now()

	days := make([]DayLayout, 0, 7)
	for _, day := range WeekDays(date) {
		active := make([]Item, 0, len(items))
		for _, item := range items {
			if IsActiveOn(item, day) {
				active = append(active, item)
			}
		}
		days = append(days, DayLayout{
			Day:   day,
			Today: SameDay(day, today),
			Slots: Pack(active, day),
		})
	}

	return WeekView{
		Window: window,
		Label:  weekLabel(window),
		Days:   days,
	}
}

// MonthView computes the 42-cell grid for the month containing date.
func (s *Service) MonthView(ctx context.Context, date time.Time, filter Filter) MonthView {
	window := MonthWindow(date)
	items := s.Load(ctx, window, filter)
	today := s.clock.Now()

	cells := make([]MonthCell, 0, monthGridCells)
	for _, day := range MonthGrid(date) {
		active := make([]Item, 0)
		for _, item := range items {
			if IsActiveOn(item, day) {
				active = append(active, item)
			}
		}
		cells = append(cells, MonthCell{
			Day:     day,
			InMonth: day.Month() == date.Month(),
			Today:   SameDay(day, today),
			Items:   active,
		})
	}

	return MonthView{
		Window: window,
		Label:  date.Format("January 2006"),
		Cells:  cells,
	}
}

// weekLabel renders the header text for a week, e.g. "2 - 8 September 2024"
// or "30 Sep - 6 Oct 2024" when the week crosses a month boundary.
func weekLabel(w Window) string {
	first := w.Start
	last := w.Start.AddDate(0, 0, 6)
	if first.Month() == last.Month() {
		return fmt.Sprintf("%d - %d %s", first.Day(), last.Day(), first.Format("January 2006"))
	}
	return fmt.Sprintf("%d %s - %d %s", first.Day(), first.Format("Jan"), last.Day(), last.Format("Jan 2006"))
}
